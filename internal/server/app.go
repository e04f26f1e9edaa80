// Package server initializes and runs the main application server.
// It opens the database, runs migrations, constructs the process-wide
// object-storage and metadata clients, and starts the HTTP server.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	_ "github.com/jackc/pgx/v5/stdlib"

	"devfolio/internal/logging"
	"devfolio/internal/server/config"
	"devfolio/internal/server/handlers"
	"devfolio/internal/server/repositories/repomanager"
	"devfolio/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *handlers.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	sl := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// Object storage is optional; the app degrades to text-only profiles
	// when the client cannot be built.
	s3Client, err := services.NewS3Client(ctx, cfg)
	if err != nil {
		logger.Warn(ctx, "S3 client initialization failed", "error", err)
		s3Client = nil
	}

	us := services.NewUserService(db, rm, cfg)
	ps := services.NewProfileService(db, rm)

	var up *services.UploadService
	var hs *services.HealthService
	if s3Client != nil {
		up = services.NewUploadService(s3Client, cfg)
		hs = services.NewHealthService(db, s3Client, imds.New(imds.Options{}), cfg.S3Bucket)
	} else {
		up = services.NewUploadService(nil, cfg)
		hs = services.NewHealthService(db, nil, imds.New(imds.Options{}), cfg.S3Bucket)
	}

	srv := handlers.NewServer(cfg, logger, us, ps, up, hs)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
