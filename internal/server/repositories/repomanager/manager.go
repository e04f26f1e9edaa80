// Package repomanager vends storage-backed repository implementations.
package repomanager

import (
	"context"
	"database/sql"

	"devfolio/internal/dbx"
	"devfolio/internal/server/repositories/profiles"
	"devfolio/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a database handle or transaction
// and owns schema migrations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
