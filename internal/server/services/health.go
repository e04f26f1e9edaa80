package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	dbProbeTimeout       = 3 * time.Second
	metadataProbeTimeout = 2 * time.Second
)

// BucketLister is the slice of the S3 client the health probe needs.
// *s3.Client satisfies it.
type BucketLister interface {
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// MetadataGetter is the slice of the IMDS client the health probe needs.
// *imds.Client satisfies it.
type MetadataGetter interface {
	GetMetadata(ctx context.Context, in *imds.GetMetadataInput, optFns ...func(*imds.Options)) (*imds.GetMetadataOutput, error)
}

// Report maps a service name to a human-readable status line.
type Report map[string]string

// HealthService runs best-effort connectivity probes against the database,
// the object storage bucket, and the host metadata service. Every probe
// failure is converted to a status string; none can take the others down.
type HealthService struct {
	db       *sql.DB
	storage  BucketLister
	metadata MetadataGetter
	bucket   string
}

// NewHealthService constructs a HealthService. Nil clients are reported as
// not configured rather than treated as errors.
func NewHealthService(db *sql.DB, storage BucketLister, metadata MetadataGetter, bucket string) *HealthService {
	return &HealthService{db: db, storage: storage, metadata: metadata, bucket: bucket}
}

// Check runs all probes and always returns a full report.
func (s *HealthService) Check(ctx context.Context) Report {
	return Report{
		"rds": s.checkDatabase(ctx),
		"s3":  s.checkObjectStorage(ctx),
		"ec2": s.checkInstanceMetadata(ctx),
	}
}

func (s *HealthService) checkDatabase(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, dbProbeTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Sprintf("RDS check failed: %v", err)
	}
	return "RDS is connected and responsive."
}

func (s *HealthService) checkObjectStorage(ctx context.Context) string {
	if s.storage == nil {
		return "S3 client not initialized"
	}
	if s.bucket == "" {
		return "S3 bucket name not configured"
	}

	_, err := s.storage.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Sprintf("S3 access failed: %v", err)
	}
	return fmt.Sprintf("S3 bucket %q is accessible.", s.bucket)
}

func (s *HealthService) checkInstanceMetadata(ctx context.Context) string {
	if s.metadata == nil {
		return "EC2 metadata client not initialized"
	}

	instanceID, err := s.metadataValue(ctx, "instance-id")
	if err != nil {
		return fmt.Sprintf("EC2 metadata access failed: %v", err)
	}
	az, err := s.metadataValue(ctx, "placement/availability-zone")
	if err != nil {
		return fmt.Sprintf("EC2 metadata access failed: %v", err)
	}
	publicIP, err := s.metadataValue(ctx, "public-ipv4")
	if err != nil {
		return fmt.Sprintf("EC2 metadata access failed: %v", err)
	}

	return fmt.Sprintf("EC2 instance running (ID: %s, AZ: %s, Public IP: %s)", instanceID, az, publicIP)
}

func (s *HealthService) metadataValue(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, metadataProbeTimeout)
	defer cancel()

	out, err := s.metadata.GetMetadata(ctx, &imds.GetMetadataInput{Path: path})
	if err != nil {
		return "", err
	}
	defer out.Content.Close()

	value, err := io.ReadAll(out.Content)
	if err != nil {
		return "", err
	}
	return string(value), nil
}
