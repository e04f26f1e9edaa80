package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeLister struct {
	err error
}

func (f *fakeLister) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.ListObjectsV2Output{}, nil
}

type fakeMetadata struct {
	values map[string]string
	err    error
}

func (f *fakeMetadata) GetMetadata(ctx context.Context, in *imds.GetMetadataInput, optFns ...func(*imds.Options)) (*imds.GetMetadataOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &imds.GetMetadataOutput{
		Content: io.NopCloser(strings.NewReader(f.values[in.Path])),
	}, nil
}

func TestCheck_AllHealthy(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	meta := &fakeMetadata{values: map[string]string{
		"instance-id":                 "i-0abc",
		"placement/availability-zone": "us-east-1a",
		"public-ipv4":                 "1.2.3.4",
	}}
	s := NewHealthService(db, &fakeLister{}, meta, "bucket")

	report := s.Check(context.Background())

	if report["rds"] != "RDS is connected and responsive." {
		t.Fatalf("unexpected rds status: %q", report["rds"])
	}
	if report["s3"] != `S3 bucket "bucket" is accessible.` {
		t.Fatalf("unexpected s3 status: %q", report["s3"])
	}
	if report["ec2"] != "EC2 instance running (ID: i-0abc, AZ: us-east-1a, Public IP: 1.2.3.4)" {
		t.Fatalf("unexpected ec2 status: %q", report["ec2"])
	}
}

func TestCheck_DatabaseDownDoesNotMaskOthers(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	meta := &fakeMetadata{values: map[string]string{
		"instance-id":                 "i-0abc",
		"placement/availability-zone": "us-east-1a",
		"public-ipv4":                 "1.2.3.4",
	}}
	s := NewHealthService(db, &fakeLister{}, meta, "bucket")

	report := s.Check(context.Background())

	if !strings.HasPrefix(report["rds"], "RDS check failed:") {
		t.Fatalf("unexpected rds status: %q", report["rds"])
	}
	if report["s3"] != `S3 bucket "bucket" is accessible.` {
		t.Fatalf("s3 probe affected by db failure: %q", report["s3"])
	}
	if !strings.HasPrefix(report["ec2"], "EC2 instance running") {
		t.Fatalf("ec2 probe affected by db failure: %q", report["ec2"])
	}
}

func TestCheck_StorageNotConfigured(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	s := NewHealthService(db, nil, nil, "")

	report := s.Check(context.Background())

	if report["s3"] != "S3 client not initialized" {
		t.Fatalf("unexpected s3 status: %q", report["s3"])
	}
	if report["ec2"] != "EC2 metadata client not initialized" {
		t.Fatalf("unexpected ec2 status: %q", report["ec2"])
	}
}

func TestCheck_BucketMissing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	s := NewHealthService(db, &fakeLister{}, nil, "")

	report := s.Check(context.Background())

	if report["s3"] != "S3 bucket name not configured" {
		t.Fatalf("unexpected s3 status: %q", report["s3"])
	}
}

func TestCheck_StorageAccessDenied(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	s := NewHealthService(db, &fakeLister{err: errors.New("AccessDenied")}, nil, "bucket")

	report := s.Check(context.Background())

	if !strings.HasPrefix(report["s3"], "S3 access failed:") {
		t.Fatalf("unexpected s3 status: %q", report["s3"])
	}
}

func TestCheck_MetadataUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	meta := &fakeMetadata{err: errors.New("no metadata endpoint")}
	s := NewHealthService(db, &fakeLister{}, meta, "bucket")

	report := s.Check(context.Background())

	if !strings.HasPrefix(report["ec2"], "EC2 metadata access failed:") {
		t.Fatalf("unexpected ec2 status: %q", report["ec2"])
	}
}
