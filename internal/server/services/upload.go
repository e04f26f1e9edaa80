package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"devfolio/internal/common"
	sc "devfolio/internal/server/config"
)

// Upload folders form a small fixed enumeration; anything else is rejected.
const (
	FolderImages  = "images"
	FolderResumes = "resumes"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectPutter is the slice of the S3 client the uploader needs.
// *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// timeNow is a seam for testing storage-key timestamps.
var timeNow = time.Now

// UploadService stores files in the object storage bucket and returns their
// public URLs. It makes exactly one attempt per upload; retrying or keeping
// the previous URL is the caller's call.
type UploadService struct {
	client  ObjectPutter
	bucket  string
	region  string
	maxSize int64
}

// NewUploadService constructs an UploadService around an injected client.
// A nil client marks storage as not configured rather than failing startup.
func NewUploadService(client ObjectPutter, cfg *sc.Config) *UploadService {
	return &UploadService{
		client:  client,
		bucket:  cfg.S3Bucket,
		region:  cfg.S3Region,
		maxSize: cfg.MaxUploadSize,
	}
}

// NewS3Client builds the process-wide S3 client. Static credentials from the
// config win; otherwise the SDK's default chain (IAM role, env, shared
// config) resolves them.
func NewS3Client(ctx context.Context, cfg *sc.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// Upload streams one file into {folder}/{ownerID}_{unixSeconds}_{filename}
// and returns its public URL. Size and folder are validated before anything
// touches the network, so a rejected request leaves no partial object.
func (s *UploadService) Upload(ctx context.Context, body io.Reader, size int64,
	filename, contentType, folder string, ownerID int64) (string, error) {

	if s.client == nil || s.bucket == "" {
		return "", common.ErrorStorageNotConfigured
	}
	if folder != FolderImages && folder != FolderResumes {
		return "", fmt.Errorf("%w: %q", common.ErrorInvalidFolder, folder)
	}
	if size > s.maxSize {
		return "", common.ErrorFileTooLarge
	}

	key := fmt.Sprintf("%s/%d_%d_%s", folder, ownerID, timeNow().Unix(), SanitizeFilename(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %s", common.ErrorUploadRejected, apiErr.ErrorMessage())
		}
		return "", fmt.Errorf("%w: %v", common.ErrorUploadFailed, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// SanitizeFilename strips path separators and anything outside
// [A-Za-z0-9._-] so the original name can be embedded in a storage key.
func SanitizeFilename(name string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(name, "_")
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "file"
	}
	return sanitized
}
