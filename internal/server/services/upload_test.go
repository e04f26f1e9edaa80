package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"devfolio/internal/common"
	sc "devfolio/internal/server/config"
)

type fakePutter struct {
	in  *s3.PutObjectInput
	err error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newUploadService(putter ObjectPutter) *UploadService {
	cfg := &sc.Config{
		S3Bucket:      "bucket",
		S3Region:      "us-east-1",
		MaxUploadSize: 1024,
	}
	return NewUploadService(putter, cfg)
}

func withFixedTime(t *testing.T, unix int64) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return time.Unix(unix, 0) }
	t.Cleanup(func() { timeNow = orig })
}

func TestUpload_Success(t *testing.T) {
	withFixedTime(t, 1700000000)

	putter := &fakePutter{}
	s := newUploadService(putter)

	url, err := s.Upload(context.Background(), strings.NewReader("data"), 4,
		"avatar.png", "image/png", FolderImages, 42)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	wantKey := "images/42_1700000000_avatar.png"
	if *putter.in.Key != wantKey {
		t.Fatalf("unexpected key: %q, want %q", *putter.in.Key, wantKey)
	}
	if *putter.in.Bucket != "bucket" {
		t.Fatalf("unexpected bucket: %q", *putter.in.Bucket)
	}
	if putter.in.ACL != types.ObjectCannedACLPublicRead {
		t.Fatalf("unexpected ACL: %q", putter.in.ACL)
	}
	if *putter.in.ContentType != "image/png" {
		t.Fatalf("unexpected content type: %q", *putter.in.ContentType)
	}
	if url != "https://bucket.s3.us-east-1.amazonaws.com/"+wantKey {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestUpload_SanitizesFilename(t *testing.T) {
	withFixedTime(t, 1700000000)

	putter := &fakePutter{}
	s := newUploadService(putter)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), 4,
		"../etc/pass wd.pdf", "application/pdf", FolderResumes, 7)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if *putter.in.Key != "resumes/7_1700000000_.._etc_pass_wd.pdf" {
		t.Fatalf("unexpected key: %q", *putter.in.Key)
	}
}

func TestUpload_RejectsOversizedBeforeRemoteCall(t *testing.T) {
	putter := &fakePutter{}
	s := newUploadService(putter)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), 2048,
		"big.png", "image/png", FolderImages, 1)
	if !errors.Is(err, common.ErrorFileTooLarge) {
		t.Fatalf("want common.ErrorFileTooLarge, got %v", err)
	}
	if putter.in != nil {
		t.Fatal("remote call attempted for an oversized file")
	}
}

func TestUpload_RejectsUnknownFolder(t *testing.T) {
	putter := &fakePutter{}
	s := newUploadService(putter)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), 4,
		"a.png", "image/png", "secrets", 1)
	if !errors.Is(err, common.ErrorInvalidFolder) {
		t.Fatalf("want common.ErrorInvalidFolder, got %v", err)
	}
	if putter.in != nil {
		t.Fatal("remote call attempted for an invalid folder")
	}
}

func TestUpload_NotConfigured(t *testing.T) {
	s := newUploadService(nil)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), 4,
		"a.png", "image/png", FolderImages, 1)
	if !errors.Is(err, common.ErrorStorageNotConfigured) {
		t.Fatalf("want common.ErrorStorageNotConfigured, got %v", err)
	}
}

func TestUpload_RemoteRejection(t *testing.T) {
	putter := &fakePutter{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}}
	s := newUploadService(putter)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), 4,
		"a.png", "image/png", FolderImages, 1)
	if !errors.Is(err, common.ErrorUploadRejected) {
		t.Fatalf("want common.ErrorUploadRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "denied") {
		t.Fatalf("rejection reason lost: %v", err)
	}
}

func TestUpload_TransientFailure(t *testing.T) {
	putter := &fakePutter{err: errors.New("connection reset")}
	s := newUploadService(putter)

	_, err := s.Upload(context.Background(), strings.NewReader("data"), 4,
		"a.png", "image/png", FolderImages, 1)
	if !errors.Is(err, common.ErrorUploadFailed) {
		t.Fatalf("want common.ErrorUploadFailed, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"avatar.png", "avatar.png"},
		{"my resume (final).pdf", "my_resume_final_.pdf"},
		{"../../x", ".._.._x"},
		{"", "file"},
		{"..", "file"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
