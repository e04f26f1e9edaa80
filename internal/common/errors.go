package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// uploader specific errors
	ErrorStorageNotConfigured = errors.New("object storage not configured")
	ErrorFileTooLarge         = errors.New("file exceeds maximum upload size")
	ErrorInvalidFolder        = errors.New("invalid upload folder")
	ErrorUploadRejected       = errors.New("upload rejected by object storage")
	ErrorUploadFailed         = errors.New("upload failed")

	ErrorInvalidToken = errors.New("invalid token")
)
