package domain

import "errors"

// ErrAssetNotFound is an error thrown when a media asset is not found
var ErrAssetNotFound = errors.New("asset not found")

// ErrSessionNotFound is an error thrown when an upload session is not found
var ErrSessionNotFound = errors.New("upload session not found")

// ErrAssetStateConflict is an error thrown when a status change would
// violate the monotonic asset lifecycle
var ErrAssetStateConflict = errors.New("asset state conflict")

// ErrInvalidContext is an error thrown when an upload context is unknown
// or not allowed for the media type
var ErrInvalidContext = errors.New("invalid upload context")

// ErrInvalidFileType is an error thrown when the file type is invalid
var ErrInvalidFileType = errors.New("invalid file type")

// ErrFileSizeTooBig is an error thrown when the file size is too big
var ErrFileSizeTooBig = errors.New("file size too big")

// ErrFileSizeEmpty is an error thrown when the declared file size is zero
var ErrFileSizeEmpty = errors.New("file size empty")

// ErrOffsetMismatch is an error thrown when a chunk arrives at an offset
// other than the session's current one
var ErrOffsetMismatch = errors.New("chunk offset mismatch")

// ErrChunkOverrun is an error thrown when a chunk would exceed the
// session's declared total size
var ErrChunkOverrun = errors.New("chunk exceeds declared size")

// ErrSessionClosed is an error thrown when a chunk targets a completed or
// aborted session
var ErrSessionClosed = errors.New("upload session closed")

// ErrAssetRejected is an error thrown when the provider rejects the
// uploaded content during finalization
var ErrAssetRejected = errors.New("asset rejected")

// ErrSizeMismatch is an error thrown when the stored object size differs
// from the declared size
var ErrSizeMismatch = errors.New("size mismatch")
