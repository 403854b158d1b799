package uploader

import (
	"errors"
	"fmt"
)

// ErrProcessingTimeout marks a video that never reached a terminal status
// within the poll budget. Distinct from a provider-reported processing
// failure: nothing is known to be broken, the caller may try again later.
var ErrProcessingTimeout = errors.New("processing did not finish within the poll budget")

// ErrSessionReset is returned from a session operation whose work was
// discarded by a concurrent Reset or a newer Upload call.
var ErrSessionReset = errors.New("upload session was reset")

// RequestError is a failed API round trip: the broker could not issue an
// upload target, a confirm/poll call was rejected, or the transport failed.
type RequestError struct {
	Status  int
	Message string
	Network bool
}

func (e *RequestError) Error() string {
	if e.Network {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Message)
}

// TransferError is a failed byte transfer. Network distinguishes transport
// loss (retryable by resuming) from a server rejection of the payload.
type TransferError struct {
	Status  int
	Message string
	Network bool
}

func (e *TransferError) Error() string {
	if e.Network {
		return fmt.Sprintf("transfer interrupted: %s", e.Message)
	}
	return fmt.Sprintf("transfer rejected (%d): %s", e.Status, e.Message)
}

// ConfirmError is an image finalization rejection after a completed
// transfer, e.g. corrupt image content. Terminal, never retried.
type ConfirmError struct {
	Message string
}

func (e *ConfirmError) Error() string {
	return fmt.Sprintf("confirmation failed: %s", e.Message)
}

// ProcessingError is a provider-reported transcoding failure, delivered
// through a normal poll response.
type ProcessingError struct {
	Message string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed: %s", e.Message)
}
