package uploader

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// Phase is the lifecycle phase of one logical upload
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting"
	PhaseUploading  Phase = "uploading"
	PhaseConfirming Phase = "confirming"
	PhaseProcessing Phase = "processing"
	PhaseReady      Phase = "ready"
	PhaseError      Phase = "error"
)

// Session tracks one logical upload from request to terminal state. It
// exposes four observables at all times: Status, Progress, Asset and Err.
// Exactly one upload is tracked per Session; starting another one, or
// calling Reset, discards the previous upload's state and any result that
// later arrives for it.
//
// Sessions are independent: two Session values never share state, so many
// may run uploads concurrently.
type Session struct {
	client *Client
	poller *Poller
	sink   ProgressSink

	mu       sync.Mutex
	gen      uint64
	phase    Phase
	progress int
	asset    *Asset
	err      error
	cancel   context.CancelFunc
}

// SessionOption customizes a Session
type SessionOption func(*Session)

// WithProgressSink registers an observer for transfer progress
func WithProgressSink(sink ProgressSink) SessionOption {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithPoller replaces the processing poller, mainly to shorten the
// cadence in tests
func WithPoller(poller *Poller) SessionOption {
	return func(s *Session) {
		s.poller = poller
	}
}

// NewSession creates an idle Session bound to a client
func NewSession(client *Client, opts ...SessionOption) *Session {
	s := &Session{
		client: client,
		poller: NewPoller(client),
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current phase
func (s *Session) Status() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Progress returns the last observed transfer progress in [0,100]
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Asset returns the finalized asset, non-nil only once Status is
// PhaseReady
func (s *Session) Asset() *Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asset
}

// Err returns the failure, non-nil only once Status is PhaseError
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Reset returns the session to idle synchronously. Any in-flight work is
// cancelled and its eventual result discarded: a response arriving after
// Reset never mutates the session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.phase = PhaseIdle
	s.progress = 0
	s.asset = nil
	s.err = nil
}

// Upload runs one upload end to end: broker, transfer, then confirmation
// for images or the processing poll loop for videos. It blocks until the
// session reaches a terminal state; callers wanting background behavior
// run it in a goroutine and watch the observables.
//
// Calling Upload while the session is non-idle implicitly resets it
// first. The returned error mirrors the Err observable; ErrSessionReset
// means a concurrent Reset discarded this upload.
func (s *Session) Upload(ctx context.Context, input UploadInput, file io.ReadSeeker) (*Asset, error) {
	gen, runCtx := s.begin(ctx)
	isVideo := strings.HasPrefix(input.ContentType, "video/")

	var ticket *Ticket
	var err error
	if isVideo {
		ticket, err = s.client.RequestVideoUpload(runCtx, input)
	} else {
		ticket, err = s.client.RequestImageUpload(runCtx, input)
	}
	if err != nil {
		return nil, s.fail(gen, err)
	}

	if !s.setPhase(gen, PhaseUploading) {
		return nil, ErrSessionReset
	}

	sink := SinkFunc(func(percent int) {
		s.setProgress(gen, percent)
	})
	if isVideo {
		err = s.client.TransferVideo(runCtx, ticket, file, input.SizeBytes, sink)
	} else {
		err = s.client.TransferImage(runCtx, ticket, file, input.SizeBytes, sink)
	}
	if err != nil {
		return nil, s.fail(gen, err)
	}

	var asset *Asset
	if isVideo {
		// the transfer is fully landed; the rest is server-side work
		s.setProgress(gen, 100)
		if !s.setPhase(gen, PhaseProcessing) {
			return nil, ErrSessionReset
		}
		asset, err = s.poller.Wait(runCtx, ticket.AssetID)
	} else {
		if !s.setPhase(gen, PhaseConfirming) {
			return nil, ErrSessionReset
		}
		asset, err = s.client.Confirm(runCtx, ticket.AssetID)
	}
	if err != nil {
		return nil, s.fail(gen, err)
	}

	if err := s.succeed(gen, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// AdoptExisting seeds the session from a previously persisted asset
// without any network traffic, e.g. when an editor opens an entity that
// already has media. The session lands in ready, processing or error
// according to the asset's status.
func (s *Session) AdoptExisting(asset *Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()

	switch asset.Status {
	case domain.AssetStatusReady:
		s.phase = PhaseReady
		s.progress = 100
		adopted := *asset
		s.asset = &adopted
	case domain.AssetStatusError:
		s.phase = PhaseError
		s.err = &ProcessingError{Message: asset.ErrorMessage}
	default:
		// pending and processing both mean server-side work is still due
		s.phase = PhaseProcessing
		s.progress = 100
	}
}

func (s *Session) begin(ctx context.Context) (uint64, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle {
		s.resetLocked()
	}
	s.gen++
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.phase = PhaseRequesting
	return s.gen, runCtx
}

// setPhase applies a transition if the upload is still current
func (s *Session) setPhase(gen uint64, phase Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.phase = phase
	return true
}

func (s *Session) setProgress(gen uint64, percent int) {
	s.mu.Lock()
	if gen != s.gen || percent <= s.progress {
		s.mu.Unlock()
		return
	}
	s.progress = percent
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink.Publish(percent)
	}
}

// fail records the error unless the upload was superseded, in which case
// the result is discarded and ErrSessionReset returned instead
func (s *Session) fail(gen uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSessionReset
	}
	s.phase = PhaseError
	s.err = err
	s.releaseLocked()
	return err
}

func (s *Session) succeed(gen uint64, asset *Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSessionReset
	}
	s.phase = PhaseReady
	s.progress = 100
	s.asset = asset
	s.releaseLocked()
	return nil
}

// releaseLocked cancels the finished run's context so it detaches from a
// long-lived parent; the work is already done, so live operations are
// unaffected
func (s *Session) releaseLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
