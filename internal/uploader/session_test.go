package uploader_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory media API good enough to drive a Session end
// to end: broker routes, a presigned image target, the resumable content
// endpoint, confirm and status polls.
type fakeAPI struct {
	mu sync.Mutex

	assetID   uuid.UUID
	server    *httptest.Server
	chunkSize int64

	imageBytes []byte
	videoBytes []byte
	videoTotal int64

	pollStatuses []domain.AssetStatus
	pollCalls    int
	confirmCalls int
	putCalls     int
	requests     int

	readyAsset uploader.Asset
}

func newFakeAPI(t *testing.T) *fakeAPI {
	f := &fakeAPI{
		assetID:   uuid.New(),
		chunkSize: 1000,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/media/upload/image", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.writeJSON(w, http.StatusCreated, uploader.Ticket{
			AssetID:   f.assetID,
			UploadURL: f.server.URL + "/storage/image-key",
			Headers:   map[string]string{"Content-Type": "image/jpeg"},
		})
	})
	mux.HandleFunc("/api/v1/media/upload/video", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.writeJSON(w, http.StatusCreated, uploader.Ticket{
			AssetID:   f.assetID,
			UploadURL: f.server.URL + "/api/v1/media/" + f.assetID.String() + "/content",
			ChunkSize: f.chunkSize,
		})
	})
	mux.HandleFunc("/storage/image-key", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		f.putCalls++
		f.mu.Unlock()
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		f.mu.Lock()
		f.imageBytes = body
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/v1/media/"+f.assetID.String()+"/content", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodHead:
			w.Header().Set("Upload-Offset", strconv.Itoa(len(f.videoBytes)))
		case http.MethodPost:
			var start, end, total int64
			fmt.Sscanf(r.Header.Get("Content-Range"), "bytes %d-%d/%d", &start, &end, &total)
			body, _ := io.ReadAll(r.Body)
			f.videoBytes = append(f.videoBytes, body...)
			w.Header().Set("Upload-Offset", strconv.Itoa(len(f.videoBytes)))
			fmt.Fprintf(w, `{"received":%d,"completed":%t}`, len(f.videoBytes), int64(len(f.videoBytes)) == f.videoTotal)
		}
	})
	mux.HandleFunc("/api/v1/media/"+f.assetID.String()+"/confirm", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		f.confirmCalls++
		asset := f.readyAsset
		f.mu.Unlock()
		asset.ID = f.assetID
		asset.Status = domain.AssetStatusReady
		f.writeJSON(w, http.StatusOK, asset)
	})
	mux.HandleFunc("/api/v1/media/"+f.assetID.String()+"/poll", func(w http.ResponseWriter, r *http.Request) {
		f.count()
		f.mu.Lock()
		index := f.pollCalls
		if index >= len(f.pollStatuses) {
			index = len(f.pollStatuses) - 1
		}
		f.pollCalls++
		asset := f.readyAsset
		status := f.pollStatuses[index]
		f.mu.Unlock()
		asset.ID = f.assetID
		asset.Status = status
		f.writeJSON(w, http.StatusOK, asset)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) count() {
	f.mu.Lock()
	f.requests++
	f.mu.Unlock()
}

func (f *fakeAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func newTestSession(f *fakeAPI, opts ...uploader.SessionOption) *uploader.Session {
	client := uploader.NewClient(f.server.URL, "test-token", discardLogger())
	poller := uploader.NewPoller(client)
	poller.Interval = time.Millisecond
	opts = append([]uploader.SessionOption{uploader.WithPoller(poller)}, opts...)
	return uploader.NewSession(client, opts...)
}

func TestSession_ImageUpload_Success(t *testing.T) {
	// Arrange
	f := newFakeAPI(t)
	f.readyAsset = uploader.Asset{
		Type: domain.MediaTypeImage,
		URL:  "https://cdn.kitchen48.example/image/" + f.assetID.String(),
	}

	progress := &progressRecorder{}
	session := newTestSession(f, uploader.WithProgressSink(progress))
	payload := bytes.Repeat([]byte{0xAA}, 2048)

	// Act
	asset, err := session.Upload(context.Background(), uploader.UploadInput{
		Context:     "recipe",
		FileName:    "dinner.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   int64(len(payload)),
	}, bytes.NewReader(payload))

	// Assert
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, domain.AssetStatusReady, asset.Status)
	assert.NotEmpty(t, asset.URL)

	assert.Equal(t, uploader.PhaseReady, session.Status())
	assert.Equal(t, 100, session.Progress())
	require.NotNil(t, session.Asset())
	assert.Equal(t, asset.URL, session.Asset().URL)
	assert.NoError(t, session.Err())

	assert.Equal(t, payload, f.imageBytes)
	assert.Equal(t, 1, f.confirmCalls)
	values := progress.snapshot()
	require.NotEmpty(t, values)
	assert.Equal(t, 100, values[len(values)-1])
	assertMonotonic(t, values)
}

func TestSession_VideoUpload_Success(t *testing.T) {
	// Arrange
	f := newFakeAPI(t)
	duration := 34.0
	f.readyAsset = uploader.Asset{
		Type:            domain.MediaTypeVideo,
		URL:             "https://cdn.kitchen48.example/video/rendition.mp4",
		DurationSeconds: &duration,
	}
	f.pollStatuses = []domain.AssetStatus{
		domain.AssetStatusProcessing,
		domain.AssetStatusProcessing,
		domain.AssetStatusProcessing,
		domain.AssetStatusReady,
	}

	session := newTestSession(f)
	payload := bytes.Repeat([]byte{0xBB}, 2500)
	f.videoTotal = int64(len(payload))

	// Act
	asset, err := session.Upload(context.Background(), uploader.UploadInput{
		Context:     "step",
		FileName:    "technique.mp4",
		ContentType: "video/mp4",
		SizeBytes:   int64(len(payload)),
	}, bytes.NewReader(payload))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uploader.PhaseReady, session.Status())
	require.NotNil(t, asset.DurationSeconds)
	assert.Equal(t, 34.0, *asset.DurationSeconds)
	assert.Equal(t, payload, f.videoBytes)
	assert.Equal(t, 4, f.pollCalls)
}

func TestSession_BrokerRejection_NoTransferAttempted(t *testing.T) {
	// Arrange
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/media/upload/image", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid upload context", http.StatusBadRequest)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := uploader.NewClient(server.URL, "", discardLogger())
	session := uploader.NewSession(client)

	// Act
	asset, err := session.Upload(context.Background(), uploader.UploadInput{
		Context:     "bogus",
		FileName:    "dinner.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   4,
	}, bytes.NewReader([]byte("data")))

	// Assert
	assert.Nil(t, asset)
	var reqErr *uploader.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, uploader.PhaseError, session.Status())
	assert.ErrorAs(t, session.Err(), &reqErr)
	assert.Nil(t, session.Asset())
}

func TestSession_TransferRejection_NoConfirmAttempted(t *testing.T) {
	// Arrange
	assetID := uuid.New()
	confirmCalls := 0

	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/api/v1/media/upload/image", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(uploader.Ticket{
			AssetID:   assetID,
			UploadURL: server.URL + "/storage/rejecting-key",
		})
	})
	// the storage target answers 413 for every upload
	mux.HandleFunc("/storage/rejecting-key", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
	})
	mux.HandleFunc("/api/v1/media/"+assetID.String()+"/confirm", func(w http.ResponseWriter, r *http.Request) {
		confirmCalls++
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := uploader.NewClient(server.URL, "", discardLogger())
	session := uploader.NewSession(client)

	// Act
	asset, err := session.Upload(context.Background(), uploader.UploadInput{
		Context:     "recipe",
		FileName:    "huge.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   4,
	}, bytes.NewReader([]byte("data")))

	// Assert
	assert.Nil(t, asset)
	var transferErr *uploader.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, transferErr.Status)
	assert.Equal(t, uploader.PhaseError, session.Status())
	assert.Equal(t, 0, confirmCalls)
}

func TestSession_PollBudgetExhausted_TimesOut(t *testing.T) {
	// Arrange
	f := newFakeAPI(t)
	f.pollStatuses = []domain.AssetStatus{domain.AssetStatusProcessing}

	client := uploader.NewClient(f.server.URL, "", discardLogger())
	poller := uploader.NewPoller(client)
	poller.Interval = time.Millisecond
	poller.MaxAttempts = 5
	session := uploader.NewSession(client, uploader.WithPoller(poller))

	payload := bytes.Repeat([]byte{0xCC}, 1500)
	f.videoTotal = int64(len(payload))

	// Act
	asset, err := session.Upload(context.Background(), uploader.UploadInput{
		Context:     "step",
		FileName:    "stuck.mp4",
		ContentType: "video/mp4",
		SizeBytes:   int64(len(payload)),
	}, bytes.NewReader(payload))

	// Assert
	assert.Nil(t, asset)
	require.ErrorIs(t, err, uploader.ErrProcessingTimeout)
	assert.Equal(t, uploader.PhaseError, session.Status())
	assert.ErrorIs(t, session.Err(), uploader.ErrProcessingTimeout)
	assert.Equal(t, 5, f.pollCalls)
}

func TestSession_ResetDiscardsInFlightResult(t *testing.T) {
	// Arrange
	assetID := uuid.New()
	payload := bytes.Repeat([]byte{0xDD}, 800)

	release := make(chan struct{})
	polling := make(chan struct{}, 1)

	mux := http.NewServeMux()
	var server *httptest.Server
	var received []byte
	mux.HandleFunc("/api/v1/media/upload/video", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(uploader.Ticket{
			AssetID:   assetID,
			UploadURL: server.URL + "/api/v1/media/" + assetID.String() + "/content",
			ChunkSize: 1000,
		})
	})
	mux.HandleFunc("/api/v1/media/"+assetID.String()+"/content", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = append(received, body...)
		w.Header().Set("Upload-Offset", strconv.Itoa(len(received)))
		fmt.Fprintf(w, `{"received":%d,"completed":%t}`, len(received), len(received) == len(payload))
	})
	// the poll route blocks until the test releases it
	mux.HandleFunc("/api/v1/media/"+assetID.String()+"/poll", func(w http.ResponseWriter, r *http.Request) {
		select {
		case polling <- struct{}{}:
		default:
		}
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(uploader.Asset{ID: assetID, Status: domain.AssetStatusReady, URL: "https://cdn.kitchen48.example/late"})
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	client := uploader.NewClient(server.URL, "", discardLogger())
	poller := uploader.NewPoller(client)
	poller.Interval = time.Millisecond
	session := uploader.NewSession(client, uploader.WithPoller(poller))

	done := make(chan error, 1)

	// Act
	go func() {
		_, err := session.Upload(context.Background(), uploader.UploadInput{
			Context:     "step",
			FileName:    "clip.mp4",
			ContentType: "video/mp4",
			SizeBytes:   int64(len(payload)),
		}, bytes.NewReader(payload))
		done <- err
	}()

	select {
	case <-polling:
	case <-time.After(2 * time.Second):
		t.Fatal("poll never started")
	}

	session.Reset()

	// Assert - idle synchronously, before the in-flight poll answers
	assert.Equal(t, uploader.PhaseIdle, session.Status())
	assert.Equal(t, 0, session.Progress())
	assert.Nil(t, session.Asset())
	assert.NoError(t, session.Err())

	close(release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, uploader.ErrSessionReset)
	case <-time.After(2 * time.Second):
		t.Fatal("upload goroutine did not finish")
	}

	// the late response must not have mutated anything
	assert.Equal(t, uploader.PhaseIdle, session.Status())
	assert.Nil(t, session.Asset())
	assert.NoError(t, session.Err())
}

// ctxRecordingTransport remembers the context of the last request it
// carried, so a test can observe the run context after the upload ends
type ctxRecordingTransport struct {
	mu   sync.Mutex
	last context.Context
}

func (c *ctxRecordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.mu.Lock()
	c.last = r.Context()
	c.mu.Unlock()
	return http.DefaultTransport.RoundTrip(r)
}

func (c *ctxRecordingTransport) lastContext() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func TestSession_TerminalStateReleasesRunContext(t *testing.T) {

	t.Run("ready", func(t *testing.T) {
		// Arrange
		f := newFakeAPI(t)
		f.readyAsset = uploader.Asset{Type: domain.MediaTypeImage, URL: "https://cdn.kitchen48.example/image/done"}

		recorder := &ctxRecordingTransport{}
		httpc := &http.Client{Transport: recorder}
		client := uploader.NewClient(f.server.URL, "", discardLogger(), uploader.WithHTTPClient(httpc))
		session := uploader.NewSession(client)

		parent, parentCancel := context.WithCancel(context.Background())
		defer parentCancel()
		payload := []byte("image bytes")

		// Act
		_, err := session.Upload(parent, uploader.UploadInput{
			Context:     "recipe",
			FileName:    "dinner.jpg",
			ContentType: "image/jpeg",
			SizeBytes:   int64(len(payload)),
		}, bytes.NewReader(payload))

		// Assert - the run context detaches from the still-live parent
		require.NoError(t, err)
		assert.Equal(t, uploader.PhaseReady, session.Status())
		runCtx := recorder.lastContext()
		require.NotNil(t, runCtx)
		select {
		case <-runCtx.Done():
		default:
			t.Fatal("run context still live after the upload completed")
		}
		assert.NoError(t, parent.Err())
	})

	t.Run("error", func(t *testing.T) {
		// Arrange
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/media/upload/image", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid upload context", http.StatusBadRequest)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		recorder := &ctxRecordingTransport{}
		httpc := &http.Client{Transport: recorder}
		client := uploader.NewClient(server.URL, "", discardLogger(), uploader.WithHTTPClient(httpc))
		session := uploader.NewSession(client)

		parent, parentCancel := context.WithCancel(context.Background())
		defer parentCancel()

		// Act
		_, err := session.Upload(parent, uploader.UploadInput{
			Context:     "bogus",
			FileName:    "dinner.jpg",
			ContentType: "image/jpeg",
			SizeBytes:   4,
		}, bytes.NewReader([]byte("data")))

		// Assert
		require.Error(t, err)
		assert.Equal(t, uploader.PhaseError, session.Status())
		runCtx := recorder.lastContext()
		require.NotNil(t, runCtx)
		select {
		case <-runCtx.Done():
		default:
			t.Fatal("run context still live after the upload failed")
		}
	})
}

func TestSession_AdoptExisting_ReadyIsIdempotentAndOffline(t *testing.T) {
	// Arrange
	f := newFakeAPI(t)
	client := uploader.NewClient(f.server.URL, "", discardLogger())
	session := uploader.NewSession(client)

	ready := &uploader.Asset{
		ID:     uuid.New(),
		Type:   domain.MediaTypeImage,
		Status: domain.AssetStatusReady,
		URL:    "https://cdn.kitchen48.example/image/existing",
	}

	// Act
	session.AdoptExisting(ready)
	session.AdoptExisting(ready)

	// Assert
	assert.Equal(t, uploader.PhaseReady, session.Status())
	assert.Equal(t, 100, session.Progress())
	require.NotNil(t, session.Asset())
	assert.Equal(t, ready.URL, session.Asset().URL)
	assert.Equal(t, 0, f.requestCount(), "adoption must not issue network calls")
}

func TestSession_AdoptExisting_ErrorSeedsErrorState(t *testing.T) {
	// Arrange
	f := newFakeAPI(t)
	client := uploader.NewClient(f.server.URL, "", discardLogger())
	session := uploader.NewSession(client)

	failed := &uploader.Asset{
		ID:           uuid.New(),
		Type:         domain.MediaTypeVideo,
		Status:       domain.AssetStatusError,
		ErrorMessage: "transcoding failed",
	}

	// Act
	session.AdoptExisting(failed)

	// Assert
	assert.Equal(t, uploader.PhaseError, session.Status())
	var procErr *uploader.ProcessingError
	require.ErrorAs(t, session.Err(), &procErr)
	assert.Contains(t, procErr.Message, "transcoding failed")
	assert.Nil(t, session.Asset())
}
