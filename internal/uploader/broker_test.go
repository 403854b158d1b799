package uploader_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestImageUpload_Success(t *testing.T) {
	// Arrange
	assetID := uuid.New()
	var gotAuth string
	var gotBody uploader.UploadInput

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/media/upload/image", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(uploader.Ticket{
			AssetID:         assetID,
			UploadURL:       "https://storage.example.com/image-key",
			ProviderAssetID: "image/" + assetID.String(),
			Headers:         map[string]string{"Content-Type": "image/jpeg"},
		})
	}))
	defer server.Close()

	client := uploader.NewClient(server.URL, "secret-token", discardLogger())

	// Act
	ticket, err := client.RequestImageUpload(context.Background(), uploader.UploadInput{
		Context:     "recipe",
		FileName:    "dinner.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, assetID, ticket.AssetID)
	assert.Equal(t, "https://storage.example.com/image-key", ticket.UploadURL)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "dinner.jpg", gotBody.FileName)
	assert.Equal(t, int64(2048), gotBody.SizeBytes)
}

func TestRequestVideoUpload_Success(t *testing.T) {
	// Arrange
	assetID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/media/upload/video", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(uploader.Ticket{
			AssetID:   assetID,
			UploadURL: "http://api.example.com/api/v1/media/" + assetID.String() + "/content",
			ChunkSize: 8 << 20,
		})
	}))
	defer server.Close()

	client := uploader.NewClient(server.URL, "", discardLogger())

	// Act
	ticket, err := client.RequestVideoUpload(context.Background(), uploader.UploadInput{
		Context:     "step",
		FileName:    "technique.mp4",
		ContentType: "video/mp4",
		SizeBytes:   50_000_000,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, assetID, ticket.AssetID)
	assert.Equal(t, int64(8<<20), ticket.ChunkSize)
}

func TestRequestImageUpload_Rejected(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid upload context", http.StatusBadRequest)
	}))
	defer server.Close()

	client := uploader.NewClient(server.URL, "", discardLogger())

	// Act
	ticket, err := client.RequestImageUpload(context.Background(), uploader.UploadInput{
		Context:     "bogus",
		FileName:    "dinner.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	})

	// Assert
	assert.Nil(t, ticket)
	var reqErr *uploader.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.False(t, reqErr.Network)
	assert.Contains(t, reqErr.Message, "invalid upload context")
}

func TestRequestImageUpload_NetworkFailure(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := uploader.NewClient(server.URL, "", discardLogger())

	// Act
	ticket, err := client.RequestImageUpload(context.Background(), uploader.UploadInput{
		Context:     "recipe",
		FileName:    "dinner.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	})

	// Assert
	assert.Nil(t, ticket)
	var reqErr *uploader.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.Network)
}
