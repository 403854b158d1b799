package media_test

import (
	"encoding/json"
	"fmt"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	media2 "github.com/shacoof/kitchen48-sub000/internal/adapters/handlers/http/chi/v1/media"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
	"github.com/shacoof/kitchen48-sub000/internal/core/service/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readyImage(assetID uuid.UUID) *domain.MediaAsset {
	width, height := 1280, 960
	return &domain.MediaAsset{
		ID:              assetID,
		Type:            domain.MediaTypeImage,
		Context:         domain.UploadContextRecipe,
		ProviderAssetID: "image/" + assetID.String(),
		Status:          domain.AssetStatusReady,
		URL:             "https://cdn.kitchen48.example/image/" + assetID.String(),
		ThumbnailURL:    "https://cdn.kitchen48.example/image/" + assetID.String() + "_thumb.jpg",
		OriginalName:    "dinner.jpg",
		MimeType:        "image/jpeg",
		FileSize:        2048,
		Width:           &width,
		Height:          &height,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestConfirmImageV1_Success(t *testing.T) {
	//Arrange
	assetID := uuid.New()
	asset := readyImage(assetID)

	mockService := media.NewMockMediaService()
	mockService.On("ConfirmImage", mock.Anything, assetID).Return(asset, nil)

	h := newTestRouter(mockService)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/"+assetID.String()+"/confirm", nil)

	//Act
	h.ServeHTTP(w, req)

	//Assert
	assert.Equal(t, http2.StatusOK, w.Code)
	mockService.AssertExpectations(t)
	var response media2.V1AssetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, assetID, response.AssetID)
	assert.Equal(t, "ready", response.Status)
	assert.Equal(t, asset.URL, response.URL)
	assert.Equal(t, asset.ThumbnailURL, response.ThumbnailURL)
	require.NotNil(t, response.Width)
	assert.Equal(t, 1280, *response.Width)
}

func TestConfirmImageV1_Errors(t *testing.T) {

	t.Run("not found", func(t *testing.T) {
		//Arrange
		assetID := uuid.New()
		mockService := media.NewMockMediaService()
		mockService.On("ConfirmImage", mock.Anything, assetID).
			Return((*domain.MediaAsset)(nil), domain.ErrAssetNotFound)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/"+assetID.String()+"/confirm", nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})

	t.Run("rejected", func(t *testing.T) {
		//Arrange
		assetID := uuid.New()
		mockService := media.NewMockMediaService()
		mockService.On("ConfirmImage", mock.Anything, assetID).
			Return((*domain.MediaAsset)(nil), fmt.Errorf("%w: uploaded content is not an image", domain.ErrAssetRejected))

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/"+assetID.String()+"/confirm", nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusUnprocessableEntity, w.Code)
	})

	t.Run("not an image asset", func(t *testing.T) {
		//Arrange
		assetID := uuid.New()
		mockService := media.NewMockMediaService()
		mockService.On("ConfirmImage", mock.Anything, assetID).
			Return((*domain.MediaAsset)(nil), domain.ErrInvalidFileType)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/"+assetID.String()+"/confirm", nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})

	t.Run("state conflict", func(t *testing.T) {
		//Arrange
		assetID := uuid.New()
		mockService := media.NewMockMediaService()
		mockService.On("ConfirmImage", mock.Anything, assetID).
			Return((*domain.MediaAsset)(nil), domain.ErrAssetStateConflict)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/media/"+assetID.String()+"/confirm", nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
	})
}
