package uploader

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// Confirm finalizes an image asset after its transfer completed and
// returns the updated record. A rejection (corrupt content, size
// mismatch) is terminal; the pipeline never retries it.
func (c *Client) Confirm(ctx context.Context, assetID uuid.UUID) (*Asset, error) {
	var asset Asset
	err := c.doJSON(ctx, http.MethodPost, c.url("/api/v1/media/%s/confirm", assetID), nil, &asset)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && !reqErr.Network {
			return nil, &ConfirmError{Message: reqErr.Message}
		}
		return nil, err
	}

	if asset.Status == domain.AssetStatusError {
		return nil, &ConfirmError{Message: asset.ErrorMessage}
	}
	return &asset, nil
}
