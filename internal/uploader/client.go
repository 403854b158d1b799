// Package uploader is the client side of the media pipeline: it obtains
// upload targets, moves bytes to them, finalizes images, polls video
// processing and tracks one logical upload's lifecycle for a caller.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

// Client talks to the media API. It is an explicit value carrying its
// credential; construct one per configuration and share it freely between
// sessions.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient creates a media API client. Token may be empty for
// unauthenticated deployments.
func NewClient(baseURL, token string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpc:   http.DefaultClient,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(format string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doJSON performs one API round trip, encoding in (when non-nil) and
// decoding the response into out (when non-nil). A non-2xx status is
// returned as a RequestError carrying the raw response text.
func (c *Client) doJSON(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RequestError{Message: err.Error(), Network: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RequestError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}
	return nil
}

// GetAsset fetches the asset record
func (c *Client) GetAsset(ctx context.Context, assetID uuid.UUID) (*Asset, error) {
	var asset Asset
	if err := c.doJSON(ctx, http.MethodGet, c.url("/api/v1/media/%s", assetID), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// PollAsset fetches the asset record on the poll route. Same read as
// GetAsset; polling traffic uses a dedicated route so the server can tell
// it apart.
func (c *Client) PollAsset(ctx context.Context, assetID uuid.UUID) (*Asset, error) {
	var asset Asset
	if err := c.doJSON(ctx, http.MethodPost, c.url("/api/v1/media/%s/poll", assetID), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes the asset record and its stored objects
func (c *Client) DeleteAsset(ctx context.Context, assetID uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, c.url("/api/v1/media/%s", assetID), nil, nil)
}

// Asset is the wire shape of a media asset as the API serves it
type Asset struct {
	ID              uuid.UUID          `json:"asset_id"`
	Type            domain.MediaType   `json:"type"`
	Context         string             `json:"context"`
	EntityID        *uuid.UUID         `json:"entity_id,omitempty"`
	Status          domain.AssetStatus `json:"status"`
	URL             string             `json:"url,omitempty"`
	ThumbnailURL    string             `json:"thumbnail_url,omitempty"`
	OriginalName    string             `json:"original_name"`
	MimeType        string             `json:"mime_type"`
	FileSize        int64              `json:"file_size"`
	DurationSeconds *float64           `json:"duration_seconds,omitempty"`
	Width           *int               `json:"width,omitempty"`
	Height          *int               `json:"height,omitempty"`
	ErrorMessage    string             `json:"error_message,omitempty"`
}
