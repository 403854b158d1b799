package uploader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shacoof/kitchen48-sub000/internal/core/domain"
)

const (
	// DefaultPollInterval is the fixed pause between status polls
	DefaultPollInterval = 3 * time.Second
	// DefaultPollBudget bounds the poll loop to roughly six minutes
	DefaultPollBudget = 120
)

// Poller waits for a video asset to reach a terminal processing status.
// Polls are strictly sequential: the next one is scheduled only after the
// previous response arrived, so a slow server throttles the cadence by
// itself.
type Poller struct {
	client      *Client
	Interval    time.Duration
	MaxAttempts int
}

// NewPoller creates a Poller with the default cadence and budget
func NewPoller(client *Client) *Poller {
	return &Poller{
		client:      client,
		Interval:    DefaultPollInterval,
		MaxAttempts: DefaultPollBudget,
	}
}

// Wait polls until the asset is ready, the provider reports a failure, or
// the attempt budget runs out. The context is checked before every
// scheduling decision, so cancellation stops the loop without waiting for
// another interval.
//
// A provider failure surfaces as a ProcessingError; an exhausted budget
// as ErrProcessingTimeout. The two are deliberately distinct: a timeout
// means nothing is known to be broken.
func (p *Poller) Wait(ctx context.Context, assetID uuid.UUID) (*Asset, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	budget := p.MaxAttempts
	if budget <= 0 {
		budget = DefaultPollBudget
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for attempt := 1; attempt <= budget; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		asset, err := p.client.PollAsset(ctx, assetID)
		if err != nil {
			return nil, err
		}

		switch asset.Status {
		case domain.AssetStatusReady:
			return asset, nil
		case domain.AssetStatusError:
			return nil, &ProcessingError{Message: asset.ErrorMessage}
		}

		timer.Reset(interval)
	}

	return nil, ErrProcessingTimeout
}
