package advertisement

import (
	"context"
	"log/slog"
	"time"

	"promoservice/internal/peer/clicklog"
	"promoservice/internal/peer/product"
)

// ProductLookup resolves product ids against the product service.
type ProductLookup interface {
	FetchByIDs(ctx context.Context, ids []int64) ([]product.Product, error)
}

// ClickLogger forwards click entries to the logging service.
type ClickLogger interface {
	Send(ctx context.Context, entry clicklog.Entry) error
}

// Service handles advertisement business logic
type Service struct {
	repo     Repository
	products ProductLookup
	clicks   ClickLogger
	now      Clock
}

// NewService creates advertisement service
func NewService(repo Repository, products ProductLookup, clicks ClickLogger, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		repo:     repo,
		products: products,
		clicks:   clicks,
		now:      clock,
	}
}

// Create validates the display window and stores the ad
func (s *Service) Create(ctx context.Context, req *CreateAdvertisementRequest) (*Advertisement, error) {
	ad := req.toEntity()
	if ad.EndTime.Before(ad.StartTime) {
		return nil, ErrInvalidTimeWindow
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// GetByID returns advertisement by ID
func (s *Service) GetByID(ctx context.Context, id string) (*Advertisement, error) {
	return s.repo.GetByID(ctx, id)
}

// ListActive returns ads eligible right now
func (s *Service) ListActive(ctx context.Context, limit, skip int) ([]Advertisement, error) {
	return s.repo.ListActive(ctx, s.now(), limit, skip)
}

// Update applies a partial update. A patch touching the display window is
// checked against the stored values first.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*Advertisement, error) {
	if p.TouchesWindow() {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		p.Apply(current)
		if current.EndTime.Before(current.StartTime) {
			return nil, ErrInvalidTimeWindow
		}
	}

	return s.repo.Update(ctx, id, p)
}

// Delete removes the ad permanently
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAdvertisementNotFound
	}
	return nil
}

// RecordClick forwards a click on an existing ad to the logging service.
// Delivery failures are logged and dropped; only a missing ad is an error.
func (s *Service) RecordClick(ctx context.Context, id string, req ClickRequest) error {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	entry := clicklog.Entry{
		AdvertisementID: ad.ID,
		UserID:          req.UserID,
		SessionID:       req.SessionID,
	}
	if err := s.clicks.Send(ctx, entry); err != nil {
		slog.WarnContext(ctx, "click log delivery failed",
			"peer", "clicklog",
			"advertisement_id", ad.ID,
			"error", err,
		)
	}
	return nil
}
