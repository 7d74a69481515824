package promotion

import (
	"context"
	"time"
)

// Service handles promotion business logic
type Service struct {
	repo Repository
	now  Clock
}

// NewService creates promotion service
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, now: clock}
}

func (s *Service) Create(ctx context.Context, req *CreatePromotionRequest) (*Promotion, error) {
	p := req.toEntity()
	if p.EndTime < p.StartTime {
		return nil, ErrInvalidTimeWindow
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Promotion, error) {
	return s.repo.List(ctx)
}

// ListActive returns promotions running right now
func (s *Service) ListActive(ctx context.Context, limit, skip int) ([]Promotion, error) {
	return s.repo.ListActive(ctx, s.now().UnixMilli(), limit, skip)
}

// Update applies the fields present in req. The merged window must stay ordered.
func (s *Service) Update(ctx context.Context, id string, req UpdatePromotionRequest) (*Promotion, error) {
	if req.touchesWindow() {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		req.apply(current)
		if current.EndTime < current.StartTime {
			return nil, ErrInvalidTimeWindow
		}
	}
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPromotionNotFound
	}
	return nil
}
