package promotion

import (
	"context"

	"promoservice/internal/database"
)

// Repository stores promotions. Unknown or malformed ids yield ErrPromotionNotFound.
type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	GetByID(ctx context.Context, id string) (*Promotion, error)
	// List returns every promotion, latest start first.
	List(ctx context.Context) ([]Promotion, error)
	// ListActive returns promotions running at nowMs, latest start first.
	ListActive(ctx context.Context, nowMs int64, limit, skip int) ([]Promotion, error)
	Update(ctx context.Context, id string, req UpdatePromotionRequest) (*Promotion, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NewRepository returns the implementation matching the store backend.
func NewRepository(store *database.Store) Repository {
	if store.Backend == database.BackendMongo {
		return NewMongoRepository(store.Mongo)
	}
	return NewGormRepository(store.SQL)
}

// EnsureSchema creates the promotions table or its MongoDB indexes.
func EnsureSchema(ctx context.Context, store *database.Store) error {
	if store.Backend == database.BackendMongo {
		return ensureMongoIndexes(ctx, store.Mongo)
	}
	return store.SQL.WithContext(ctx).AutoMigrate(&promotionRecord{})
}
