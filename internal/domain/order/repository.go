package order

import (
	"context"
	"time"

	"promoservice/internal/database"
)

// Repository stores orders. Unknown or malformed ids yield ErrOrderNotFound.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// List returns orders newest first, optionally for one user.
	List(ctx context.Context, f ListFilter) ([]Order, error)
	// Update always refreshes UpdatedAt.
	Update(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NewRepository returns the implementation matching the store backend.
func NewRepository(store *database.Store, clock Clock) Repository {
	if clock == nil {
		clock = time.Now
	}
	if store.Backend == database.BackendMongo {
		return NewMongoRepository(store.Mongo, clock)
	}
	return NewGormRepository(store.SQL, clock)
}

// EnsureSchema creates the orders table or its MongoDB indexes.
func EnsureSchema(ctx context.Context, store *database.Store) error {
	if store.Backend == database.BackendMongo {
		return ensureMongoIndexes(ctx, store.Mongo)
	}
	return store.SQL.WithContext(ctx).AutoMigrate(&orderRecord{})
}
