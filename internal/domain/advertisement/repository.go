package advertisement

import (
	"context"
	"time"

	"promoservice/internal/database"
)

// Repository owns the advertisement collection.
//
// Malformed ids behave exactly like missing ones: ErrAdvertisementNotFound
// (or false from Delete). Other errors are storage failures.
type Repository interface {
	// Create stores ad with CreatedAt = UpdatedAt = now and fills in the assigned ID.
	Create(ctx context.Context, ad *Advertisement) error
	GetByID(ctx context.Context, id string) (*Advertisement, error)
	// ListActive returns ads eligible at now, newest first.
	ListActive(ctx context.Context, now time.Time, limit, skip int) ([]Advertisement, error)
	// Update applies the present patch fields and always refreshes UpdatedAt.
	Update(ctx context.Context, id string, p Patch) (*Advertisement, error)
	// Delete reports whether a document existed and was removed.
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

// EnsureSchema creates the table (SQL) or indexes (MongoDB) the repository relies on.
func EnsureSchema(ctx context.Context, store *database.Store) error {
	if store.Backend == database.BackendMongo {
		return ensureMongoIndexes(ctx, store.Mongo)
	}
	return store.SQL.WithContext(ctx).AutoMigrate(&advertisementRecord{})
}
