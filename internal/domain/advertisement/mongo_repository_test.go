//go:build integration

package advertisement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcMongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"promoservice/internal/database"
	"promoservice/internal/pkg/patch"
)

func newMongoStore(t *testing.T) *database.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcMongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := database.Open(ctx, uri, "promotion_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	require.NoError(t, EnsureSchema(ctx, store))
	return store
}

func TestMongoRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newMongoStore(t), clock.Now)

	ad := sampleAd(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	ad.LandingURL = strPtr("https://x/sale")
	ad.Metadata = map[string]any{"campaign": "spring"}
	require.NoError(t, repo.Create(ctx, ad))
	require.Len(t, ad.ID, 24)

	got, err := repo.GetByID(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sale", got.Title)
	assert.Equal(t, "https://x/sale", *got.LandingURL)
	assert.Equal(t, "spring", got.Metadata["campaign"])
	assert.True(t, got.CreatedAt.Equal(ad.CreatedAt))

	_, err = repo.GetByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)

	clock.Advance(time.Second)
	updated, err := repo.Update(ctx, ad.ID, Patch{LandingURL: patch.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.LandingURL)
	assert.Equal(t, "Sale", updated.Title)
	assert.True(t, updated.UpdatedAt.After(ad.UpdatedAt))

	deleted, err := repo.Delete(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, ad.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMongoRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newMongoStore(t), clock.Now)
	now := clock.now

	for _, title := range []string{"old", "new"} {
		ad := sampleAd(now, now.Add(time.Hour))
		ad.Title = title
		require.NoError(t, repo.Create(ctx, ad))
		clock.Advance(time.Second)
	}
	expired := sampleAd(now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, expired))

	ads, err := repo.ListActive(ctx, now, 10, 0)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, "new", ads[0].Title)
	assert.Equal(t, "old", ads[1].Title)
}
