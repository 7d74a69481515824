package advertisement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promoservice/internal/database"
	"promoservice/internal/peer/clicklog"
	"promoservice/internal/peer/product"
)

/* ==================== FIXTURES ==================== */

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	ctx := context.Background()

	store, err := database.Open(ctx, ":memory:", "")
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(ctx, store))
	t.Cleanup(func() { _ = store.Close(ctx) })
	return store
}

func strPtr(s string) *string { return &s }

func sampleAd(start, end time.Time) *Advertisement {
	return &Advertisement{
		Title:            "Sale",
		ImageURL:         "https://x/y.png",
		StartTime:        start,
		EndTime:          end,
		TargetProductIDs: []int64{},
		IsActive:         true,
	}
}

/* ==================== MOCKS ==================== */

type mockProductLookup struct {
	mock.Mock
}

func (m *mockProductLookup) FetchByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

type mockClickLogger struct {
	mock.Mock
}

func (m *mockClickLogger) Send(ctx context.Context, entry clicklog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
