package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promoservice/internal/database"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	store, err := database.Open(ctx, ":memory:", "")
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(ctx, store))
	t.Cleanup(func() { _ = store.Close(ctx) })

	return NewService(NewRepository(store), func() time.Time { return testNow })
}

func int64Ptr(v int64) *int64 { return &v }

func create(t *testing.T, svc *Service, start, end time.Time) *Promotion {
	t.Helper()
	p, err := svc.Create(context.Background(), &CreatePromotionRequest{
		ImageURL:  "https://cdn.example.com/promo.png",
		StartTime: int64Ptr(start.UnixMilli()),
		EndTime:   int64Ptr(end.UnixMilli()),
	})
	require.NoError(t, err)
	return p
}

func TestService_ListActive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	early := create(t, svc, testNow.Add(-2*time.Hour), testNow.Add(time.Hour))
	late := create(t, svc, testNow.Add(-time.Hour), testNow)
	create(t, svc, testNow.Add(time.Millisecond), testNow.Add(time.Hour))
	create(t, svc, testNow.Add(-3*time.Hour), testNow.Add(-time.Millisecond))

	active, err := svc.ListActive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, late.ID, active[0].ID)
	assert.Equal(t, early.ID, active[1].ID)

	page, err := svc.ListActive(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, early.ID, page[0].ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestService_Create_InvertedWindow(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), &CreatePromotionRequest{
		ImageURL:  "https://cdn.example.com/promo.png",
		StartTime: int64Ptr(2000),
		EndTime:   int64Ptr(1000),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := create(t, svc, testNow, testNow.Add(time.Hour))

	updated, err := svc.Update(ctx, p.ID, UpdatePromotionRequest{ImageURL: strPtr("https://cdn.example.com/new.png")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/new.png", updated.ImageURL)
	assert.Equal(t, p.StartTime, updated.StartTime)
	assert.Equal(t, p.EndTime, updated.EndTime)

	same, err := svc.Update(ctx, p.ID, UpdatePromotionRequest{})
	require.NoError(t, err)
	assert.Equal(t, updated, same)

	_, err = svc.Update(ctx, p.ID, UpdatePromotionRequest{EndTime: int64Ptr(p.StartTime - 1)})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	_, err = svc.Update(ctx, "3b241101-e2bb-4255-8caf-4136c566a962", UpdatePromotionRequest{ImageURL: strPtr("https://x/y")})
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := create(t, svc, testNow, testNow.Add(time.Hour))

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrPromotionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "bogus"), ErrPromotionNotFound)

	_, err := svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func strPtr(s string) *string { return &s }
