package advertisement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promoservice/internal/pkg/patch"
)

func TestGormRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)

	ad := sampleAd(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	ad.Description = strPtr("spring sale")
	ad.TargetProductIDs = []int64{3, 1, 2}
	ad.Metadata = map[string]any{"campaign": "spring", "priority": float64(2)}

	require.NoError(t, repo.Create(ctx, ad))
	require.NotEmpty(t, ad.ID)
	assert.True(t, ad.CreatedAt.Equal(clock.now))
	assert.True(t, ad.UpdatedAt.Equal(clock.now))

	got, err := repo.GetByID(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, ad.ID, got.ID)
	assert.Equal(t, "Sale", got.Title)
	assert.Equal(t, "spring sale", *got.Description)
	assert.Equal(t, []int64{3, 1, 2}, got.TargetProductIDs)
	assert.Equal(t, ad.Metadata, got.Metadata)
	assert.Nil(t, got.LandingURL)
	assert.True(t, got.StartTime.Equal(ad.StartTime))
	assert.True(t, got.EndTime.Equal(ad.EndTime))
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
}

func TestGormRepository_GetByID_MissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestStore(t), newTestClock().Now)

	_, err := repo.GetByID(ctx, "3b241101-e2bb-4255-8caf-4136c566a962")
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)

	_, err = repo.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)
}

func TestGormRepository_ListActive_WindowBoundsInclusive(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)
	now := clock.now

	startsNow := sampleAd(now, now.Add(time.Hour))
	startsNow.Title = "starts now"
	endsNow := sampleAd(now.Add(-time.Hour), now)
	endsNow.Title = "ends now"
	future := sampleAd(now.Add(time.Microsecond), now.Add(time.Hour))
	future.Title = "future"
	expired := sampleAd(now.Add(-time.Hour), now.Add(-time.Microsecond))
	expired.Title = "expired"
	inactive := sampleAd(now.Add(-time.Hour), now.Add(time.Hour))
	inactive.Title = "inactive"
	inactive.IsActive = false

	for _, ad := range []*Advertisement{startsNow, endsNow, future, expired, inactive} {
		require.NoError(t, repo.Create(ctx, ad))
	}

	ads, err := repo.ListActive(ctx, now, 10, 0)
	require.NoError(t, err)

	titles := make([]string, 0, len(ads))
	for _, ad := range ads {
		titles = append(titles, ad.Title)
		assert.True(t, ad.IsEligible(now), ad.Title)
	}
	assert.ElementsMatch(t, []string{"starts now", "ends now"}, titles)
}

func TestGormRepository_FarFutureEndTime(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)

	forever := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	ad := sampleAd(clock.now.Add(-time.Hour), forever)
	require.NoError(t, repo.Create(ctx, ad))

	got, err := repo.GetByID(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, got.EndTime.Equal(forever), "end_time read back as %s", got.EndTime)

	ads, err := repo.ListActive(ctx, clock.now, 10, 0)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, ad.ID, ads[0].ID)

	updated, err := repo.Update(ctx, ad.ID, Patch{
		StartTime: patch.Of(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.StartTime.Year())
	assert.True(t, updated.EndTime.Equal(forever))
}

func TestGormRepository_ListActive_NewestFirstWithPaging(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)
	start, end := clock.now.Add(-time.Hour), clock.now.Add(24*time.Hour)

	for _, title := range []string{"first", "second", "third"} {
		ad := sampleAd(start, end)
		ad.Title = title
		require.NoError(t, repo.Create(ctx, ad))
		clock.Advance(time.Second)
	}

	ads, err := repo.ListActive(ctx, clock.now, 10, 0)
	require.NoError(t, err)
	require.Len(t, ads, 3)
	assert.Equal(t, "third", ads[0].Title)
	assert.Equal(t, "second", ads[1].Title)
	assert.Equal(t, "first", ads[2].Title)

	page, err := repo.ListActive(ctx, clock.now, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "second", page[0].Title)

	none, err := repo.ListActive(ctx, clock.now, 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGormRepository_Update_PartialKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)

	ad := sampleAd(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	ad.Description = strPtr("original")
	ad.LandingURL = strPtr("https://x/sale")
	ad.TargetProductIDs = []int64{7}
	require.NoError(t, repo.Create(ctx, ad))

	clock.Advance(time.Minute)
	updated, err := repo.Update(ctx, ad.ID, Patch{Title: patch.Of("  Mega sale  ")})
	require.NoError(t, err)

	assert.Equal(t, "Mega sale", updated.Title)
	assert.Equal(t, "original", *updated.Description)
	assert.Equal(t, "https://x/sale", *updated.LandingURL)
	assert.Equal(t, []int64{7}, updated.TargetProductIDs)
	assert.Equal(t, ad.ImageURL, updated.ImageURL)
	assert.True(t, updated.StartTime.Equal(ad.StartTime))
	assert.True(t, updated.CreatedAt.Equal(ad.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(ad.UpdatedAt))
}

func TestGormRepository_Update_NullOverwrites(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)

	ad := sampleAd(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	ad.Description = strPtr("original")
	ad.TargetProductIDs = []int64{1, 2}
	ad.Metadata = map[string]any{"k": "v"}
	require.NoError(t, repo.Create(ctx, ad))

	updated, err := repo.Update(ctx, ad.ID, Patch{
		Description:      patch.Null[string](),
		TargetProductIDs: patch.Of([]int64{}),
		Metadata:         patch.Null[map[string]any](),
		IsActive:         patch.Of(false),
	})
	require.NoError(t, err)

	assert.Nil(t, updated.Description)
	assert.Equal(t, []int64{}, updated.TargetProductIDs)
	assert.Nil(t, updated.Metadata)
	assert.False(t, updated.IsActive)
}

func TestGormRepository_Update_EmptyPatchRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)

	ad := sampleAd(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, ad))

	clock.Advance(time.Second)
	updated, err := repo.Update(ctx, ad.ID, Patch{})
	require.NoError(t, err)

	assert.Equal(t, ad.Title, updated.Title)
	assert.True(t, updated.UpdatedAt.Equal(clock.now))
	assert.True(t, updated.CreatedAt.Equal(ad.CreatedAt))
}

func TestGormRepository_Update_Missing(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestStore(t), newTestClock().Now)

	_, err := repo.Update(ctx, "3b241101-e2bb-4255-8caf-4136c566a962", Patch{Title: patch.Of("x")})
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)

	_, err = repo.Update(ctx, "bogus", Patch{})
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)
}

func TestGormRepository_Delete_Idempotent(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock()
	repo := NewRepository(newTestStore(t), clock.Now)

	ad := sampleAd(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, ad))

	deleted, err := repo.Delete(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, ad.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByID(ctx, ad.ID)
	assert.ErrorIs(t, err, ErrAdvertisementNotFound)

	deleted, err = repo.Delete(ctx, "bogus")
	require.NoError(t, err)
	assert.False(t, deleted)
}
