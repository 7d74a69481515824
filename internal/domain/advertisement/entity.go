package advertisement

import "time"

// Advertisement is an ad creative with a display window and a landing destination.
type Advertisement struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	ImageURL         string         `json:"img_url"`
	Description      *string        `json:"description"`
	StartTime        time.Time      `json:"start_time"`
	EndTime          time.Time      `json:"end_time"`
	TargetProductIDs []int64        `json:"target_product_ids"`
	LandingURL       *string        `json:"landing_url"`
	IsActive         bool           `json:"is_active"`
	Metadata         map[string]any `json:"metadata"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsEligible reports whether the ad may be displayed at now.
// Both window ends are inclusive.
func (a *Advertisement) IsEligible(now time.Time) bool {
	return a.IsActive && !now.Before(a.StartTime) && !now.After(a.EndTime)
}

// HasLandingURL reports whether the ad redirects to an external URL.
func (a *Advertisement) HasLandingURL() bool {
	return a.LandingURL != nil && *a.LandingURL != ""
}

// normalize fills the zero values the JSON representation must not expose as null.
func (a *Advertisement) normalize() {
	if a.TargetProductIDs == nil {
		a.TargetProductIDs = []int64{}
	}
	a.StartTime = a.StartTime.UTC()
	a.EndTime = a.EndTime.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
}

// Clock returns the current time. Repositories take one so tests can pin it.
type Clock func() time.Time
