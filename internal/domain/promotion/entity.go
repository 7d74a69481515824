package promotion

import "time"

// Promotion is a banner shown between start_time and end_time.
// Times are Unix epoch milliseconds.
type Promotion struct {
	ID        string `json:"id"`
	ImageURL  string `json:"img_url"`
	StartTime int64  `json:"start_time"`
	EndTime   int64  `json:"end_time"`
}

// IsRunning reports whether the promotion window covers nowMs (inclusive).
func (p *Promotion) IsRunning(nowMs int64) bool {
	return p.StartTime <= nowMs && nowMs <= p.EndTime
}

// Clock returns the current time.
type Clock func() time.Time
