package advertisement

import (
	"encoding/json"
	"strings"
	"time"

	"promoservice/internal/peer/product"
	"promoservice/internal/pkg/patch"
	"promoservice/internal/pkg/validator"
)

// CreateAdvertisementRequest is the POST /advertisements body
type CreateAdvertisementRequest struct {
	Title            string         `json:"title" validate:"required"`
	ImageURL         string         `json:"img_url" validate:"required,url"`
	Description      *string        `json:"description"`
	StartTime        *time.Time     `json:"start_time" validate:"required"`
	EndTime          *time.Time     `json:"end_time" validate:"required"`
	TargetProductIDs []int64        `json:"target_product_ids" validate:"omitempty,dive,gt=0"`
	LandingURL       *string        `json:"landing_url" validate:"omitempty,url"`
	IsActive         *bool          `json:"is_active"` // defaults to true
	Metadata         map[string]any `json:"metadata"`
}

// Validate returns field -> failed rule, or nil.
func (r *CreateAdvertisementRequest) Validate() map[string]string {
	errs := validator.Validate(r)
	if strings.TrimSpace(r.Title) == "" {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["title"] = "required"
	}
	return errs
}

func (r *CreateAdvertisementRequest) toEntity() *Advertisement {
	ad := &Advertisement{
		Title:            strings.TrimSpace(r.Title),
		ImageURL:         r.ImageURL,
		Description:      r.Description,
		TargetProductIDs: r.TargetProductIDs,
		LandingURL:       r.LandingURL,
		IsActive:         true,
		Metadata:         r.Metadata,
	}
	if r.StartTime != nil {
		ad.StartTime = r.StartTime.UTC()
	}
	if r.EndTime != nil {
		ad.EndTime = r.EndTime.UTC()
	}
	if r.IsActive != nil {
		ad.IsActive = *r.IsActive
	}
	if ad.TargetProductIDs == nil {
		ad.TargetProductIDs = []int64{}
	}
	return ad
}

// Patch is the PUT /advertisements/:id body. Absent keys leave the stored
// value untouched; null or empty values overwrite it.
type Patch struct {
	Title            patch.Field[string]         `json:"title"`
	ImageURL         patch.Field[string]         `json:"img_url"`
	Description      patch.Field[string]         `json:"description"`
	StartTime        patch.Field[time.Time]      `json:"start_time"`
	EndTime          patch.Field[time.Time]      `json:"end_time"`
	TargetProductIDs patch.Field[[]int64]        `json:"target_product_ids"`
	LandingURL       patch.Field[string]         `json:"landing_url"`
	IsActive         patch.Field[bool]           `json:"is_active"`
	Metadata         patch.Field[map[string]any] `json:"metadata"`
}

// Validate rejects nulls on required fields and malformed values.
func (p *Patch) Validate() map[string]string {
	errs := map[string]string{}

	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		errs["title"] = "required"
	}
	if p.ImageURL.Set && (p.ImageURL.Null || !validator.Var(p.ImageURL.Value, "url")) {
		errs["img_url"] = "url"
	}
	if p.StartTime.Set && p.StartTime.Null {
		errs["start_time"] = "required"
	}
	if p.EndTime.Set && p.EndTime.Null {
		errs["end_time"] = "required"
	}
	if p.IsActive.Set && p.IsActive.Null {
		errs["is_active"] = "required"
	}
	if p.LandingURL.HasValue() && p.LandingURL.Value != "" && !validator.Var(p.LandingURL.Value, "url") {
		errs["landing_url"] = "url"
	}
	for _, id := range p.TargetProductIDs.Value {
		if id <= 0 {
			errs["target_product_ids"] = "gt"
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *Patch) IsEmpty() bool {
	return !p.Title.Set && !p.ImageURL.Set && !p.Description.Set &&
		!p.StartTime.Set && !p.EndTime.Set && !p.TargetProductIDs.Set &&
		!p.LandingURL.Set && !p.IsActive.Set && !p.Metadata.Set
}

// TouchesWindow reports whether the patch changes start_time or end_time.
func (p *Patch) TouchesWindow() bool {
	return p.StartTime.Set || p.EndTime.Set
}

// Apply writes the present fields onto ad. Timestamps are not touched.
func (p *Patch) Apply(ad *Advertisement) {
	if p.Title.Set {
		ad.Title = strings.TrimSpace(p.Title.Value)
	}
	if p.ImageURL.Set {
		ad.ImageURL = p.ImageURL.Value
	}
	if p.Description.Set {
		ad.Description = p.Description.Ptr()
	}
	if p.StartTime.Set {
		ad.StartTime = p.StartTime.Value.UTC()
	}
	if p.EndTime.Set {
		ad.EndTime = p.EndTime.Value.UTC()
	}
	if p.TargetProductIDs.Set {
		ad.TargetProductIDs = p.TargetProductIDs.Value
		if ad.TargetProductIDs == nil {
			ad.TargetProductIDs = []int64{}
		}
	}
	if p.LandingURL.Set {
		ad.LandingURL = p.LandingURL.Ptr()
	}
	if p.IsActive.Set {
		ad.IsActive = p.IsActive.Value
	}
	if p.Metadata.Set {
		ad.Metadata = p.Metadata.Value
	}
}

// ClickRequest is the POST /advertisements/:id/click body
type ClickRequest struct {
	UserID    *string `json:"user_id"`
	SessionID *string `json:"session_id"`
}

// LandingType tells the client how to interpret a Landing.
type LandingType string

const (
	LandingTypeURL      LandingType = "url"
	LandingTypeProducts LandingType = "products"
)

// Landing is the outcome of a successful landing resolution.
type Landing struct {
	Type     LandingType
	URL      string
	Products []product.Product
}

type landingBody struct {
	Type     LandingType        `json:"type"`
	URL      string             `json:"url,omitempty"`
	Products *[]product.Product `json:"products,omitempty"`
}

// MarshalJSON keeps "products": [] for a products landing whose lookup came back empty.
func (l Landing) MarshalJSON() ([]byte, error) {
	b := landingBody{Type: l.Type, URL: l.URL}
	if l.Type == LandingTypeProducts {
		products := l.Products
		if products == nil {
			products = []product.Product{}
		}
		b.Products = &products
	}
	return json.Marshal(b)
}
