package promotion

import "promoservice/internal/pkg/validator"

// CreatePromotionRequest is the POST /promotions body
type CreatePromotionRequest struct {
	ImageURL  string `json:"img_url" validate:"required,url"`
	StartTime *int64 `json:"start_time" validate:"required,min=0"`
	EndTime   *int64 `json:"end_time" validate:"required,min=0"`
}

func (r *CreatePromotionRequest) Validate() map[string]string {
	return validator.Validate(r)
}

func (r *CreatePromotionRequest) toEntity() *Promotion {
	return &Promotion{
		ImageURL:  r.ImageURL,
		StartTime: *r.StartTime,
		EndTime:   *r.EndTime,
	}
}

// UpdatePromotionRequest is the PATCH /promotions/:id body.
// Missing and null fields are left unchanged.
type UpdatePromotionRequest struct {
	ImageURL  *string `json:"img_url" validate:"omitempty,url"`
	StartTime *int64  `json:"start_time" validate:"omitempty,min=0"`
	EndTime   *int64  `json:"end_time" validate:"omitempty,min=0"`
}

func (r *UpdatePromotionRequest) Validate() map[string]string {
	return validator.Validate(r)
}

func (r *UpdatePromotionRequest) touchesWindow() bool {
	return r.StartTime != nil || r.EndTime != nil
}

func (r *UpdatePromotionRequest) apply(p *Promotion) {
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.StartTime != nil {
		p.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		p.EndTime = *r.EndTime
	}
}

// fields returns the column/field names to set, keyed the same way in both backends.
func (r *UpdatePromotionRequest) fields() map[string]interface{} {
	set := map[string]interface{}{}
	if r.ImageURL != nil {
		set["img_url"] = *r.ImageURL
	}
	if r.StartTime != nil {
		set["start_time"] = *r.StartTime
	}
	if r.EndTime != nil {
		set["end_time"] = *r.EndTime
	}
	return set
}
