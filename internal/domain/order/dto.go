package order

import "promoservice/internal/pkg/validator"

// CreateOrderRequest is the POST /orders body
type CreateOrderRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	Items  []Item  `json:"items" validate:"required,min=1,dive"`
	Status *Status `json:"status" validate:"omitempty,oneof=pending paid shipped cancelled"`
}

func (r *CreateOrderRequest) Validate() map[string]string {
	return validator.Validate(r)
}

func (r *CreateOrderRequest) toEntity() *Order {
	o := &Order{
		UserID:     r.UserID,
		Items:      r.Items,
		TotalPrice: TotalOf(r.Items),
		Status:     StatusPending,
	}
	if r.Status != nil {
		o.Status = *r.Status
	}
	return o
}

// UpdateOrderRequest is the PATCH /orders/:id body. Replacing items
// recomputes total_price.
type UpdateOrderRequest struct {
	Status *Status `json:"status" validate:"omitempty,oneof=pending paid shipped cancelled"`
	Items  *[]Item `json:"items" validate:"omitempty,min=1,dive"`
}

func (r *UpdateOrderRequest) Validate() map[string]string {
	return validator.Validate(r)
}

// ListFilter narrows GET /orders.
type ListFilter struct {
	UserID string
	Limit  int
	Skip   int
}
