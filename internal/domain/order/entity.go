package order

import (
	"math"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// Item is one order line. UnitPrice is captured at order time.
type Item struct {
	ProductID int64   `json:"product_id" bson:"product_id" validate:"gt=0"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"min=1"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price" validate:"min=0"`
}

// Order is a user's purchase of one or more products.
type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Items      []Item    `json:"items"`
	TotalPrice float64   `json:"total_price"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TotalOf sums quantity * unit price, rounded to cents.
func TotalOf(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.UnitPrice
	}
	return math.Round(total*100) / 100
}

// Clock returns the current time.
type Clock func() time.Time
