package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// orderRecord: строка таблицы orders; позиции заказа хранятся JSON-массивом.
type orderRecord struct {
	ID         string  `gorm:"primaryKey;size:36"`
	UserID     string  `gorm:"column:user_id;index:idx_orders_user_created,priority:1;not null"`
	Items      string  `gorm:"column:items;type:text;not null"`
	TotalPrice float64 `gorm:"column:total_price"`
	Status     string  `gorm:"column:status;size:16;not null"`
	Created    int64   `gorm:"column:created_at;index:idx_orders_user_created,priority:2"`
	Updated    int64   `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string {
	return "orders"
}

type gormRepository struct {
	db  *gorm.DB
	now Clock
}

func NewGormRepository(db *gorm.DB, clock Clock) Repository {
	return &gormRepository{db: db, now: clock}
}

func (r *gormRepository) Create(ctx context.Context, o *Order) error {
	now := r.now().UTC().Truncate(time.Microsecond)
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now

	items, err := encodeItems(o.Items)
	if err != nil {
		return err
	}
	rec := orderRecord{
		ID:         o.ID,
		UserID:     o.UserID,
		Items:      items,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		Created:    now.UnixMicro(),
		Updated:    now.UnixMicro(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	var rec orderRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return rec.toEntity()
}

// List возвращает заказы по убыванию даты создания, при необходимости только одного пользователя.
func (r *gormRepository) List(ctx context.Context, f ListFilter) ([]Order, error) {
	q := r.db.WithContext(ctx)
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}

	var recs []orderRecord
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Skip).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]Order, 0, len(recs))
	for i := range recs {
		o, err := recs[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *gormRepository) Update(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}

	cols := map[string]interface{}{
		"updated_at": r.now().UTC().UnixMicro(),
	}
	if req.Status != nil {
		cols["status"] = string(*req.Status)
	}
	if req.Items != nil {
		items, err := encodeItems(*req.Items)
		if err != nil {
			return nil, err
		}
		cols["items"] = items
		cols["total_price"] = TotalOf(*req.Items)
	}

	res := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, fmt.Errorf("update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *gormRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&orderRecord{})
	if res.Error != nil {
		return false, fmt.Errorf("delete order: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (rec *orderRecord) toEntity() (*Order, error) {
	o := &Order{
		ID:         rec.ID,
		UserID:     rec.UserID,
		TotalPrice: rec.TotalPrice,
		Status:     Status(rec.Status),
		CreatedAt:  time.UnixMicro(rec.Created).UTC(),
		UpdatedAt:  time.UnixMicro(rec.Updated).UTC(),
	}
	if err := json.Unmarshal([]byte(rec.Items), &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", rec.ID, err)
	}
	return o, nil
}

func encodeItems(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode order items: %w", err)
	}
	return string(b), nil
}
