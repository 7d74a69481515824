package promotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type promotionRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	ImageURL  string `gorm:"column:img_url;not null"`
	StartTime int64  `gorm:"column:start_time;index:idx_promotions_window,priority:1"`
	EndTime   int64  `gorm:"column:end_time;index:idx_promotions_window,priority:2"`
}

func (promotionRecord) TableName() string {
	return "promotions"
}

func (r *promotionRecord) toEntity() *Promotion {
	return &Promotion{ID: r.ID, ImageURL: r.ImageURL, StartTime: r.StartTime, EndTime: r.EndTime}
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Promotion) error {
	p.ID = uuid.NewString()
	rec := promotionRecord{ID: p.ID, ImageURL: p.ImageURL, StartTime: p.StartTime, EndTime: p.EndTime}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create promotion: %w", err)
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*Promotion, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPromotionNotFound
	}

	var rec promotionRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return rec.toEntity(), nil
}

func (r *gormRepository) List(ctx context.Context) ([]Promotion, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *gormRepository) ListActive(ctx context.Context, nowMs int64, limit, skip int) ([]Promotion, error) {
	q := r.db.WithContext(ctx).
		Where("start_time <= ? AND end_time >= ?", nowMs, nowMs).
		Limit(limit).
		Offset(skip)
	return r.find(q)
}

func (r *gormRepository) find(q *gorm.DB) ([]Promotion, error) {
	var recs []promotionRecord
	if err := q.Order("start_time DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}

	out := make([]Promotion, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toEntity())
	}
	return out, nil
}

func (r *gormRepository) Update(ctx context.Context, id string, req UpdatePromotionRequest) (*Promotion, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPromotionNotFound
	}

	fields := req.fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&promotionRecord{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update promotion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrPromotionNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *gormRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&promotionRecord{})
	if res.Error != nil {
		return false, fmt.Errorf("delete promotion: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
