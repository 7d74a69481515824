package advertisement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// advertisementRecord: строка таблицы advertisements.
// Время хранится в микросекундах Unix: сравнения окна показа одинаково
// работают в PostgreSQL и SQLite, а диапазон покрывает любые годы RFC 3339.
type advertisementRecord struct {
	ID               string  `gorm:"primaryKey;size:36"`
	Title            string  `gorm:"not null"`
	ImageURL         string  `gorm:"column:img_url;not null"`
	Description      *string `gorm:"column:description"`
	StartTime        int64   `gorm:"column:start_time;index:idx_advertisements_window,priority:2"`
	EndTime          int64   `gorm:"column:end_time;index:idx_advertisements_window,priority:3"`
	TargetProductIDs string  `gorm:"column:target_product_ids;type:text;not null"`
	LandingURL       *string `gorm:"column:landing_url"`
	IsActive         bool    `gorm:"column:is_active;index:idx_advertisements_window,priority:1"`
	Metadata         *string `gorm:"column:metadata;type:text"`
	Created          int64   `gorm:"column:created_at;index"`
	Updated          int64   `gorm:"column:updated_at"`
}

func (advertisementRecord) TableName() string {
	return "advertisements"
}

// gormRepository реализует Repository поверх gorm (PostgreSQL или SQLite).
type gormRepository struct {
	db  *gorm.DB
	now Clock
}

// NewGormRepository создаёт репозиторий для SQL-хранилища.
func NewGormRepository(db *gorm.DB, clock Clock) Repository {
	return &gormRepository{db: db, now: clock}
}

// Create сохраняет объявление; ID и метки времени назначаются здесь.
func (r *gormRepository) Create(ctx context.Context, ad *Advertisement) error {
	now := r.now().UTC().Truncate(time.Microsecond)
	ad.ID = uuid.NewString()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	ad.StartTime = ad.StartTime.UTC().Truncate(time.Microsecond)
	ad.EndTime = ad.EndTime.UTC().Truncate(time.Microsecond)

	rec, err := toRecord(ad)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("create advertisement: %w", err)
	}

	ad.normalize()
	return nil
}

// GetByID возвращает объявление; некорректный ID считается отсутствующим.
func (r *gormRepository) GetByID(ctx context.Context, id string) (*Advertisement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAdvertisementNotFound
	}

	var rec advertisementRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdvertisementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get advertisement: %w", err)
	}
	return rec.toEntity()
}

// ListActive выбирает объявления, активные в момент now (границы включительно).
// Новые сверху.
func (r *gormRepository) ListActive(ctx context.Context, now time.Time, limit, skip int) ([]Advertisement, error) {
	at := now.UTC().UnixMicro()

	var recs []advertisementRecord
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_time <= ? AND end_time >= ?", true, at, at).
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list active advertisements: %w", err)
	}

	ads := make([]Advertisement, 0, len(recs))
	for i := range recs {
		ad, err := recs[i].toEntity()
		if err != nil {
			return nil, err
		}
		ads = append(ads, *ad)
	}
	return ads, nil
}

// Update обновляет только переданные поля; updated_at меняется всегда,
// даже для пустого патча.
func (r *gormRepository) Update(ctx context.Context, id string, p Patch) (*Advertisement, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAdvertisementNotFound
	}

	cols, err := patchColumns(p)
	if err != nil {
		return nil, err
	}
	cols["updated_at"] = r.now().UTC().UnixMicro()

	res := r.db.WithContext(ctx).
		Model(&advertisementRecord{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, fmt.Errorf("update advertisement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAdvertisementNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет документ безвозвратно.
func (r *gormRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&advertisementRecord{})
	if res.Error != nil {
		return false, fmt.Errorf("delete advertisement: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func patchColumns(p Patch) (map[string]interface{}, error) {
	cols := map[string]interface{}{}

	if p.Title.Set {
		cols["title"] = strings.TrimSpace(p.Title.Value)
	}
	if p.ImageURL.Set {
		cols["img_url"] = p.ImageURL.Value
	}
	if p.Description.Set {
		cols["description"] = nullable(p.Description.Ptr())
	}
	if p.StartTime.Set {
		cols["start_time"] = p.StartTime.Value.UTC().UnixMicro()
	}
	if p.EndTime.Set {
		cols["end_time"] = p.EndTime.Value.UTC().UnixMicro()
	}
	if p.TargetProductIDs.Set {
		ids, err := encodeProductIDs(p.TargetProductIDs.Value)
		if err != nil {
			return nil, err
		}
		cols["target_product_ids"] = ids
	}
	if p.LandingURL.Set {
		cols["landing_url"] = nullable(p.LandingURL.Ptr())
	}
	if p.IsActive.Set {
		cols["is_active"] = p.IsActive.Value
	}
	if p.Metadata.Set {
		meta, err := encodeMetadata(p.Metadata.Value)
		if err != nil {
			return nil, err
		}
		cols["metadata"] = nullable(meta)
	}
	return cols, nil
}

// nullable отдаёт драйверу нетипизированный nil вместо nil-указателя.
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func toRecord(ad *Advertisement) (*advertisementRecord, error) {
	ids, err := encodeProductIDs(ad.TargetProductIDs)
	if err != nil {
		return nil, err
	}
	meta, err := encodeMetadata(ad.Metadata)
	if err != nil {
		return nil, err
	}
	return &advertisementRecord{
		ID:               ad.ID,
		Title:            ad.Title,
		ImageURL:         ad.ImageURL,
		Description:      ad.Description,
		StartTime:        ad.StartTime.UTC().UnixMicro(),
		EndTime:          ad.EndTime.UTC().UnixMicro(),
		TargetProductIDs: ids,
		LandingURL:       ad.LandingURL,
		IsActive:         ad.IsActive,
		Metadata:         meta,
		Created:          ad.CreatedAt.UTC().UnixMicro(),
		Updated:          ad.UpdatedAt.UTC().UnixMicro(),
	}, nil
}

func (rec *advertisementRecord) toEntity() (*Advertisement, error) {
	ad := &Advertisement{
		ID:          rec.ID,
		Title:       rec.Title,
		ImageURL:    rec.ImageURL,
		Description: rec.Description,
		StartTime:   time.UnixMicro(rec.StartTime),
		EndTime:     time.UnixMicro(rec.EndTime),
		LandingURL:  rec.LandingURL,
		IsActive:    rec.IsActive,
		CreatedAt:   time.UnixMicro(rec.Created),
		UpdatedAt:   time.UnixMicro(rec.Updated),
	}
	if rec.TargetProductIDs != "" {
		if err := json.Unmarshal([]byte(rec.TargetProductIDs), &ad.TargetProductIDs); err != nil {
			return nil, fmt.Errorf("decode target_product_ids of %s: %w", rec.ID, err)
		}
	}
	if rec.Metadata != nil {
		if err := json.Unmarshal([]byte(*rec.Metadata), &ad.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata of %s: %w", rec.ID, err)
		}
	}
	ad.normalize()
	return ad, nil
}

func encodeProductIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode target_product_ids: %w", err)
	}
	return string(b), nil
}

func encodeMetadata(meta map[string]any) (*string, error) {
	if meta == nil {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	s := string(b)
	return &s, nil
}
