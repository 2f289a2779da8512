package repository

import (
	"context"
	"time"

	"renthub/internal/domain"
	"renthub/internal/pkg/utils"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) DB() *gorm.DB { return r.db }

type propertyModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	OwnerID      int64      `gorm:"column:owner_id;index"`
	Title        string     `gorm:"column:title"`
	Description  string     `gorm:"column:description"`
	City         string     `gorm:"column:city;index"`
	Address      string     `gorm:"column:address"`
	NightlyPrice float64    `gorm:"column:nightly_price"`
	Currency     string     `gorm:"column:currency"`
	Photos       string     `gorm:"column:photos"`
	Status       string     `gorm:"column:status;index"`
	ReviewNotes  *string    `gorm:"column:review_notes"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at;index"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var notes string
	if m.ReviewNotes != nil {
		notes = *m.ReviewNotes
	}

	return &domain.Property{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		City:         m.City,
		Address:      m.Address,
		NightlyPrice: m.NightlyPrice,
		Currency:     m.Currency,
		Photos:       utils.DecodePhotos(m.Photos),
		Status:       domain.PropertyStatus(m.Status),
		ReviewNotes:  notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    m.DeletedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	var notes *string
	if p.ReviewNotes != "" {
		v := p.ReviewNotes
		notes = &v
	}

	return propertyModel{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		City:         p.City,
		Address:      p.Address,
		NightlyPrice: p.NightlyPrice,
		Currency:     p.Currency,
		Photos:       utils.EncodePhotos(p.Photos),
		Status:       string(p.Status),
		ReviewNotes:  notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		DeletedAt:    p.DeletedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *PropertyRepository) SoftDelete(ctx context.Context, id, ownerID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Update("deleted_at", time.Now())
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// UpdateStatus sets the moderation status and review notes.
func (r *PropertyRepository) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus, notes string) error {
	values := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if notes != "" {
		values["review_notes"] = notes
	}
	return r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	var ms []propertyModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Order("created_at DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Property, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

// SearchFilter narrows the public listing. Zero values are ignored.
type SearchFilter struct {
	City     string
	MaxPrice float64
	Limit    int
	Offset   int
}

func (r *PropertyRepository) ListApproved(ctx context.Context, f SearchFilter) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("status = ? AND deleted_at IS NULL", string(domain.PropertyApproved))
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MaxPrice > 0 {
		q = q.Where("nightly_price <= ?", f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []propertyModel
	if err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Property, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainProperty(m))
	}
	return out, total, nil
}

func (r *PropertyRepository) ListByStatus(ctx context.Context, status domain.PropertyStatus, limit, offset int) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("status = ? AND deleted_at IS NULL", string(status))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []propertyModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Property, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainProperty(m))
	}
	return out, total, nil
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("status = ? AND deleted_at IS NULL", string(status)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
