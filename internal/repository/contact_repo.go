package repository

import (
	"context"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

type contactMessageModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ThreadKey string    `gorm:"column:thread_key;index"`
	UserID    *int64    `gorm:"column:user_id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Subject   string    `gorm:"column:subject"`
	Body      string    `gorm:"column:body"`
	IsReply   bool      `gorm:"column:is_reply"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (contactMessageModel) TableName() string { return "contact_messages" }

func toDomainContact(m contactMessageModel) *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        m.ID,
		ThreadKey: m.ThreadKey,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		IsReply:   m.IsReply,
		Status:    domain.ContactStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	m := contactMessageModel{
		ThreadKey: msg.ThreadKey,
		UserID:    msg.UserID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Body:      msg.Body,
		IsReply:   msg.IsReply,
		Status:    string(msg.Status),
		CreatedAt: msg.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = *toDomainContact(m)
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	var m contactMessageModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainContact(m), nil
}

// ListByStatus returns root messages (not replies) in the given status,
// newest first.
func (r *ContactRepository) ListByStatus(ctx context.Context, status domain.ContactStatus, limit, offset int) ([]domain.ContactMessage, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&contactMessageModel{}).
		Where("status = ? AND is_reply = ?", string(status), false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []contactMessageModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.ContactMessage, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainContact(m))
	}
	return out, total, nil
}

// ListThread returns every message sharing a thread key, oldest first.
func (r *ContactRepository) ListThread(ctx context.Context, threadKey string) ([]domain.ContactMessage, error) {
	var ms []contactMessageModel
	tx := r.db.WithContext(ctx).
		Where("thread_key = ?", threadKey).
		Order("created_at ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ContactMessage, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainContact(m))
	}
	return out, nil
}

func (r *ContactRepository) UpdateThreadStatus(ctx context.Context, threadKey string, status domain.ContactStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&contactMessageModel{}).
		Where("thread_key = ?", threadKey).
		Update("status", string(status))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *ContactRepository) CountByStatus(ctx context.Context, status domain.ContactStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&contactMessageModel{}).
		Where("status = ? AND is_reply = ?", string(status), false).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
