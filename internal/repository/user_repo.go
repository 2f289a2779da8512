package repository

import (
	"context"
	"strings"
	"time"

	"renthub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

type userModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Email              string    `gorm:"column:email;uniqueIndex"`
	PasswordHash       string    `gorm:"column:password_hash"`
	Role               string    `gorm:"column:role"`
	Name               string    `gorm:"column:name"`
	Phone              *string   `gorm:"column:phone"`
	VerificationStatus *string   `gorm:"column:verification_status"`
	IDDocumentType     *string   `gorm:"column:id_document_type"`
	IDDocumentNumber   *string   `gorm:"column:id_document_number"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:                 m.ID,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Role:               domain.UserRole(m.Role),
		Name:               m.Name,
		Phone:              strOrEmpty(m.Phone),
		VerificationStatus: domain.VerificationStatus(strOrEmpty(m.VerificationStatus)),
		IDDocumentType:     strOrEmpty(m.IDDocumentType),
		IDDocumentNumber:   strOrEmpty(m.IDDocumentNumber),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	return userModel{
		ID:                 u.ID,
		Email:              email,
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		Name:               u.Name,
		Phone:              ptrOrNil(u.Phone),
		VerificationStatus: ptrOrNil(string(u.VerificationStatus)),
		IDDocumentType:     ptrOrNil(u.IDDocumentType),
		IDDocumentNumber:   ptrOrNil(u.IDDocumentNumber),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	m.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(&m).Error
}

// UpdateVerification sets the verification status and, when non-empty, the
// submitted document fields in a single statement.
func (r *UserRepository) UpdateVerification(ctx context.Context, userID int64, status domain.VerificationStatus, docType, docNumber string) (int64, error) {
	updates := map[string]interface{}{
		"verification_status": string(status),
		"updated_at":          time.Now(),
	}
	if docType != "" {
		updates["id_document_type"] = docType
	}
	if docNumber != "" {
		updates["id_document_number"] = docNumber
	}

	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Updates(updates)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *UserRepository) ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("verification_status = ?", string(status))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []userModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		u := toDomainUser(m)
		u.PasswordHash = ""
		out = append(out, *u)
	}
	return out, total, nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role domain.UserRole) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("role = ?", string(role)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
