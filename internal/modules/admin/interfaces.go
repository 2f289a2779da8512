package admin

import (
	"context"

	"renthub/internal/domain"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus, notes string) error
	ListByStatus(ctx context.Context, status domain.PropertyStatus, limit, offset int) ([]domain.Property, int64, error)
	CountByStatus(ctx context.Context, status domain.PropertyStatus) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateVerification(ctx context.Context, userID int64, status domain.VerificationStatus, docType, docNumber string) (int64, error)
	ListByVerificationStatus(ctx context.Context, status domain.VerificationStatus, limit, offset int) ([]domain.User, int64, error)
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
}

type BookingCounter interface {
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}

type ContactCounter interface {
	CountByStatus(ctx context.Context, status domain.ContactStatus) (int64, error)
}

type NotificationSender interface {
	NotifyPropertyApproved(ctx context.Context, ownerID, propertyID int64, propertyTitle string) error
	NotifyPropertyRejected(ctx context.Context, ownerID, propertyID int64, propertyTitle, reason string) error
	NotifyVerificationApproved(ctx context.Context, userID int64) error
	NotifyVerificationRejected(ctx context.Context, userID int64, reason string) error
}
