package booking

import (
	"context"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetOwnerForBooking(ctx context.Context, bookingID int64) (ownerID int64, status string, propertyTitle string, err error)
	UpdateStatusIf(ctx context.Context, bookingID int64, to domain.BookingStatus, allowed ...domain.BookingStatus) (int64, error)
	CountOverlapping(ctx context.Context, propertyID int64, start, end string) (int64, error)
	ListByRenter(ctx context.Context, renterID int64, limit, offset int) ([]repository.BookingDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]repository.BookingDetails, error)
}

// PropertyReader is the slice of the property repository bookings need
type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// NotificationSender delivers booking events to users. Implementations
// must be safe to call best-effort: a failed send never fails the
// booking operation itself.
type NotificationSender interface {
	NotifyBookingRequested(ctx context.Context, ownerID, bookingID int64, propertyTitle string) error
	NotifyBookingApproved(ctx context.Context, renterID, bookingID int64, propertyTitle string) error
	NotifyBookingRejected(ctx context.Context, renterID, bookingID int64, propertyTitle string) error
}
