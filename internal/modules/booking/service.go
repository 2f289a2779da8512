package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"renthub/internal/domain"
	"renthub/internal/pkg/revalidate"
	"renthub/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	bookings   BookingRepository
	properties PropertyReader
	notifs     NotificationSender
	views      revalidate.Signaler
	log        *zap.Logger
}

func NewService(
	bookings BookingRepository,
	properties PropertyReader,
	notifs NotificationSender,
	views revalidate.Signaler,
	log *zap.Logger,
) *Service {
	if views == nil {
		views = revalidate.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings:   bookings,
		properties: properties,
		notifs:     notifs,
		views:      views,
		log:        log,
	}
}

func (s *Service) Create(ctx context.Context, renterID int64, req CreateBookingRequest) (*domain.Booking, error) {
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return nil, ErrValidation
	}
	if !end.After(start) {
		return nil, ErrValidation
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		return nil, ErrValidation
	}

	p, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyClosed
		}
		return nil, err
	}
	if p.Status != domain.PropertyApproved {
		return nil, ErrPropertyClosed
	}
	if p.OwnerID == renterID {
		return nil, ErrOwnBooking
	}

	// Date strings are ISO and compare lexicographically, so the overlap
	// check runs on the raw values.
	taken, err := s.bookings.CountOverlapping(ctx, req.PropertyID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrDatesTaken
	}

	nights := end.Sub(start).Hours() / 24
	total := math.Round(nights*p.NightlyPrice*100) / 100

	b := &domain.Booking{
		Reference:  uuid.NewString(),
		PropertyID: req.PropertyID,
		RenterID:   renterID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: total,
		Status:     domain.BookingPending,
		Note:       req.Note,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDatesTaken
		}
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingRequested(ctx, p.OwnerID, b.ID, p.Title); err != nil {
			s.log.Warn("booking request notification failed",
				zap.Int64("booking_id", b.ID), zap.Error(err))
		}
	}
	s.views.Signal(ctx, revalidate.PathProperties, revalidate.PathOwnerBookings)

	return b, nil
}

// Approve confirms a pending booking. Only the owner of the booked
// property may approve, and only a pending booking moves forward; a
// concurrent approve loses the conditional update and surfaces the
// current state instead.
func (s *Service) Approve(ctx context.Context, bookingID, ownerID int64) (*domain.Booking, error) {
	if err := s.authorizeOwner(ctx, bookingID, ownerID); err != nil {
		return nil, err
	}

	n, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingApproved, domain.BookingPending)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, s.stateConflict(ctx, bookingID)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, b, true)
	s.views.Signal(ctx, revalidate.PathBookings, revalidate.PathOwnerBookings, revalidate.PathAdmin)

	return b, nil
}

// Reject declines a pending booking. Rejected bookings land in the
// cancelled state; there is no separate rejected status.
func (s *Service) Reject(ctx context.Context, bookingID, ownerID int64) (*domain.Booking, error) {
	if err := s.authorizeOwner(ctx, bookingID, ownerID); err != nil {
		return nil, err
	}

	n, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingCancelled, domain.BookingPending)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, s.stateConflict(ctx, bookingID)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.notifyStatus(ctx, b, false)
	s.views.Signal(ctx, revalidate.PathBookings, revalidate.PathOwnerBookings, revalidate.PathAdmin)

	return b, nil
}

// Cancel lets a renter withdraw their own booking, whether it is still
// pending or already approved. The property owner is not notified.
func (s *Service) Cancel(ctx context.Context, bookingID, renterID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrNotFoundOrForbidden
	}

	n, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingCancelled,
		domain.BookingPending, domain.BookingApproved)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrAlreadyCancelled
	}

	b, err = s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.views.Signal(ctx, revalidate.PathBookings, revalidate.PathOwnerBookings, revalidate.PathAdmin)

	return b, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	if b.RenterID == userID {
		return b, nil
	}
	ownerID, _, _, err := s.bookings.GetOwnerForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotFoundOrForbidden
	}
	return b, nil
}

func (s *Service) ListForRenter(ctx context.Context, renterID int64, limit, offset int) ([]repository.BookingDetails, error) {
	return s.bookings.ListByRenter(ctx, renterID, limit, offset)
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]repository.BookingDetails, error) {
	return s.bookings.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *Service) authorizeOwner(ctx context.Context, bookingID, actorID int64) error {
	ownerID, status, _, err := s.bookings.GetOwnerForBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if ownerID == 0 && status == "" {
		return ErrNotFoundOrForbidden
	}
	if ownerID != actorID {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// stateConflict resolves why a conditional status update matched no
// rows: the booking either left the pending state or vanished.
func (s *Service) stateConflict(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	switch b.Status {
	case domain.BookingApproved:
		return ErrAlreadyApproved
	case domain.BookingCancelled:
		return ErrAlreadyCancelled
	}
	return ErrNotFoundOrForbidden
}

func (s *Service) notifyStatus(ctx context.Context, b *domain.Booking, approved bool) {
	if s.notifs == nil {
		return
	}
	_, _, title, err := s.bookings.GetOwnerForBooking(ctx, b.ID)
	if err != nil {
		title = ""
	}
	if approved {
		err = s.notifs.NotifyBookingApproved(ctx, b.RenterID, b.ID, title)
	} else {
		err = s.notifs.NotifyBookingRejected(ctx, b.RenterID, b.ID, title)
	}
	if err != nil {
		s.log.Warn("booking status notification failed",
			zap.Int64("booking_id", b.ID), zap.Bool("approved", approved), zap.Error(err))
	}
}
