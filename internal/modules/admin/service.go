package admin

import (
	"context"
	"errors"
	"strings"

	"renthub/internal/domain"
	"renthub/internal/pkg/revalidate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrReasonRequired = errors.New("reason is required")
	ErrInvalidState   = errors.New("invalid state for this action")
)

type Service struct {
	properties PropertyRepository
	users      UserRepository
	bookings   BookingCounter
	contacts   ContactCounter
	notifs     NotificationSender
	views      revalidate.Signaler
	log        *zap.Logger
}

func NewService(
	properties PropertyRepository,
	users UserRepository,
	bookings BookingCounter,
	contacts ContactCounter,
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
		properties: properties,
		users:      users,
		bookings:   bookings,
		contacts:   contacts,
		notifs:     notifs,
		views:      views,
		log:        log,
	}
}

// -------------------- Properties --------------------

func (s *Service) GetPendingProperties(ctx context.Context, page, limit int) ([]domain.Property, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.properties.ListByStatus(ctx, domain.PropertyPending, limit, (page-1)*limit)
}

// ApproveProperty publishes a pending listing. adminID is recorded in
// the audit log only.
func (s *Service) ApproveProperty(ctx context.Context, propertyID, adminID int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status != domain.PropertyPending {
		return nil, ErrInvalidState
	}

	if err := s.properties.UpdateStatus(ctx, propertyID, domain.PropertyApproved, ""); err != nil {
		return nil, err
	}
	p.Status = domain.PropertyApproved

	s.log.Info("property approved",
		zap.Int64("property_id", propertyID), zap.Int64("admin_id", adminID))

	if s.notifs != nil {
		if err := s.notifs.NotifyPropertyApproved(ctx, p.OwnerID, p.ID, p.Title); err != nil {
			s.log.Warn("property approval notification failed",
				zap.Int64("property_id", p.ID), zap.Error(err))
		}
	}
	s.views.Signal(ctx, revalidate.PathProperties, revalidate.PathAdmin)

	return p, nil
}

// RejectProperty declines a pending listing. A reason is mandatory so
// the owner knows what to fix.
func (s *Service) RejectProperty(ctx context.Context, propertyID, adminID int64, reason string) (*domain.Property, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Status != domain.PropertyPending {
		return nil, ErrInvalidState
	}

	if err := s.properties.UpdateStatus(ctx, propertyID, domain.PropertyRejected, reason); err != nil {
		return nil, err
	}
	p.Status = domain.PropertyRejected
	p.ReviewNotes = reason

	s.log.Info("property rejected",
		zap.Int64("property_id", propertyID), zap.Int64("admin_id", adminID), zap.String("reason", reason))

	if s.notifs != nil {
		if err := s.notifs.NotifyPropertyRejected(ctx, p.OwnerID, p.ID, p.Title, reason); err != nil {
			s.log.Warn("property rejection notification failed",
				zap.Int64("property_id", p.ID), zap.Error(err))
		}
	}
	s.views.Signal(ctx, revalidate.PathAdmin)

	return p, nil
}

// -------------------- Owner verification --------------------

func (s *Service) GetPendingVerifications(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.ListByVerificationStatus(ctx, domain.VerificationPending, limit, (page-1)*limit)
}

func (s *Service) ApproveVerification(ctx context.Context, userID, adminID int64) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if u.VerificationStatus != domain.VerificationPending {
		return ErrInvalidState
	}

	n, err := s.users.UpdateVerification(ctx, userID, domain.VerificationApproved, "", "")
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	s.log.Info("owner verification approved",
		zap.Int64("user_id", userID), zap.Int64("admin_id", adminID))

	if s.notifs != nil {
		if err := s.notifs.NotifyVerificationApproved(ctx, userID); err != nil {
			s.log.Warn("verification notification failed",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) RejectVerification(ctx context.Context, userID, adminID int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if u.VerificationStatus != domain.VerificationPending {
		return ErrInvalidState
	}

	n, err := s.users.UpdateVerification(ctx, userID, domain.VerificationRejected, "", "")
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	s.log.Info("owner verification rejected",
		zap.Int64("user_id", userID), zap.Int64("admin_id", adminID), zap.String("reason", reason))

	if s.notifs != nil {
		if err := s.notifs.NotifyVerificationRejected(ctx, userID, reason); err != nil {
			s.log.Warn("verification notification failed",
				zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

// -------------------- Dashboard --------------------

// GetStats collects the dashboard counters. Counter failures degrade
// to zero instead of failing the whole dashboard.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	st := &Stats{}

	count := func(v *int64, f func() (int64, error)) {
		n, err := f()
		if err != nil {
			s.log.Warn("stats counter failed", zap.Error(err))
			return
		}
		*v = n
	}

	count(&st.PendingProperties, func() (int64, error) {
		return s.properties.CountByStatus(ctx, domain.PropertyPending)
	})
	count(&st.ApprovedProperties, func() (int64, error) {
		return s.properties.CountByStatus(ctx, domain.PropertyApproved)
	})
	count(&st.PendingBookings, func() (int64, error) {
		return s.bookings.CountByStatus(ctx, domain.BookingPending)
	})
	count(&st.ApprovedBookings, func() (int64, error) {
		return s.bookings.CountByStatus(ctx, domain.BookingApproved)
	})
	count(&st.CancelledBookings, func() (int64, error) {
		return s.bookings.CountByStatus(ctx, domain.BookingCancelled)
	})
	count(&st.OpenMessages, func() (int64, error) {
		return s.contacts.CountByStatus(ctx, domain.ContactOpen)
	})
	count(&st.Owners, func() (int64, error) {
		return s.users.CountByRole(ctx, domain.RoleOwner)
	})
	count(&st.Renters, func() (int64, error) {
		return s.users.CountByRole(ctx, domain.RoleRenter)
	})

	count(&st.PendingVerifications, func() (int64, error) {
		_, total, err := s.users.ListByVerificationStatus(ctx, domain.VerificationPending, 1, 0)
		return total, err
	})

	return st, nil
}
