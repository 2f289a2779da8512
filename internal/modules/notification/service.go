package notification

import (
	"context"
	"fmt"
	"time"

	"renthub/internal/domain"
	"renthub/internal/pkg/revalidate"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Repository is the persistence slice the service needs.
type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
}

type Service struct {
	repo  Repository
	hub   *Hub
	views revalidate.Signaler
	log   *zap.Logger
}

func NewService(repo Repository, hub *Hub, views revalidate.Signaler, log *zap.Logger) *Service {
	if views == nil {
		views = revalidate.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, views: views, log: log}
}

// Emit persists a notification and, when the recipient holds a live
// websocket, pushes it immediately. The insert is retried a few times
// with exponential backoff; callers treat the final error as
// best-effort and must not fail their primary operation on it.
func (s *Service) Emit(ctx context.Context, userID int64, typ domain.NotificationType, title, message string, relatedID *int64) error {
	n := &domain.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		CreatedAt: time.Now(),
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = 5 * time.Second

	err := backoff.Retry(func() error {
		return s.repo.Create(ctx, n)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx))
	if err != nil {
		s.log.Error("notification insert failed after retries",
			zap.Int64("user_id", userID),
			zap.String("type", string(typ)),
			zap.Error(err))
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
	s.views.Signal(ctx, revalidate.PathNotifications)
	return nil
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	if err := s.repo.MarkAsRead(ctx, notificationID, userID); err != nil {
		return err
	}
	s.views.Signal(ctx, revalidate.PathNotifications)
	return nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	updated, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.views.Signal(ctx, revalidate.PathNotifications)
	}
	return updated, nil
}

func (s *Service) NotifyBookingRequested(ctx context.Context, ownerID, bookingID int64, propertyTitle string) error {
	return s.Emit(
		ctx,
		ownerID,
		domain.NotifBookingRequest,
		"New Booking Request",
		fmt.Sprintf("You have a new booking request for %s", propertyTitle),
		&bookingID,
	)
}

func (s *Service) NotifyBookingApproved(ctx context.Context, renterID, bookingID int64, propertyTitle string) error {
	return s.Emit(
		ctx,
		renterID,
		domain.NotifBookingStatus,
		"Booking Approved!",
		fmt.Sprintf("Your booking for %s has been approved by the owner", propertyTitle),
		&bookingID,
	)
}

func (s *Service) NotifyBookingRejected(ctx context.Context, renterID, bookingID int64, propertyTitle string) error {
	return s.Emit(
		ctx,
		renterID,
		domain.NotifBookingStatus,
		"Booking Rejected",
		fmt.Sprintf("Your booking for %s was rejected by the owner", propertyTitle),
		&bookingID,
	)
}

func (s *Service) NotifyPropertyApproved(ctx context.Context, ownerID, propertyID int64, propertyTitle string) error {
	return s.Emit(
		ctx,
		ownerID,
		domain.NotifPropertyStatus,
		"Listing Approved",
		fmt.Sprintf("Your listing %s is now live", propertyTitle),
		&propertyID,
	)
}

func (s *Service) NotifyPropertyRejected(ctx context.Context, ownerID, propertyID int64, propertyTitle, reason string) error {
	msg := fmt.Sprintf("Your listing %s was rejected", propertyTitle)
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	return s.Emit(ctx, ownerID, domain.NotifPropertyStatus, "Listing Rejected", msg, &propertyID)
}

func (s *Service) NotifyVerificationApproved(ctx context.Context, userID int64) error {
	return s.Emit(
		ctx,
		userID,
		domain.NotifVerification,
		"Verification Approved",
		"Your identity verification has been approved",
		nil,
	)
}

func (s *Service) NotifyVerificationRejected(ctx context.Context, userID int64, reason string) error {
	msg := "Your identity verification was rejected"
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	return s.Emit(ctx, userID, domain.NotifVerification, "Verification Rejected", msg, nil)
}

func (s *Service) NotifyContactReply(ctx context.Context, userID, messageID int64, subject string) error {
	return s.Emit(
		ctx,
		userID,
		domain.NotifContactReply,
		"New Reply",
		fmt.Sprintf("Support replied to your message: %s", subject),
		&messageID,
	)
}
