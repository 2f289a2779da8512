package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"renthub/internal/domain"
	"renthub/internal/pkg/revalidate"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("message not found")
	ErrClosed     = errors.New("thread is closed")
)

// ContactRepository is the persistence slice for contact threads.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	GetByID(ctx context.Context, id int64) (*domain.ContactMessage, error)
	ListByStatus(ctx context.Context, status domain.ContactStatus, limit, offset int) ([]domain.ContactMessage, int64, error)
	ListThread(ctx context.Context, threadKey string) ([]domain.ContactMessage, error)
	UpdateThreadStatus(ctx context.Context, threadKey string, status domain.ContactStatus) (int64, error)
}

type NotificationSender interface {
	NotifyContactReply(ctx context.Context, userID, messageID int64, subject string) error
}

type Service struct {
	contacts ContactRepository
	notifs   NotificationSender
	views    revalidate.Signaler
	log      *zap.Logger
}

func NewService(contacts ContactRepository, notifs NotificationSender, views revalidate.Signaler, log *zap.Logger) *Service {
	if views == nil {
		views = revalidate.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{contacts: contacts, notifs: notifs, views: views, log: log}
}

type SubmitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// Submit files a new contact message. Works for anonymous visitors;
// when userID is non-zero the thread is linked to the account so
// replies can be pushed as notifications.
func (s *Service) Submit(ctx context.Context, userID int64, req SubmitRequest) (*domain.ContactMessage, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, ErrValidation
	}

	msg := &domain.ContactMessage{
		ThreadKey: uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   strings.TrimSpace(req.Subject),
		Body:      req.Body,
		Status:    domain.ContactOpen,
		CreatedAt: time.Now(),
	}
	if userID > 0 {
		msg.UserID = &userID
	}

	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.views.Signal(ctx, revalidate.PathContact)

	return msg, nil
}

// Reply appends an admin reply to a thread and marks it answered. The
// original sender gets a notification when they have an account.
func (s *Service) Reply(ctx context.Context, messageID, adminID int64, body string) (*domain.ContactMessage, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrValidation
	}

	root, err := s.contacts.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if root.Status == domain.ContactClosed {
		return nil, ErrClosed
	}

	reply := &domain.ContactMessage{
		ThreadKey: root.ThreadKey,
		UserID:    &adminID,
		Name:      "Support",
		Email:     root.Email,
		Subject:   root.Subject,
		Body:      body,
		IsReply:   true,
		Status:    domain.ContactAnswered,
		CreatedAt: time.Now(),
	}
	if err := s.contacts.Create(ctx, reply); err != nil {
		return nil, err
	}

	if _, err := s.contacts.UpdateThreadStatus(ctx, root.ThreadKey, domain.ContactAnswered); err != nil {
		return nil, err
	}

	if s.notifs != nil && root.UserID != nil {
		if err := s.notifs.NotifyContactReply(ctx, *root.UserID, root.ID, root.Subject); err != nil {
			s.log.Warn("contact reply notification failed",
				zap.Int64("message_id", root.ID), zap.Error(err))
		}
	}
	s.views.Signal(ctx, revalidate.PathContact)

	return reply, nil
}

func (s *Service) Close(ctx context.Context, messageID int64) error {
	root, err := s.contacts.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	n, err := s.contacts.UpdateThreadStatus(ctx, root.ThreadKey, domain.ContactClosed)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	s.views.Signal(ctx, revalidate.PathContact)
	return nil
}

func (s *Service) ListByStatus(ctx context.Context, status domain.ContactStatus, page, limit int) ([]domain.ContactMessage, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.contacts.ListByStatus(ctx, status, limit, (page-1)*limit)
}

func (s *Service) GetThread(ctx context.Context, messageID int64) ([]domain.ContactMessage, error) {
	root, err := s.contacts.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.contacts.ListThread(ctx, root.ThreadKey)
}
