package property

import (
	"context"
	"errors"
	"strings"

	"renthub/internal/domain"
	"renthub/internal/pkg/revalidate"
	"renthub/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	properties PropertyRepository
	views      revalidate.Signaler
	log        *zap.Logger
}

func NewService(properties PropertyRepository, views revalidate.Signaler, log *zap.Logger) *Service {
	if views == nil {
		views = revalidate.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{properties: properties, views: views, log: log}
}

// Create registers a new listing. Listings start in the pending state
// and only become bookable after an admin approves them.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePropertyRequest) (*domain.Property, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.NightlyPrice <= 0 {
		return nil, ErrValidation
	}

	currency := req.Currency
	if currency == "" {
		currency = "KZT"
	}

	p := &domain.Property{
		OwnerID:      ownerID,
		Title:        title,
		Description:  req.Description,
		City:         strings.TrimSpace(req.City),
		Address:      req.Address,
		NightlyPrice: req.NightlyPrice,
		Currency:     currency,
		Photos:       req.Photos,
		Status:       domain.PropertyPending,
	}

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update edits an owner's listing. Any edit sends the listing back to
// pending review so changed content cannot ride on an old approval.
func (s *Service) Update(ctx context.Context, id, ownerID int64, req UpdatePropertyRequest) (*domain.Property, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrValidation
		}
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.City != nil {
		p.City = strings.TrimSpace(*req.City)
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.NightlyPrice != nil {
		if *req.NightlyPrice <= 0 {
			return nil, ErrValidation
		}
		p.NightlyPrice = *req.NightlyPrice
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.Photos != nil {
		p.Photos = *req.Photos
	}

	p.Status = domain.PropertyPending
	p.ReviewNotes = ""

	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("listing edited, sent back to review",
		zap.Int64("property_id", p.ID),
		zap.Int64("owner_id", ownerID))
	s.views.Signal(ctx, revalidate.PathProperties)

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	n, err := s.properties.SoftDelete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	s.views.Signal(ctx, revalidate.PathProperties)
	return nil
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	return s.properties.ListByOwner(ctx, ownerID)
}

// Search lists approved properties for the public catalog.
func (s *Service) Search(ctx context.Context, f repository.SearchFilter) ([]domain.Property, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.properties.ListApproved(ctx, f)
}
