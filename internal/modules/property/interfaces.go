package property

import (
	"context"

	"renthub/internal/domain"
	"renthub/internal/repository"
)

// PropertyRepository is the persistence interface for listings
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	SoftDelete(ctx context.Context, id, ownerID int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error)
	ListApproved(ctx context.Context, f repository.SearchFilter) ([]domain.Property, int64, error)
}
