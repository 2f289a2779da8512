package property

import (
	"context"
	"testing"

	"renthub/internal/domain"
	"renthub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 42
	}
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) SoftDelete(ctx context.Context, id, ownerID int64) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListApproved(ctx context.Context, f repository.SearchFilter) ([]domain.Property, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Property), args.Get(1).(int64), args.Error(2)
}

func TestService_Create_StartsPending(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, nil, nil)

	p, err := service.Create(context.Background(), 7, CreatePropertyRequest{
		Title:        "Loft on Abay",
		City:         "Almaty",
		NightlyPrice: 15000,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.PropertyPending, p.Status)
	assert.Equal(t, int64(7), p.OwnerID)
	assert.Equal(t, "KZT", p.Currency)
}

func TestService_Create_RejectsEmptyTitle(t *testing.T) {
	service := NewService(new(MockPropertyRepository), nil, nil)

	_, err := service.Create(context.Background(), 7, CreatePropertyRequest{
		Title:        "   ",
		City:         "Almaty",
		NightlyPrice: 15000,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_ResetsApproval(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("GetByID", mock.Anything, int64(42)).Return(&domain.Property{
		ID:           42,
		OwnerID:      7,
		Title:        "Loft on Abay",
		NightlyPrice: 15000,
		Status:       domain.PropertyApproved,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Property) bool {
		return p.Status == domain.PropertyPending && p.NightlyPrice == 18000
	})).Return(nil)

	service := NewService(repo, nil, nil)

	price := 18000.0
	p, err := service.Update(context.Background(), 42, 7, UpdatePropertyRequest{NightlyPrice: &price})

	assert.NoError(t, err)
	assert.Equal(t, domain.PropertyPending, p.Status)
	repo.AssertExpectations(t)
}

func TestService_Update_WrongOwner(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("GetByID", mock.Anything, int64(42)).Return(&domain.Property{
		ID:      42,
		OwnerID: 7,
	}, nil)

	service := NewService(repo, nil, nil)

	_, err := service.Update(context.Background(), 42, 8, UpdatePropertyRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("SoftDelete", mock.Anything, int64(404), int64(7)).Return(int64(0), nil)

	service := NewService(repo, nil, nil)

	err := service.Delete(context.Background(), 404, 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(MockPropertyRepository)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, nil, nil)

	_, err := service.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}
