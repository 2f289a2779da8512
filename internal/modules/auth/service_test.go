package auth

import (
	"context"
	"testing"

	"renthub/internal/domain"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }

func (f *fakeUserRepo) UpdateVerification(ctx context.Context, userID int64, status domain.VerificationStatus, docType, docNumber string) (int64, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.VerificationStatus = status
			return 1, nil
		}
	}
	return 0, nil
}

type staticJWT struct{}

func (staticJWT) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	return "token", nil
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticJWT{})

	res, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Aizhan",
		Email:    "  Aizhan@Example.com ",
		Password: "secret123",
		Role:     "renter",
	})

	assert.NoError(t, err)
	assert.Equal(t, "aizhan@example.com", res.User.Email)
	assert.Equal(t, domain.RoleRenter, res.User.Role)
	assert.NotEqual(t, "secret123", res.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret123")))
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticJWT{})

	req := RegisterRequest{Name: "A", Email: "a@b.kz", Password: "secret123", Role: "owner"}
	_, err := service.Register(context.Background(), req)
	assert.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_RejectsAdminRole(t *testing.T) {
	service := NewService(newFakeUserRepo(), staticJWT{})

	_, err := service.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@b.kz", Password: "secret123", Role: "admin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_Login_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticJWT{})

	_, err := service.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@b.kz", Password: "secret123", Role: "renter",
	})
	assert.NoError(t, err)

	_, err = service.Login(context.Background(), LoginRequest{Email: "a@b.kz", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	service := NewService(newFakeUserRepo(), staticJWT{})

	_, err := service.Login(context.Background(), LoginRequest{Email: "nobody@b.kz", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_SubmitVerification_OwnerOnly(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticJWT{})

	res, err := service.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@b.kz", Password: "secret123", Role: "renter",
	})
	assert.NoError(t, err)

	err = service.SubmitVerification(context.Background(), res.User.ID, "passport", "N1234567")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestService_SubmitVerification_MovesToPending(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewService(repo, staticJWT{})

	res, err := service.Register(context.Background(), RegisterRequest{
		Name: "A", Email: "a@b.kz", Password: "secret123", Role: "owner",
	})
	assert.NoError(t, err)

	err = service.SubmitVerification(context.Background(), res.User.ID, "passport", "N1234567")
	assert.NoError(t, err)

	u, _ := repo.GetByID(context.Background(), res.User.ID)
	assert.Equal(t, domain.VerificationPending, u.VerificationStatus)
}
