package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/transitline/internal/auth"
	"github.com/zvrva/transitline/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, username, email string) (*domain.User, error) {
	args := m.Called(ctx, id, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestService(users *MockUserRepository) *AccountsService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAccountsService(users, tokens)
}

func TestAccountsService_Register(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := service.Register(ctx, "rider", "rider@example.com", "longenough")

	assert.NoError(t, err)
	assert.Equal(t, "rider", user.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))
	users.AssertExpectations(t)
}

func TestAccountsService_Register_ShortPassword(t *testing.T) {
	service := newTestService(&MockUserRepository{})

	_, err := service.Register(context.Background(), "rider", "", "short")

	var fieldErr *domain.FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "password", fieldErr.Field)
}

func TestAccountsService_Login(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	assert.NoError(t, err)

	ctx := context.Background()
	users.On("GetByUsername", ctx, "rider").Return(&domain.User{
		ID:           7,
		Username:     "rider",
		PasswordHash: string(hash),
	}, nil)

	token, user, err := service.Login(ctx, "rider", "longenough")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(7), user.ID)
}

func TestAccountsService_Login_WrongPassword(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)

	ctx := context.Background()
	users.On("GetByUsername", ctx, "rider").Return(&domain.User{
		ID:           7,
		Username:     "rider",
		PasswordHash: string(hash),
	}, nil)

	_, _, err := service.Login(ctx, "rider", "wrong")

	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAccountsService_Login_UnknownUser(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users)

	ctx := context.Background()
	users.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

	_, _, err := service.Login(ctx, "ghost", "whatever")

	assert.ErrorIs(t, err, ErrBadCredentials)
}
