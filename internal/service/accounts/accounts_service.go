package accounts

import (
	"context"
	"errors"

	"github.com/zvrva/transitline/internal/auth"
	"github.com/zvrva/transitline/internal/domain"
	"github.com/zvrva/transitline/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("invalid username or password")

type AccountsService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAccountsService(users repository.UserRepository, tokens *auth.TokenManager) *AccountsService {
	return &AccountsService{users: users, tokens: tokens}
}

func (s *AccountsService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewFieldError("username", errors.New("username is required"))
	}
	if len(password) < 8 {
		return nil, domain.NewFieldError("password", errors.New("password must be at least 8 characters"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and hands back a signed bearer token.
func (s *AccountsService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AccountsService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AccountsService) UpdateProfile(ctx context.Context, userID int64, username, email string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewFieldError("username", errors.New("username is required"))
	}
	return s.users.UpdateProfile(ctx, userID, username, email)
}
