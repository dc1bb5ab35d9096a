package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the auth service needs. *Repository implements it.
type UserStore interface {
	Save(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID string) (*User, error)
}

// Service implements registration and credential checks.
type Service struct {
	store UserStore

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Register creates a new account. ErrDuplicate means the email is taken.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := NormalizeEmail(req.Email)

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrDuplicate)
	}

	user := &User{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	user.SetPassword(req.Password)

	// the unique index still catches a concurrent registration of the same email
	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks an email/password pair. Unknown email and wrong password
// both return ErrInvalidCredentials, and both pay for one bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns the profile of userID.
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return s.store.GetByID(ctx, userID)
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return s.dummyHash
}
