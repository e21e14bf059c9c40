package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/travelcraft/travelcraft/core/logger"
	"github.com/travelcraft/travelcraft/middleware"
)

// SignUpInput carries a registration request.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// Service implements account registration and credential checks.
type Service struct {
	store  UserStore
	cost   int
	now    func() time.Time
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the credential service over store.
func NewService(store UserStore, cfg Config, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		cost:   cfg.cost(),
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp registers a new user. All fields are required.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	email := NormalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return User{}, ErrMissingFields
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, errors.Join(ErrHashPassword, err)
	}

	u := User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.logger.InfoContext(ctx, "user signed up",
		logger.Component("auth"), logger.UserID(u.ID))
	return u, nil
}

// SignIn verifies credentials. It returns ErrUserNotFound for an unknown
// email and ErrInvalidPassword for a mismatch.
func (s *Service) SignIn(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return User{}, ErrInvalidPassword
		}
		return User{}, errors.Join(ErrInvalidPassword, err)
	}
	return u, nil
}

// Get returns the user with id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return s.store.GetByID(ctx, id)
}

// Identity resolves a session's user for middleware.RequireUser.
func (s *Service) Identity(ctx context.Context, id uuid.UUID) (middleware.Identity, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return middleware.Identity{}, errors.Join(middleware.ErrIdentityNotFound, err)
		}
		return middleware.Identity{}, err
	}
	return middleware.Identity{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}
