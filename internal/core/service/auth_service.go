package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

// AuthService implements registration, login, and password changes.
type AuthService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register creates a new account. Email and username are lowercased before
// the insert so the unique indexes enforce case-insensitive uniqueness.
func (s *AuthService) Register(ctx context.Context, name, email, username, password string) (*domain.User, error) {
	// The registration response format only carries a field name, so a
	// required-field miss maps to the same error the unique index produces.
	if email == "" {
		return nil, domain.ErrEmailTaken
	}
	if username == "" {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		// bcrypt refuses inputs over 72 bytes. Not a credentials failure:
		// the account does not exist yet.
		return nil, domain.ErrPasswordUnusable
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        strings.ToLower(email),
		Username:     strings.ToLower(username),
		PasswordHash: hash,
		BoardRefs:    []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login authenticates by username or email. A missing account and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.User, error) {
	if login == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByLogin(ctx, strings.ToLower(login))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces the stored hash after verifying the current
// password. This is the only code path that mutates a password hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPassword(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return domain.ErrPasswordUnusable
	}

	outcome, err := s.users.UpdatePasswordHash(ctx, userID, hash)
	if err != nil {
		return err
	}
	if !outcome.Found() {
		return domain.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
