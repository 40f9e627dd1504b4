package ports

import (
	"context"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, username, password string) (*domain.User, error)
	// Login authenticates by username or email. Unknown account and wrong
	// password both return domain.ErrInvalidCredentials.
	Login(ctx context.Context, login, password string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}
