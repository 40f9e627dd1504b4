package ports

import (
	"context"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Email/username collisions surface as
	// domain.ErrEmailTaken / domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByLogin retrieves a user whose username OR email equals login
	// (lowercased by the caller).
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// AddBoardRef pushes boardID onto the user's board reference set.
	// The push is a set insert, so it is idempotent under retry.
	AddBoardRef(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error)
	// RemoveBoardRef pulls boardID from the user's board reference set.
	// Pulling an absent reference reports OutcomeUnchanged, not an error.
	RemoveBoardRef(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) (domain.WriteOutcome, error)
	// ListBoardRefs returns every user's board reference set. Repair sweep only.
	ListBoardRefs(ctx context.Context) ([]domain.UserBoards, error)
}
