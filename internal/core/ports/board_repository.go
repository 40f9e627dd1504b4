package ports

import (
	"context"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// BoardRepository defines persistence operations for vision boards.
//
// Every operation that targets a single board takes the caller's userID and
// resolves the board with one filter combining {_id, owner}. There is no way
// to fetch or mutate a board by id alone: "does not exist" and "not owned by
// the caller" are the same result.
type BoardRepository interface {
	// CreateOwned inserts a board with owner forced to userID. Any owner in
	// the input is ignored.
	CreateOwned(ctx context.Context, userID string, fields domain.NewBoard) (*domain.Board, error)
	FindOwned(ctx context.Context, userID, boardID string) (*domain.Board, error)
	// ListByIDs returns projected summaries for the given board ids, in no
	// particular order. Ids that resolve to nothing are skipped.
	ListByIDs(ctx context.Context, boardIDs []string) ([]domain.BoardSummary, error)
	// UpdateOwned applies the non-nil patch fields with a single $set.
	UpdateOwned(ctx context.Context, userID, boardID string, patch domain.BoardPatch) (domain.WriteOutcome, error)
	DeleteOwned(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error)
	// AddEntryRef / RemoveEntryRef maintain the board's vendor entry
	// reference set, scoped by owner like every other board write.
	AddEntryRef(ctx context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error)
	RemoveEntryRef(ctx context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error)
	// ListOwnership returns the id/owner projection of every board. Repair
	// sweep only.
	ListOwnership(ctx context.Context) ([]domain.BoardOwnership, error)
}

// VendorRepository defines persistence for vendor directory entry documents.
// Ownership scoping happens one level up: the board service only hands this
// repository entry ids it has already resolved through an owned board.
type VendorRepository interface {
	Create(ctx context.Context, entry domain.NewVendorEntry) (*domain.VendorEntry, error)
	FindByID(ctx context.Context, id string) (*domain.VendorEntry, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.VendorEntry, error)
	Delete(ctx context.Context, id string) (domain.WriteOutcome, error)
}
