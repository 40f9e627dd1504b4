package ports

import (
	"context"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// RepairReport summarises one ownership repair sweep.
type RepairReport struct {
	Relinked int // boards re-added to their owner's reference set
	Pruned   int // dangling references removed from users
}

// BoardService implements the ownership-scoped board operations and the
// two-step reference updates between users, boards, and vendor entries.
type BoardService interface {
	List(ctx context.Context, userID string) ([]domain.BoardSummary, error)
	// Get returns the board with its vendor entries populated.
	Get(ctx context.Context, userID, boardID string) (*domain.Board, error)
	Create(ctx context.Context, userID string, fields domain.NewBoard) (*domain.Board, error)
	Update(ctx context.Context, userID, boardID string, patch domain.BoardPatch) (domain.WriteOutcome, error)
	Delete(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error)

	GetVendorEntry(ctx context.Context, userID, boardID, entryID string) (*domain.VendorEntry, error)
	CreateVendorEntry(ctx context.Context, userID, boardID string, fields domain.NewVendorEntry) (*domain.VendorEntry, error)
	DeleteVendorEntry(ctx context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error)

	// RepairOwnership scans for boards missing from their owner's reference
	// set and for references to boards that no longer exist, and fixes both.
	RepairOwnership(ctx context.Context) (RepairReport, error)
}
