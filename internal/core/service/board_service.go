package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

// BoardService implements the ownership-scoped board operations.
//
// A user's board list and a board's owner field are a two-sided relationship
// maintained by two single-document writes, not a transaction. The aggregate
// document is always written first; the parent reference update follows and
// is idempotent (set insert / pull), so a retry after a partial failure
// cannot duplicate references. RepairOwnership is the operational tool for
// the window where the two sides disagree.
type BoardService struct {
	users   ports.UserRepository
	boards  ports.BoardRepository
	vendors ports.VendorRepository
	logger  zerolog.Logger
}

func NewBoardService(users ports.UserRepository, boards ports.BoardRepository, vendors ports.VendorRepository, logger zerolog.Logger) *BoardService {
	return &BoardService{users: users, boards: boards, vendors: vendors, logger: logger}
}

// List returns summaries of the boards reachable from the user's reference
// set. Orphaned boards (owned but unreferenced) do not appear here; the
// repair sweep re-links them.
func (s *BoardService) List(ctx context.Context, userID string) ([]domain.BoardSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.BoardRefs) == 0 {
		return []domain.BoardSummary{}, nil
	}
	return s.boards.ListByIDs(ctx, user.BoardRefs)
}

// Get returns the board with its vendor directory entries populated.
func (s *BoardService) Get(ctx context.Context, userID, boardID string) (*domain.Board, error) {
	board, err := s.boards.FindOwned(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	board.Entries = []domain.VendorEntry{}
	if len(board.EntryRefs) > 0 {
		entries, err := s.vendors.FindByIDs(ctx, board.EntryRefs)
		if err != nil {
			return nil, err
		}
		board.Entries = entries
	}
	return board, nil
}

// Create inserts the board, then pushes its reference onto the owner's set.
// If the push fails the board is orphaned: it exists with a valid owner but
// is unreachable from the owner's list. That state is logged with both ids
// so it is detectable, and surfaced as ErrReferenceUpdateFailed.
func (s *BoardService) Create(ctx context.Context, userID string, fields domain.NewBoard) (*domain.Board, error) {
	board, err := s.boards.CreateOwned(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	outcome, err := s.users.AddBoardRef(ctx, userID, board.ID)
	if err != nil || !outcome.Found() {
		s.logger.Error().
			Err(err).
			Str("board_id", board.ID).
			Str("owner_id", userID).
			Msg("board created but owner reference push failed; board is orphaned until repair sweep")
		return nil, domain.ErrReferenceUpdateFailed
	}

	s.logger.Info().Str("board_id", board.ID).Str("owner_id", userID).Msg("board created")
	return board, nil
}

// Update applies a partial update. Absent patch fields are left untouched.
func (s *BoardService) Update(ctx context.Context, userID, boardID string, patch domain.BoardPatch) (domain.WriteOutcome, error) {
	return s.boards.UpdateOwned(ctx, userID, boardID, patch)
}

// Delete removes the board and then pulls its reference from the owner.
// The owner-scoped delete runs first; the pull only proceeds when the delete
// actually removed a document, so under two concurrent deletes exactly one
// caller observes a modification and the loser gets not-found without ever
// touching the reference set. The pull itself is idempotent: pulling an
// already-absent reference is a no-op, not a failure.
func (s *BoardService) Delete(ctx context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	outcome, err := s.boards.DeleteOwned(ctx, userID, boardID)
	if err != nil {
		return domain.OutcomeNotFound, err
	}
	if !outcome.Found() {
		return domain.OutcomeNotFound, nil
	}

	pull, err := s.users.RemoveBoardRef(ctx, userID, boardID)
	if err != nil || !pull.Found() {
		s.logger.Error().
			Err(err).
			Str("board_id", boardID).
			Str("owner_id", userID).
			Msg("board deleted but owner reference pull failed; dangling reference until repair sweep")
		return domain.OutcomeNotFound, domain.ErrReferenceUpdateFailed
	}

	s.logger.Info().Str("board_id", boardID).Str("owner_id", userID).Msg("board deleted")
	return outcome, nil
}

// GetVendorEntry resolves an entry through its board: the board is fetched
// under ownership scope, the entry id is matched against the board's
// reference set, and only then is the entry document read. An entry that
// exists under a different board, or under a board the caller does not own,
// is not found.
func (s *BoardService) GetVendorEntry(ctx context.Context, userID, boardID, entryID string) (*domain.VendorEntry, error) {
	board, err := s.boards.FindOwned(ctx, userID, boardID)
	if err != nil {
		if err == domain.ErrBoardNotFound {
			return nil, domain.ErrVendorEntryNotFound
		}
		return nil, err
	}

	if !containsID(board.EntryRefs, entryID) {
		return nil, domain.ErrVendorEntryNotFound
	}
	return s.vendors.FindByID(ctx, entryID)
}

// CreateVendorEntry inserts the entry document, then pushes its reference
// onto the board under ownership scope. If the board turns out not to exist
// (or not to be owned by the caller) the entry document is compensated away
// and the caller gets not-found.
func (s *BoardService) CreateVendorEntry(ctx context.Context, userID, boardID string, fields domain.NewVendorEntry) (*domain.VendorEntry, error) {
	entry, err := s.vendors.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	outcome, err := s.boards.AddEntryRef(ctx, userID, boardID, entry.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("entry_id", entry.ID).
			Str("board_id", boardID).
			Msg("vendor entry created but board reference push failed")
		return nil, domain.ErrReferenceUpdateFailed
	}
	if !outcome.Found() {
		_, _ = s.vendors.Delete(ctx, entry.ID)
		return nil, domain.ErrBoardNotFound
	}

	return entry, nil
}

// DeleteVendorEntry pulls the entry reference from the board (owner-scoped)
// and, only when the pull removed something, deletes the entry document.
func (s *BoardService) DeleteVendorEntry(ctx context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error) {
	outcome, err := s.boards.RemoveEntryRef(ctx, userID, boardID, entryID)
	if err != nil {
		return domain.OutcomeNotFound, err
	}
	if outcome != domain.OutcomeModified {
		// Board absent / not owned, or the entry was never on this board.
		return domain.OutcomeNotFound, nil
	}

	if _, err := s.vendors.Delete(ctx, entryID); err != nil {
		s.logger.Error().
			Err(err).
			Str("entry_id", entryID).
			Str("board_id", boardID).
			Msg("entry reference pulled but entry document delete failed")
		return domain.OutcomeNotFound, domain.ErrReferenceUpdateFailed
	}
	return outcome, nil
}

// RepairOwnership reconciles the two sides of the user/board relationship:
// boards missing from their owner's reference set are re-linked, and
// references to boards that no longer exist are pruned. Both fixes reuse the
// idempotent push/pull, so running the sweep concurrently with live traffic
// is safe.
func (s *BoardService) RepairOwnership(ctx context.Context) (ports.RepairReport, error) {
	var report ports.RepairReport

	ownership, err := s.boards.ListOwnership(ctx)
	if err != nil {
		return report, err
	}
	userRefs, err := s.users.ListBoardRefs(ctx)
	if err != nil {
		return report, err
	}

	refsByUser := make(map[string]map[string]bool, len(userRefs))
	for _, u := range userRefs {
		set := make(map[string]bool, len(u.BoardRefs))
		for _, id := range u.BoardRefs {
			set[id] = true
		}
		refsByUser[u.UserID] = set
	}

	boardIDs := make(map[string]bool, len(ownership))
	for _, b := range ownership {
		boardIDs[b.ID] = true
	}

	for _, b := range ownership {
		if refsByUser[b.Owner][b.ID] {
			continue
		}
		outcome, err := s.users.AddBoardRef(ctx, b.Owner, b.ID)
		if err != nil {
			return report, err
		}
		if outcome == domain.OutcomeModified {
			s.logger.Warn().Str("board_id", b.ID).Str("owner_id", b.Owner).Msg("re-linked orphaned board")
			report.Relinked++
		}
	}

	for _, u := range userRefs {
		for _, id := range u.BoardRefs {
			if boardIDs[id] {
				continue
			}
			outcome, err := s.users.RemoveBoardRef(ctx, u.UserID, id)
			if err != nil {
				return report, err
			}
			if outcome == domain.OutcomeModified {
				s.logger.Warn().Str("board_id", id).Str("owner_id", u.UserID).Msg("pruned dangling board reference")
				report.Pruned++
			}
		}
	}

	return report, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
