package service

import (
	"context"
	"fmt"
	"time"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// In-memory stand-ins for the repositories and the session store. They model
// just enough of the real stores' behavior to exercise the services: unique
// login fields, owner-filtered board lookups, set-semantics reference
// push/pull, TTL'd session records.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User // by id

	failAddRef    bool
	failRemoveRef bool
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubUserRepo) AddBoardRef(_ context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	if r.failAddRef {
		return domain.OutcomeNotFound, fmt.Errorf("add ref failed")
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.OutcomeNotFound, nil
	}
	for _, id := range u.BoardRefs {
		if id == boardID {
			return domain.OutcomeUnchanged, nil
		}
	}
	u.BoardRefs = append(u.BoardRefs, boardID)
	return domain.OutcomeModified, nil
}

func (r *stubUserRepo) RemoveBoardRef(_ context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	if r.failRemoveRef {
		return domain.OutcomeNotFound, fmt.Errorf("remove ref failed")
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.OutcomeNotFound, nil
	}
	for i, id := range u.BoardRefs {
		if id == boardID {
			u.BoardRefs = append(u.BoardRefs[:i], u.BoardRefs[i+1:]...)
			return domain.OutcomeModified, nil
		}
	}
	return domain.OutcomeUnchanged, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, userID, hash string) (domain.WriteOutcome, error) {
	u, ok := r.users[userID]
	if !ok {
		return domain.OutcomeNotFound, nil
	}
	if u.PasswordHash == hash {
		return domain.OutcomeUnchanged, nil
	}
	u.PasswordHash = hash
	return domain.OutcomeModified, nil
}

func (r *stubUserRepo) ListBoardRefs(_ context.Context) ([]domain.UserBoards, error) {
	out := make([]domain.UserBoards, 0, len(r.users))
	for id, u := range r.users {
		refs := append([]string(nil), u.BoardRefs...)
		out = append(out, domain.UserBoards{UserID: id, BoardRefs: refs})
	}
	return out, nil
}

type stubBoardRepo struct {
	seq    int
	boards map[string]*domain.Board // by id

	lastPatch domain.BoardPatch
}

func newStubBoardRepo() *stubBoardRepo {
	return &stubBoardRepo{boards: make(map[string]*domain.Board)}
}

func (r *stubBoardRepo) CreateOwned(_ context.Context, userID string, fields domain.NewBoard) (*domain.Board, error) {
	r.seq++
	board := &domain.Board{
		ID:        fmt.Sprintf("board-%d", r.seq),
		Owner:     userID,
		Title:     fields.Title,
		EventDate: fields.EventDate,
		EntryRefs: []string{},
		CreatedAt: time.Now().UTC(),
	}
	if fields.Favorite != nil {
		board.Favorite = *fields.Favorite
	}
	if fields.IconImage != nil {
		board.IconImage = *fields.IconImage
	}
	r.boards[board.ID] = board
	out := *board
	return &out, nil
}

func (r *stubBoardRepo) FindOwned(_ context.Context, userID, boardID string) (*domain.Board, error) {
	b, ok := r.boards[boardID]
	if !ok || b.Owner != userID {
		return nil, domain.ErrBoardNotFound
	}
	out := *b
	out.EntryRefs = append([]string(nil), b.EntryRefs...)
	return &out, nil
}

func (r *stubBoardRepo) ListByIDs(_ context.Context, boardIDs []string) ([]domain.BoardSummary, error) {
	out := []domain.BoardSummary{}
	for _, id := range boardIDs {
		b, ok := r.boards[id]
		if !ok {
			continue
		}
		out = append(out, domain.BoardSummary{ID: b.ID, Title: b.Title, EventDate: b.EventDate, Favorite: b.Favorite})
	}
	return out, nil
}

func (r *stubBoardRepo) UpdateOwned(_ context.Context, userID, boardID string, patch domain.BoardPatch) (domain.WriteOutcome, error) {
	b, ok := r.boards[boardID]
	if !ok || b.Owner != userID {
		return domain.OutcomeNotFound, nil
	}
	r.lastPatch = patch
	if patch.IsZero() {
		return domain.OutcomeUnchanged, nil
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.EventDate != nil {
		b.EventDate = patch.EventDate
	}
	if patch.Favorite != nil {
		b.Favorite = *patch.Favorite
	}
	if patch.IconImage != nil {
		b.IconImage = *patch.IconImage
	}
	return domain.OutcomeModified, nil
}

func (r *stubBoardRepo) DeleteOwned(_ context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	b, ok := r.boards[boardID]
	if !ok || b.Owner != userID {
		return domain.OutcomeNotFound, nil
	}
	delete(r.boards, boardID)
	return domain.OutcomeModified, nil
}

func (r *stubBoardRepo) AddEntryRef(_ context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error) {
	b, ok := r.boards[boardID]
	if !ok || b.Owner != userID {
		return domain.OutcomeNotFound, nil
	}
	for _, id := range b.EntryRefs {
		if id == entryID {
			return domain.OutcomeUnchanged, nil
		}
	}
	b.EntryRefs = append(b.EntryRefs, entryID)
	return domain.OutcomeModified, nil
}

func (r *stubBoardRepo) RemoveEntryRef(_ context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error) {
	b, ok := r.boards[boardID]
	if !ok || b.Owner != userID {
		return domain.OutcomeNotFound, nil
	}
	for i, id := range b.EntryRefs {
		if id == entryID {
			b.EntryRefs = append(b.EntryRefs[:i], b.EntryRefs[i+1:]...)
			return domain.OutcomeModified, nil
		}
	}
	return domain.OutcomeUnchanged, nil
}

func (r *stubBoardRepo) ListOwnership(_ context.Context) ([]domain.BoardOwnership, error) {
	out := make([]domain.BoardOwnership, 0, len(r.boards))
	for id, b := range r.boards {
		out = append(out, domain.BoardOwnership{ID: id, Owner: b.Owner})
	}
	return out, nil
}

type stubVendorRepo struct {
	seq     int
	entries map[string]*domain.VendorEntry
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{entries: make(map[string]*domain.VendorEntry)}
}

func (r *stubVendorRepo) Create(_ context.Context, fields domain.NewVendorEntry) (*domain.VendorEntry, error) {
	r.seq++
	entry := &domain.VendorEntry{
		ID:             fmt.Sprintf("entry-%d", r.seq),
		Name:           fields.Name,
		PrimaryContact: fields.PrimaryContact,
		Type:           fields.Type,
		Status:         fields.Status,
	}
	r.entries[entry.ID] = entry
	out := *entry
	return &out, nil
}

func (r *stubVendorRepo) FindByID(_ context.Context, id string) (*domain.VendorEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrVendorEntryNotFound
	}
	out := *e
	return &out, nil
}

func (r *stubVendorRepo) FindByIDs(_ context.Context, ids []string) ([]domain.VendorEntry, error) {
	out := []domain.VendorEntry{}
	for _, id := range ids {
		if e, ok := r.entries[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubVendorRepo) Delete(_ context.Context, id string) (domain.WriteOutcome, error) {
	if _, ok := r.entries[id]; !ok {
		return domain.OutcomeNotFound, nil
	}
	delete(r.entries, id)
	return domain.OutcomeModified, nil
}

type storedSession struct {
	session   domain.Session
	expiresAt time.Time
}

type stubSessionStore struct {
	now      func() time.Time
	sessions map[string]storedSession
}

func newStubSessionStore(now func() time.Time) *stubSessionStore {
	if now == nil {
		now = time.Now
	}
	return &stubSessionStore{now: now, sessions: make(map[string]storedSession)}
}

func (s *stubSessionStore) Save(_ context.Context, id string, session domain.Session, ttl time.Duration) error {
	s.sessions[id] = storedSession{session: session, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	stored, ok := s.sessions[id]
	if !ok || s.now().After(stored.expiresAt) {
		return nil, domain.ErrSessionNotFound
	}
	out := stored.session
	return &out, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}
