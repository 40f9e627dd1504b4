package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/planvista/visionboard-api/internal/api/middleware"
	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

// stubBoardService returns canned results and records the identity and patch
// it was called with, so tests can assert the handler forwards the session
// user rather than anything from the request body.
type stubBoardService struct {
	boards map[string]*domain.Board // key: owner + "/" + board id

	lastUserID string
	lastPatch  domain.BoardPatch

	updateOutcome domain.WriteOutcome
	deleteOutcome domain.WriteOutcome
	createErr     error
}

func newStubBoardService() *stubBoardService {
	return &stubBoardService{boards: make(map[string]*domain.Board)}
}

func (s *stubBoardService) seed(owner, id, title string) {
	s.boards[owner+"/"+id] = &domain.Board{ID: id, Owner: owner, Title: title}
}

func (s *stubBoardService) List(_ context.Context, userID string) ([]domain.BoardSummary, error) {
	s.lastUserID = userID
	var out []domain.BoardSummary
	for _, b := range s.boards {
		if b.Owner == userID {
			out = append(out, domain.BoardSummary{ID: b.ID, Title: b.Title})
		}
	}
	return out, nil
}

func (s *stubBoardService) Get(_ context.Context, userID, boardID string) (*domain.Board, error) {
	s.lastUserID = userID
	b, ok := s.boards[userID+"/"+boardID]
	if !ok {
		return nil, domain.ErrBoardNotFound
	}
	return b, nil
}

func (s *stubBoardService) Create(_ context.Context, userID string, fields domain.NewBoard) (*domain.Board, error) {
	s.lastUserID = userID
	if s.createErr != nil {
		return nil, s.createErr
	}
	b := &domain.Board{ID: "board-new", Owner: userID, Title: fields.Title}
	s.boards[userID+"/"+b.ID] = b
	return b, nil
}

func (s *stubBoardService) Update(_ context.Context, userID, boardID string, patch domain.BoardPatch) (domain.WriteOutcome, error) {
	s.lastUserID = userID
	s.lastPatch = patch
	return s.updateOutcome, nil
}

func (s *stubBoardService) Delete(_ context.Context, userID, boardID string) (domain.WriteOutcome, error) {
	s.lastUserID = userID
	return s.deleteOutcome, nil
}

func (s *stubBoardService) GetVendorEntry(_ context.Context, userID, boardID, entryID string) (*domain.VendorEntry, error) {
	s.lastUserID = userID
	if _, ok := s.boards[userID+"/"+boardID]; !ok {
		return nil, domain.ErrVendorEntryNotFound
	}
	return &domain.VendorEntry{ID: entryID, Name: "Catering Co"}, nil
}

func (s *stubBoardService) CreateVendorEntry(_ context.Context, userID, boardID string, fields domain.NewVendorEntry) (*domain.VendorEntry, error) {
	s.lastUserID = userID
	if _, ok := s.boards[userID+"/"+boardID]; !ok {
		return nil, domain.ErrBoardNotFound
	}
	return &domain.VendorEntry{ID: "entry-new", Name: fields.Name}, nil
}

func (s *stubBoardService) DeleteVendorEntry(_ context.Context, userID, boardID, entryID string) (domain.WriteOutcome, error) {
	s.lastUserID = userID
	return s.deleteOutcome, nil
}

func (s *stubBoardService) RepairOwnership(context.Context) (ports.RepairReport, error) {
	return ports.RepairReport{}, nil
}

func boardContext(t *testing.T, method, target, body string, identity domain.Identity) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	rec, c := jsonContext(t, method, target, body)
	c.Set(middleware.IdentityKey, identity)
	return rec, c
}

func TestBoardHandler_List_ScopedToSessionUser(t *testing.T) {
	boards := newStubBoardService()
	boards.seed("user-1", "b1", "Spring Garden")
	boards.seed("user-2", "b2", "Someone Else's")
	h := NewBoardHandler(boards)

	rec, c := boardContext(t, http.MethodGet, "/api/visionboard/boards", "", domain.Identity{ID: "user-1"})
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if boards.lastUserID != "user-1" {
		t.Fatalf("service called with user %q", boards.lastUserID)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Spring Garden") || strings.Contains(body, "Someone Else's") {
		t.Fatalf("listing crossed ownership: %s", body)
	}
}

func TestBoardHandler_MissingIdentity(t *testing.T) {
	h := NewBoardHandler(newStubBoardService())
	_, c := jsonContext(t, http.MethodGet, "/api/visionboard/boards", "")

	err := h.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestBoardHandler_Create(t *testing.T) {
	boards := newStubBoardService()
	h := NewBoardHandler(boards)

	rec, c := boardContext(t, http.MethodPost, "/api/visionboard/boards",
		`{"title":"Autumn Wedding"}`, domain.Identity{ID: "user-1"})
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if _, ok := boards.boards["user-1/board-new"]; !ok {
		t.Fatalf("board not created for session user")
	}
}

func TestBoardHandler_Create_MissingTitle(t *testing.T) {
	h := NewBoardHandler(newStubBoardService())
	_, c := boardContext(t, http.MethodPost, "/api/visionboard/boards", `{}`, domain.Identity{ID: "user-1"})

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %v", err)
	}
}

func TestBoardHandler_Update_OutcomeMapping(t *testing.T) {
	cases := []struct {
		outcome domain.WriteOutcome
		status  int
	}{
		{domain.OutcomeModified, http.StatusOK},
		{domain.OutcomeUnchanged, http.StatusOK},
		{domain.OutcomeNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.outcome.String(), func(t *testing.T) {
			boards := newStubBoardService()
			boards.updateOutcome = tc.outcome
			h := NewBoardHandler(boards)

			rec, c := boardContext(t, http.MethodPut, "/api/visionboard/boards/b1",
				`{"favorite":true}`, domain.Identity{ID: "user-1"})
			c.SetParamNames("id")
			c.SetParamValues("b1")

			if err := h.Update(c); err != nil {
				t.Fatalf("update: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("outcome %s: expected %d, got %d", tc.outcome, tc.status, rec.Code)
			}
		})
	}
}

func TestBoardHandler_Update_NullFieldsDropped(t *testing.T) {
	boards := newStubBoardService()
	boards.updateOutcome = domain.OutcomeModified
	h := NewBoardHandler(boards)

	_, c := boardContext(t, http.MethodPut, "/api/visionboard/boards/b1",
		`{"title":"Renamed","eventDate":null}`, domain.Identity{ID: "user-1"})
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if boards.lastPatch.Title == nil || *boards.lastPatch.Title != "Renamed" {
		t.Fatalf("title not forwarded: %+v", boards.lastPatch)
	}
	if boards.lastPatch.EventDate != nil {
		t.Fatalf("null eventDate should be dropped, not applied")
	}
}

func TestBoardHandler_Delete_OutcomeMapping(t *testing.T) {
	for _, tc := range []struct {
		outcome domain.WriteOutcome
		status  int
	}{
		{domain.OutcomeModified, http.StatusOK},
		{domain.OutcomeNotFound, http.StatusNotFound},
	} {
		boards := newStubBoardService()
		boards.deleteOutcome = tc.outcome
		h := NewBoardHandler(boards)

		rec, c := boardContext(t, http.MethodDelete, "/api/visionboard/boards/b1", "", domain.Identity{ID: "user-1"})
		c.SetParamNames("id")
		c.SetParamValues("b1")

		if err := h.Delete(c); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if rec.Code != tc.status {
			t.Fatalf("outcome %s: expected %d, got %d", tc.outcome, tc.status, rec.Code)
		}
	}
}

func TestVendorHandler_CreateAndGet(t *testing.T) {
	boards := newStubBoardService()
	boards.seed("user-1", "b1", "Spring Garden")
	h := NewVendorHandler(boards)

	rec, c := boardContext(t, http.MethodPost, "/api/visionboard/boards/b1/vendordirectory",
		`{"name":"Catering Co","type":"catering"}`, domain.Identity{ID: "user-1"})
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Create(c); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Catering Co") {
		t.Fatalf("created entry not returned: %s", rec.Body.String())
	}

	rec, c = boardContext(t, http.MethodGet, "/api/visionboard/boards/b1/vendordirectory/v1", "", domain.Identity{ID: "user-1"})
	c.SetParamNames("id", "vendorId")
	c.SetParamValues("b1", "v1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVendorHandler_Get_WrongOwner(t *testing.T) {
	boards := newStubBoardService()
	boards.seed("user-2", "b1", "Not Yours")
	h := NewVendorHandler(boards)

	_, c := boardContext(t, http.MethodGet, "/api/visionboard/boards/b1/vendordirectory/v1", "", domain.Identity{ID: "user-1"})
	c.SetParamNames("id", "vendorId")
	c.SetParamValues("b1", "v1")

	if err := h.Get(c); err != domain.ErrVendorEntryNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
