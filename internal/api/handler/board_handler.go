package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planvista/visionboard-api/internal/api/metrics"
	"github.com/planvista/visionboard-api/internal/core/domain"
	"github.com/planvista/visionboard-api/internal/core/ports"
)

type BoardHandler struct {
	boards ports.BoardService
}

func NewBoardHandler(boards ports.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// List returns summaries of the session user's boards. Projected fields only;
// the per-board GET returns the full document.
func (h *BoardHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	summaries, err := h.boards.List(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

// Get returns one board with its vendor directory entries populated.
func (h *BoardHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	board, err := h.boards.Get(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// Create makes a new board owned by the session user.
func (h *BoardHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req boardCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.boards.Create(c.Request().Context(), identity.ID, req.toNewBoard()); err != nil {
		metrics.BoardWritesTotal.WithLabelValues("create", "error").Inc()
		if err == domain.ErrReferenceUpdateFailed {
			metrics.ReferenceFailuresTotal.Inc()
		}
		return err
	}

	metrics.BoardWritesTotal.WithLabelValues("create", domain.OutcomeCreated.String()).Inc()
	return c.NoContent(http.StatusCreated)
}

// Update applies a partial update to one board.
func (h *BoardHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req boardUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	outcome, err := h.boards.Update(c.Request().Context(), identity.ID, c.Param("id"), req.toPatch())
	if err != nil {
		metrics.BoardWritesTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.BoardWritesTotal.WithLabelValues("update", outcome.String()).Inc()
	return outcomeStatus(c, outcome)
}

// Delete removes one board and its reference on the owning user.
func (h *BoardHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	outcome, err := h.boards.Delete(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		metrics.BoardWritesTotal.WithLabelValues("delete", "error").Inc()
		if err == domain.ErrReferenceUpdateFailed {
			metrics.ReferenceFailuresTotal.Inc()
		}
		return err
	}

	metrics.BoardWritesTotal.WithLabelValues("delete", outcome.String()).Inc()
	return outcomeStatus(c, outcome)
}

// outcomeStatus maps the uniform write outcome to the response status:
// anything that matched is a 200, a miss is a 404. Store failures never reach
// here — they surface as errors and become 500s in the error handler.
func outcomeStatus(c echo.Context, outcome domain.WriteOutcome) error {
	if !outcome.Found() {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusOK)
}
