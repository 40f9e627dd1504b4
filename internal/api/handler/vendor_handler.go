package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planvista/visionboard-api/internal/core/ports"
)

// VendorHandler serves the vendor directory nested under a board. Every
// lookup resolves the parent board under ownership scope first; an entry id
// under the wrong board, or a board owned by someone else, is a plain 404.
type VendorHandler struct {
	boards ports.BoardService
}

func NewVendorHandler(boards ports.BoardService) *VendorHandler {
	return &VendorHandler{boards: boards}
}

// Get returns a single vendor directory entry of the given board.
func (h *VendorHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entry, err := h.boards.GetVendorEntry(c.Request().Context(), identity.ID, c.Param("id"), c.Param("vendorId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Create adds an entry to the board's vendor directory.
func (h *VendorHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req vendorEntryCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.boards.CreateVendorEntry(c.Request().Context(), identity.ID, c.Param("id"), req.toNewEntry())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Delete removes an entry from the board's vendor directory.
func (h *VendorHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	outcome, err := h.boards.DeleteVendorEntry(c.Request().Context(), identity.ID, c.Param("id"), c.Param("vendorId"))
	if err != nil {
		return err
	}
	return outcomeStatus(c, outcome)
}
