package handler

import (
	"time"

	"github.com/planvista/visionboard-api/internal/core/domain"
)

// --- Request types ---

type boardCreateRequest struct {
	Title     string     `json:"title" validate:"required"`
	EventDate *time.Time `json:"eventDate"`
	Favorite  *bool      `json:"favorite"`
	IconImage *string    `json:"iconImage"`
}

func (r boardCreateRequest) toNewBoard() domain.NewBoard {
	return domain.NewBoard{
		Title:     r.Title,
		EventDate: r.EventDate,
		Favorite:  r.Favorite,
		IconImage: r.IconImage,
	}
}

// boardUpdateRequest is a partial update: nil fields (absent keys, and JSON
// nulls alike) are dropped before the write, so omitting a field leaves it
// untouched.
type boardUpdateRequest struct {
	Title     *string    `json:"title"`
	EventDate *time.Time `json:"eventDate"`
	Favorite  *bool      `json:"favorite"`
	IconImage *string    `json:"iconImage"`
}

func (r boardUpdateRequest) toPatch() domain.BoardPatch {
	return domain.BoardPatch{
		Title:     r.Title,
		EventDate: r.EventDate,
		Favorite:  r.Favorite,
		IconImage: r.IconImage,
	}
}

type vendorEntryCreateRequest struct {
	Name           string `json:"name"`
	PrimaryContact string `json:"primaryContact"`
	Type           string `json:"type"`
	Status         string `json:"status"`
}

func (r vendorEntryCreateRequest) toNewEntry() domain.NewVendorEntry {
	return domain.NewVendorEntry{
		Name:           r.Name,
		PrimaryContact: r.PrimaryContact,
		Type:           r.Type,
		Status:         r.Status,
	}
}
