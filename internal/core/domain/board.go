package domain

import "time"

// Board is the planning aggregate root. Owner is set at creation and never
// changes; every read or write of a board goes through a query that filters on
// both the board id and the owner id, so a board is simply invisible outside
// its owner's session.
type Board struct {
	ID        string     `json:"_id"`
	Owner     string     `json:"owner"`
	Title     string     `json:"title"`
	EventDate *time.Time `json:"eventDate,omitempty"`
	Favorite  bool       `json:"favorite"`
	IconImage string     `json:"iconImage,omitempty"`

	// EntryRefs holds the ids of the board's vendor directory entries.
	// Entries carries the populated documents on a full board read.
	EntryRefs []string      `json:"-"`
	Entries   []VendorEntry `json:"vendorDirectoryEntries"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BoardSummary is the projection returned by the board list endpoint. Full
// board data requires a per-board fetch.
type BoardSummary struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	EventDate *time.Time `json:"eventDate,omitempty"`
	Favorite  bool       `json:"favorite"`
}

// NewBoard carries the caller-supplied fields for board creation. The owner
// is never part of it: the repository sets the owner from the session
// identity regardless of input.
type NewBoard struct {
	Title     string
	EventDate *time.Time
	Favorite  *bool
	IconImage *string
}

// BoardPatch is a partial update. Nil fields are absent and left untouched;
// only non-nil fields are written. A JSON null decodes to nil too, so a field
// cannot be cleared by sending null — matching the API's historical contract.
type BoardPatch struct {
	Title     *string
	EventDate *time.Time
	Favorite  *bool
	IconImage *string
}

// IsZero reports whether the patch carries no fields at all.
func (p BoardPatch) IsZero() bool {
	return p.Title == nil && p.EventDate == nil && p.Favorite == nil && p.IconImage == nil
}

// BoardOwnership is the id/owner projection used by the repair sweep.
type BoardOwnership struct {
	ID    string
	Owner string
}

// VendorEntry is a vendor directory item. It is owned by exactly one board
// and is only reachable through that board's entry set; there is no global
// lookup path.
type VendorEntry struct {
	ID             string `json:"_id"`
	Name           string `json:"name,omitempty"`
	PrimaryContact string `json:"primaryContact,omitempty"`
	Type           string `json:"type,omitempty"`
	Status         string `json:"status,omitempty"`
}

// NewVendorEntry carries the caller-supplied fields for entry creation.
// All fields are optional strings.
type NewVendorEntry struct {
	Name           string
	PrimaryContact string
	Type           string
	Status         string
}
