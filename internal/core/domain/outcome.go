package domain

// WriteOutcome is the uniform "did this write change anything" signal returned
// by every mutating repository call. The handler layer maps it to an HTTP
// status: Created/Modified/Unchanged are 2xx, NotFound is 404. It replaces
// the per-driver result shapes (UpdateResult, DeleteResult, InsertOneResult)
// with one variant the rest of the code can consume.
type WriteOutcome int

const (
	// OutcomeNotFound means the filter matched no document. A missing id and
	// an id owned by someone else are deliberately indistinguishable.
	OutcomeNotFound WriteOutcome = iota
	// OutcomeCreated means a new document was inserted.
	OutcomeCreated
	// OutcomeModified means an existing document changed.
	OutcomeModified
	// OutcomeUnchanged means the filter matched but the write was a no-op,
	// e.g. pulling a reference that was already absent.
	OutcomeUnchanged
)

// Found reports whether the write matched a document at all.
func (o WriteOutcome) Found() bool { return o != OutcomeNotFound }

func (o WriteOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeModified:
		return "modified"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "not_found"
	}
}
