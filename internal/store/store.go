// ABOUTME: Store interface and data types for leadbook persistence
// ABOUTME: Defines the Lead entity, its column layout, and the Store contract

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested lead does not exist.
var ErrNotFound = errors.New("lead not found")

// ErrDuplicateLead is returned by a single insert when the phone number
// already belongs to a persisted lead. Batch merges never return it:
// duplicates there are skipped, not reported.
var ErrDuplicateLead = errors.New("lead already exists")

// ErrMissingPhone is returned by a single insert when the lead has no
// phone number. Phone is the business key and may never be empty.
var ErrMissingPhone = errors.New("lead phone is required")

// ErrStorageUnavailable is returned (wrapped) when the database cannot be
// opened or initialized.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Lead is a contact record identified by its phone number. All fields are
// free-form text; Rating and Reviews are not assumed numeric. Notes is
// optional, with the empty string meaning "no note".
type Lead struct {
	Title    string
	Rating   string
	Reviews  string
	Phone    string
	Industry string
	Address  string
	Website  string
	MapsLink string
	Notes    string
}

// Import column names, exactly as they appear in an import file header.
// These match the persisted columns except for the maps link, which is
// stored as Google_Maps_Link but imported as "Google Maps Link".
const (
	ColTitle    = "Title"
	ColRating   = "Rating"
	ColReviews  = "Reviews"
	ColPhone    = "Phone"
	ColIndustry = "Industry"
	ColAddress  = "Address"
	ColWebsite  = "Website"
	ColMapsLink = "Google Maps Link"
	ColNotes    = "Notes"
)

// RequiredColumns returns the columns an import file must carry, in
// canonical order. Notes is deliberately absent: it is optional on import
// and defaults to empty.
func RequiredColumns() []string {
	return []string{
		ColTitle, ColRating, ColReviews, ColPhone,
		ColIndustry, ColAddress, ColWebsite, ColMapsLink,
	}
}

// MergeResult reports the outcome of a batch merge.
type MergeResult struct {
	Inserted int // new leads committed
	Skipped  int // candidates ignored (phone already present, or unusable row)
}

// Store defines the persistence contract for leads. Implementations must
// make every mutating operation a single transaction: a fault partway
// through leaves the store in its pre-operation state.
type Store interface {
	// ListLeads returns a consistent snapshot of every persisted lead in
	// internal-id order. Display ordering is the view builder's concern.
	ListLeads(ctx context.Context) ([]*Lead, error)

	// GetLead returns the lead identified by phone, or ErrNotFound.
	GetLead(ctx context.Context, phone string) (*Lead, error)

	// InsertLead inserts a single lead. Returns ErrDuplicateLead if the
	// phone is already persisted and ErrMissingPhone if it is empty.
	InsertLead(ctx context.Context, lead *Lead) error

	// MergeLeads inserts a batch in one transaction, silently skipping
	// candidates whose phone already exists (or repeats within the batch).
	// On any fault the entire batch is rolled back.
	MergeLeads(ctx context.Context, leads []*Lead) (*MergeResult, error)

	// UpdateLead replaces every field except Phone for the lead identified
	// by phone. The lead's own Phone field is ignored: phone is a lookup
	// key here, never a mutable attribute. Returns ErrNotFound if absent.
	UpdateLead(ctx context.Context, phone string, lead *Lead) error

	// SetNote replaces only the note for the identified lead.
	SetNote(ctx context.Context, phone, note string) error

	// GetNote returns the note for the identified lead, or ErrNotFound.
	GetNote(ctx context.Context, phone string) (string, error)

	// DeleteLead removes the identified lead. Deleting an absent phone is
	// a no-op, not an error: deletion is idempotent.
	DeleteLead(ctx context.Context, phone string) error

	// CountLeads returns the number of persisted leads.
	CountLeads(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
