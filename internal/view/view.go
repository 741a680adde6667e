// ABOUTME: Pure projection builder for the lead table display
// ABOUTME: Orders noted leads first and marks their titles without exposing note text

package view

import (
	"sort"

	"github.com/2389/leadbook/internal/store"
)

// NoteMarker is appended to the display title of a lead that carries a
// note, so a consumer can signal "has a note" without the note text.
const NoteMarker = " *"

// Row is one display-ready lead projection. It carries every lead field
// except Notes; note text is fetched on demand through the annotation path.
type Row struct {
	DisplayTitle string
	Rating       string
	Reviews      string
	Phone        string
	Industry     string
	Address      string
	Website      string
	MapsLink     string
}

// Build derives the ordered display projection from a lead snapshot.
// Leads with a note sort before leads without one; within each group the
// order is ascending by title, with phone as the deterministic tiebreak.
// Build never mutates its input and performs no I/O.
func Build(leads []*store.Lead) []Row {
	sorted := make([]*store.Lead, len(leads))
	copy(sorted, leads)

	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := sorted[i].Notes != "", sorted[j].Notes != ""
		if ni != nj {
			return ni
		}
		if sorted[i].Title != sorted[j].Title {
			return sorted[i].Title < sorted[j].Title
		}
		return sorted[i].Phone < sorted[j].Phone
	})

	rows := make([]Row, 0, len(sorted))
	for _, l := range sorted {
		title := l.Title
		if l.Notes != "" {
			title += NoteMarker
		}
		rows = append(rows, Row{
			DisplayTitle: title,
			Rating:       l.Rating,
			Reviews:      l.Reviews,
			Phone:        l.Phone,
			Industry:     l.Industry,
			Address:      l.Address,
			Website:      l.Website,
			MapsLink:     l.MapsLink,
		})
	}
	return rows
}
