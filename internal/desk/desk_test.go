// ABOUTME: Tests for the desk facade
// ABOUTME: Exercises the end-to-end import, annotate, edit, and projection flow

package desk

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/leadbook/internal/config"
	"github.com/2389/leadbook/internal/importer"
	"github.com/2389/leadbook/internal/store"
)

func newTestDesk(t *testing.T) *Desk {
	t.Helper()

	cfg := config.Default(t.TempDir())
	d, err := New(cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleLead(phone string) *store.Lead {
	return &store.Lead{
		Title:    "Acme",
		Rating:   "4.5",
		Reviews:  "120",
		Phone:    phone,
		Industry: "Plumbing",
		Address:  "1 Main St",
		Website:  "https://acme.example",
		MapsLink: "https://maps.example/acme",
	}
}

func TestAddAndListProjection(t *testing.T) {
	d := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, d.AddLead(ctx, sampleLead("5551230000")))

	rows, err := d.ListProjection(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].DisplayTitle)
	assert.Equal(t, "5551230000", rows[0].Phone)
}

func TestAddLead_DuplicateSurfacesSentinel(t *testing.T) {
	d := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, d.AddLead(ctx, sampleLead("5551230000")))
	err := d.AddLead(ctx, sampleLead("5551230000"))
	assert.ErrorIs(t, err, store.ErrDuplicateLead)
}

func TestEditLead_RoundTrip(t *testing.T) {
	d := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, d.AddLead(ctx, sampleLead("5551230000")))

	edited := &store.Lead{
		Title:    "Acme Renamed",
		Rating:   "2.0",
		Reviews:  "5",
		Industry: "Electrical",
		Address:  "2 Oak St",
		Website:  "https://renamed.example",
		MapsLink: "https://maps.example/renamed",
	}
	require.NoError(t, d.EditLead(ctx, "5551230000", edited))

	got, err := d.GetLead(ctx, "5551230000")
	require.NoError(t, err)
	assert.Equal(t, "5551230000", got.Phone)
	assert.Equal(t, "Acme Renamed", got.Title)
	assert.Equal(t, "2.0", got.Rating)
	assert.Equal(t, "5", got.Reviews)
	assert.Equal(t, "Electrical", got.Industry)
	assert.Equal(t, "2 Oak St", got.Address)
	assert.Equal(t, "https://renamed.example", got.Website)
	assert.Equal(t, "https://maps.example/renamed", got.MapsLink)
}

func TestEditLead_NotFound(t *testing.T) {
	d := newTestDesk(t)

	err := d.EditLead(context.Background(), "nonexistent", sampleLead("5551230000"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNotes(t *testing.T) {
	d := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, d.AddLead(ctx, sampleLead("5551230000")))
	require.NoError(t, d.SetNote(ctx, "5551230000", "call back"))

	note, err := d.GetNote(ctx, "5551230000")
	require.NoError(t, err)
	assert.Equal(t, "call back", note)

	_, err = d.GetNote(ctx, "nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteLead_Idempotent(t *testing.T) {
	d := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, d.AddLead(ctx, sampleLead("5551230000")))
	require.NoError(t, d.DeleteLead(ctx, "5551230000"))
	require.NoError(t, d.DeleteLead(ctx, "5551230000"))

	n, err := d.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportFromFile_InvalidFormat(t *testing.T) {
	d := newTestDesk(t)

	_, err := d.ImportFromFile(context.Background(), writeCSV(t, "Title,Phone\nAcme,5551230000\n"))
	assert.ErrorIs(t, err, importer.ErrInvalidFormat)
}

// TestImportAnnotateProject runs the full scenario: a batch with duplicate
// phones imports to a single lead, re-import changes nothing, and a noted
// lead sorts first with the marked title.
func TestImportAnnotateProject(t *testing.T) {
	d := newTestDesk(t)
	ctx := context.Background()

	csv := "Title,Rating,Reviews,Phone,Industry,Address,Website,Google Maps Link\n" +
		"Acme,4.5,120,5551230000,Plumbing,1 Main St,https://acme.example,https://maps.example/acme\n" +
		"Acme,4.5,120,5551230000,Plumbing,1 Main St,https://acme.example,https://maps.example/acme\n" +
		"Borealis,4.1,80,5551230001,Heating,3 Pine St,https://borealis.example,https://maps.example/borealis\n"
	path := writeCSV(t, csv)

	result, err := d.ImportFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 1, result.Skipped)

	// Re-import: no-op
	result, err = d.ImportFromFile(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, result.Inserted)

	require.NoError(t, d.SetNote(ctx, "5551230000", "call back"))

	rows, err := d.ListProjection(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme *", rows[0].DisplayTitle)
	assert.Equal(t, "5551230000", rows[0].Phone)
	assert.Equal(t, "Borealis", rows[1].DisplayTitle)
}
