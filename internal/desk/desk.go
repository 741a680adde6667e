// ABOUTME: Desk is the facade the presentation layer drives
// ABOUTME: Composes store, importer, and view builder behind one surface

package desk

import (
	"context"
	"log/slog"

	"github.com/2389/leadbook/internal/config"
	"github.com/2389/leadbook/internal/importer"
	"github.com/2389/leadbook/internal/store"
	"github.com/2389/leadbook/internal/view"
)

// Desk wires the lead store, the batch importer, and the view builder
// into the surface a frontend consumes. Errors from the store and the
// importer pass through unchanged so callers can surface the sentinel
// kinds verbatim.
type Desk struct {
	store    store.Store
	importer *importer.Importer
	logger   *slog.Logger
}

// New opens the configured store and wires the importer.
func New(cfg *config.Config, logger *slog.Logger) (*Desk, error) {
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	return &Desk{
		store:    st,
		importer: importer.New(st, cfg.Import.DelimiterRune()),
		logger:   logger.With("component", "desk"),
	}, nil
}

// ListProjection returns the ordered display projection of every lead.
func (d *Desk) ListProjection(ctx context.Context) ([]view.Row, error) {
	leads, err := d.store.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	return view.Build(leads), nil
}

// GetNote returns the note for the identified lead.
func (d *Desk) GetNote(ctx context.Context, phone string) (string, error) {
	return d.store.GetNote(ctx, phone)
}

// SetNote replaces the note for the identified lead.
func (d *Desk) SetNote(ctx context.Context, phone, note string) error {
	return d.store.SetNote(ctx, phone, note)
}

// AddLead inserts a single lead, reporting a phone collision as
// store.ErrDuplicateLead.
func (d *Desk) AddLead(ctx context.Context, lead *store.Lead) error {
	return d.store.InsertLead(ctx, lead)
}

// GetLead returns the lead identified by phone, for edit prefill.
func (d *Desk) GetLead(ctx context.Context, phone string) (*store.Lead, error) {
	return d.store.GetLead(ctx, phone)
}

// EditLead replaces every field except the phone for the identified lead.
func (d *Desk) EditLead(ctx context.Context, phone string, lead *store.Lead) error {
	return d.store.UpdateLead(ctx, phone, lead)
}

// DeleteLead removes the identified lead; absence is not an error.
func (d *Desk) DeleteLead(ctx context.Context, phone string) error {
	return d.store.DeleteLead(ctx, phone)
}

// ImportFromFile merges a delimited lead file into the store.
func (d *Desk) ImportFromFile(ctx context.Context, path string) (*store.MergeResult, error) {
	return d.importer.ImportFile(ctx, path)
}

// Count returns the number of persisted leads.
func (d *Desk) Count(ctx context.Context) (int, error) {
	return d.store.CountLeads(ctx)
}

// Close releases the underlying store.
func (d *Desk) Close() error {
	return d.store.Close()
}
