// ABOUTME: CSV batch importer that merges candidate leads into the store
// ABOUTME: Validates column shape before any mutation and delegates dedup to the store

package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/2389/leadbook/internal/store"
)

// ErrInvalidFormat is returned when an import source is empty or missing
// a required column. The store is untouched when it is returned.
var ErrInvalidFormat = errors.New("invalid import format")

// Importer parses delimited tabular files into candidate leads and merges
// them into the store in one atomic batch. It never pre-filters
// duplicates: deduplication by phone is the store's merge contract.
type Importer struct {
	store     store.Store
	logger    *slog.Logger
	delimiter rune
}

// New creates an importer backed by the given store. A zero delimiter
// means comma.
func New(st store.Store, delimiter rune) *Importer {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Importer{
		store:     st,
		logger:    slog.Default().With("component", "importer"),
		delimiter: delimiter,
	}
}

// ImportFile reads a delimited file and merges its rows into the store.
// The header must carry every required column (exact, case-sensitive);
// Notes is optional and extra columns are ignored. An empty file, a file
// with no data rows, or a missing required column rejects the whole
// import with ErrInvalidFormat before anything is written.
func (i *Importer) ImportFile(ctx context.Context, path string) (*store.MergeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	leads, err := i.parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	batchID := uuid.NewString()
	i.logger.Info("importing lead batch", "batch_id", batchID, "path", path, "rows", len(leads))

	result, err := i.store.MergeLeads(ctx, leads)
	if err != nil {
		return nil, fmt.Errorf("merging imported leads: %w", err)
	}

	i.logger.Info("import complete",
		"batch_id", batchID,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
	return result, nil
}

// parse reads the header and all data rows, validating the column shape
// before converting anything.
func (i *Importer) parse(r io.Reader) ([]*store.Lead, error) {
	cr := csv.NewReader(r)
	cr.Comma = i.delimiter
	cr.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as empty

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for idx, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = idx
		}
	}

	for _, col := range store.RequiredColumns() {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidFormat, col)
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidFormat)
	}

	field := func(rec []string, col string) string {
		idx, ok := index[col]
		if !ok || idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}

	leads := make([]*store.Lead, 0, len(records))
	for _, rec := range records {
		leads = append(leads, &store.Lead{
			Title:    field(rec, store.ColTitle),
			Rating:   field(rec, store.ColRating),
			Reviews:  field(rec, store.ColReviews),
			Phone:    field(rec, store.ColPhone),
			Industry: field(rec, store.ColIndustry),
			Address:  field(rec, store.ColAddress),
			Website:  field(rec, store.ColWebsite),
			MapsLink: field(rec, store.ColMapsLink),
			Notes:    field(rec, store.ColNotes), // optional; empty when absent
		})
	}
	return leads, nil
}
