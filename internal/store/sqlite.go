// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides lead persistence with automatic schema creation and batch merge

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating database directory: %v", ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrStorageUnavailable, err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", ErrStorageUnavailable, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %v", ErrStorageUnavailable, err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrStorageUnavailable, err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the leads table if it doesn't exist.
// The surrogate id stays internal; Phone is the business key.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			Title TEXT,
			Rating TEXT,
			Reviews TEXT,
			Phone TEXT NOT NULL UNIQUE CHECK (Phone <> ''),
			Industry TEXT,
			Address TEXT,
			Website TEXT,
			Google_Maps_Link TEXT,
			Notes TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_leads_title ON leads(Title);
	`

	_, err := s.db.Exec(schema)
	return err
}

// isUniqueViolation checks if the error is a SQLite UNIQUE constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// ListLeads returns every persisted lead in internal-id order.
func (s *SQLiteStore) ListLeads(ctx context.Context) ([]*Lead, error) {
	query := `
		SELECT Title, Rating, Reviews, Phone, Industry, Address, Website, Google_Maps_Link, Notes
		FROM leads
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	defer rows.Close()

	var leads []*Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(
			&l.Title, &l.Rating, &l.Reviews, &l.Phone,
			&l.Industry, &l.Address, &l.Website, &l.MapsLink, &l.Notes,
		); err != nil {
			return nil, fmt.Errorf("scanning lead row: %w", err)
		}
		leads = append(leads, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead rows: %w", err)
	}

	return leads, nil
}

// GetLead retrieves a lead by phone number.
// Returns ErrNotFound if no such lead exists.
func (s *SQLiteStore) GetLead(ctx context.Context, phone string) (*Lead, error) {
	query := `
		SELECT Title, Rating, Reviews, Phone, Industry, Address, Website, Google_Maps_Link, Notes
		FROM leads
		WHERE Phone = ?
	`

	var l Lead
	err := s.db.QueryRowContext(ctx, query, phone).Scan(
		&l.Title, &l.Rating, &l.Reviews, &l.Phone,
		&l.Industry, &l.Address, &l.Website, &l.MapsLink, &l.Notes,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying lead: %w", err)
	}

	return &l, nil
}

// InsertLead inserts a single lead.
// Returns ErrDuplicateLead if the phone number is already persisted.
func (s *SQLiteStore) InsertLead(ctx context.Context, lead *Lead) error {
	if lead.Phone == "" {
		return ErrMissingPhone
	}

	query := `
		INSERT INTO leads (Title, Rating, Reviews, Phone, Industry, Address, Website, Google_Maps_Link, Notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		lead.Title, lead.Rating, lead.Reviews, lead.Phone,
		lead.Industry, lead.Address, lead.Website, lead.MapsLink, lead.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateLead
		}
		return fmt.Errorf("inserting lead: %w", err)
	}

	s.logger.Debug("inserted lead", "phone", lead.Phone)
	return nil
}

// MergeLeads inserts a batch of leads in one transaction. Candidates whose
// phone is already persisted, repeats within the batch, or has no phone at
// all are skipped silently via INSERT OR IGNORE. Any other fault aborts
// the transaction and rolls back the entire batch.
func (s *SQLiteStore) MergeLeads(ctx context.Context, leads []*Lead) (*MergeResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning merge transaction: %w", err)
	}
	defer tx.Rollback()

	// OR IGNORE covers both the UNIQUE(Phone) collision and the
	// non-empty-phone CHECK, so unusable rows fall into Skipped too.
	query := `
		INSERT OR IGNORE INTO leads (Title, Rating, Reviews, Phone, Industry, Address, Website, Google_Maps_Link, Notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result := &MergeResult{}
	for _, lead := range leads {
		res, err := tx.ExecContext(ctx, query,
			lead.Title, lead.Rating, lead.Reviews, lead.Phone,
			lead.Industry, lead.Address, lead.Website, lead.MapsLink, lead.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("merging lead %q: %w", lead.Phone, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("getting rows affected: %w", err)
		}
		if n == 0 {
			result.Skipped++
			continue
		}
		result.Inserted++
		s.logger.Debug("merged lead", "phone", lead.Phone)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing merge: %w", err)
	}

	s.logger.Info("merged lead batch", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// UpdateLead replaces every field except Phone for the lead identified by
// phone. Returns ErrNotFound if no such lead exists.
func (s *SQLiteStore) UpdateLead(ctx context.Context, phone string, lead *Lead) error {
	query := `
		UPDATE leads
		SET Title = ?, Rating = ?, Reviews = ?, Industry = ?, Address = ?, Website = ?, Google_Maps_Link = ?
		WHERE Phone = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		lead.Title, lead.Rating, lead.Reviews,
		lead.Industry, lead.Address, lead.Website, lead.MapsLink,
		phone,
	)
	if err != nil {
		return fmt.Errorf("updating lead: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated lead", "phone", phone)
	return nil
}

// SetNote replaces only the note for the identified lead.
// Returns ErrNotFound if no such lead exists.
func (s *SQLiteStore) SetNote(ctx context.Context, phone, note string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE leads SET Notes = ? WHERE Phone = ?`, note, phone)
	if err != nil {
		return fmt.Errorf("setting note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("set note", "phone", phone, "size", len(note))
	return nil
}

// GetNote returns the note for the identified lead.
// Returns ErrNotFound if no such lead exists.
func (s *SQLiteStore) GetNote(ctx context.Context, phone string) (string, error) {
	var note string
	err := s.db.QueryRowContext(ctx, `SELECT Notes FROM leads WHERE Phone = ?`, phone).Scan(&note)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying note: %w", err)
	}
	return note, nil
}

// DeleteLead removes the identified lead. Deleting a phone that is not
// persisted succeeds without error.
func (s *SQLiteStore) DeleteLead(ctx context.Context, phone string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE Phone = ?`, phone)
	if err != nil {
		return fmt.Errorf("deleting lead: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		s.logger.Debug("deleted lead", "phone", phone)
	}
	return nil
}

// CountLeads returns the number of persisted leads.
func (s *SQLiteStore) CountLeads(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting leads: %w", err)
	}
	return n, nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
