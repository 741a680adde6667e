// Package store provides persistent storage for leads using SQLite.
//
// # Data Model
//
// A Lead is a contact record whose business identity is its phone number:
// no two persisted leads ever share a Phone, and a lead with an empty
// Phone is never persisted. The table carries an internal AUTOINCREMENT
// id, but it is a surrogate key that never leaves this package.
//
// # Operations
//
// The Store interface splits single-record and batch ingestion on
// purpose:
//
//   - InsertLead reports a phone collision as ErrDuplicateLead, because a
//     manual add colliding with existing data is caller-visible news.
//   - MergeLeads silently skips collisions and counts them, because bulk
//     ingestion is expected to overlap with what is already stored.
//
// UpdateLead and SetNote address a lead by phone and cannot move it to a
// different phone; SetNote is the narrow annotation path that touches
// only Notes. DeleteLead is idempotent.
//
// # Transactions
//
// Every mutating operation is a single transaction. MergeLeads in
// particular commits all-or-nothing: a fault after N of M rows rolls the
// whole batch back.
//
// # SQLite Configuration
//
// The store uses SQLite (modernc.org/sqlite, no cgo) with:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// # Error Handling
//
//   - ErrNotFound: target lead does not exist
//   - ErrDuplicateLead: single insert collides on Phone
//   - ErrMissingPhone: single insert with an empty Phone
//   - ErrStorageUnavailable: database cannot be opened or initialized
//
// All methods accept context.Context for cancellation support.
package store
