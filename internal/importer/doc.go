// Package importer ingests delimited lead files. It validates the column
// shape up front, converts rows to candidate leads, and hands the whole
// batch to the store's merge in a single transaction, so re-importing the
// same file is a no-op.
package importer
