// Package storage defines the Storage interface: the contract between the
// validation pipeline and wherever user records come from and go to.
//
// The pipeline in main only depends on this interface, so the file backend
// can be swapped (or faked in tests) without touching validation code.
package storage

import "github.com/aanand-mishra/userinfo-validator/internal/types"

// Storage is the record source and sink.
type Storage interface {
	// ReadRecords returns the raw, unvalidated records in input order.
	// Keys are field labels; values are whatever the source held
	// (strings, numbers, ...). Coercion is up to types.NewRecord.
	ReadRecords() ([]map[string]any, error)

	// WriteRecords persists the records that passed validation, in order.
	WriteRecords(records []types.Record) error
}
