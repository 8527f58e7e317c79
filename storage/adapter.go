package storage

import "context"

// Adapter describes the storage interface for hash records keyed by a string.
// A record is a flat field->value mapping; a key with no fields does not exist.
type Adapter interface {
	// Exists reports whether any field is stored under key
	Exists(ctx context.Context, key string) (bool, error)
	// SetRecord writes every field of record under key in a single store call
	SetRecord(ctx context.Context, key string, record map[string]string) error
	// GetRecord returns all fields stored under key; empty if key is absent
	GetRecord(ctx context.Context, key string) (map[string]string, error)
	// FieldNames lists the field names stored under key
	FieldNames(ctx context.Context, key string) ([]string, error)
	// DeleteFields removes the named fields from key
	DeleteFields(ctx context.Context, key string, fields ...string) error
	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
	Close() error
}
