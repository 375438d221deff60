// Package store holds the in-memory tables backing every entity family.
// Each store owns its maps behind a sync.RWMutex and exposes operations that
// keep every check-then-mutate sequence atomic under a single lock
// acquisition. All state is process-lifetime only.
package store

import "errors"

// Shared sentinel errors. Services translate these into typed API errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
