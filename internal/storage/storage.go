// Package storage persists encoded save documents in named slots.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a slot holds no save.
var ErrNotFound = errors.New("save not found")

// Slot is a single save location.
type Slot interface {
	// Name describes the slot for player-facing messages.
	Name() string
	Write(ctx context.Context, data []byte) error
	Read(ctx context.Context) ([]byte, error)
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the slot for the configured backend. The returned close
// function releases any underlying resources and is never nil.
func Open(backend, path, slot string) (Slot, func() error, error) {
	switch backend {
	case BackendFile, "":
		s, err := NewFileSlot(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case BackendSQLite:
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return store.Slot(slot), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown save backend %q", backend)
	}
}
