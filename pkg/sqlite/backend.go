// Package sqlite provides the public API for the SQLite journal backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/rpncalc/internal/sqlite"
	"github.com/mesh-intelligence/rpncalc/pkg/types"
)

// NewBackend creates a new SQLite journal instance.
// The journal is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	journal := sqlite.NewBackend()
//	err := journal.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/rpncalc",
//	})
//	defer journal.Detach()
func NewBackend() types.Journal {
	return sqlite.NewBackend()
}
