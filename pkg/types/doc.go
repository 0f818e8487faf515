// Package types defines the Journal interface, the session and entry records
// it stores, its configuration, and the sentinel errors shared by journal
// backends.
package types
