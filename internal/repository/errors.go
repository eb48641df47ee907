// Package repository implements persistence over *sql.DB. Sentinel
// errors defined here let the service layer distinguish failure cases
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert violates the unique email
// constraint.
var ErrEmailExists = errors.New("email already exists")
