// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to distinguish between
// failure scenarios without string matching: ErrNotFound maps to HTTP 404,
// ErrEmailExists to HTTP 409.
package repository

import "errors"

// ErrNotFound is returned when an operation targets an id that does not
// exist in its table.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a signup collides with an existing email,
// either through the pre-check or through the UNIQUE constraint. Two racing
// signups produce exactly one success and one conflict.
var ErrEmailExists = errors.New("email already registered")
