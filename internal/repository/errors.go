// Package repository implements the persistence layer on database/sql.
// The sentinel errors below are the contract with the service and handler
// layers; handlers translate them into HTTP status codes.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist. Ownership
// checks on the per-user training path also collapse "exists but not
// yours" into ErrNotFound so reads never disclose other users' resources.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller holds a valid credential but
// lacks authority for the operation, e.g. a trainer moderating a training
// whose owner is outside their roster. Maps to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict signals a duplicate unique value, such as joining the same
// trainer's group twice. Maps to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is the registration-specific duplicate mail case.
var ErrEmailExists = errors.New("email already exists")
