// Package repository defines the MySQL data access layer and the error
// values shared by every repository.  These sentinel values allow higher
// layers such as services and handlers to distinguish between different
// failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is not owned by the
// tenant in the query.  The two cases are deliberately indistinguishable:
// a caller probing another tenant's ids learns nothing.  Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a conditional write matched no row because
// the record is no longer in the expected state.  Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInsufficientBalance is returned by ConsumeMinutes when the profile
// holds fewer minutes than requested.  The balance is left untouched.
var ErrInsufficientBalance = errors.New("insufficient minutes balance")
