// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to modify a place created by someone else, while
// ErrPlaceNotFound and sql.ErrNoRows signal that a referenced
// entity is absent.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a place they did not create. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrPlaceNotFound is returned when a place cannot be found in the DB.
var ErrPlaceNotFound = errors.New("place not found")

// ErrEmailExists is returned by UserRepo.Create when the email is
// already taken. The users.email column carries a unique index; the
// repository maps the MySQL duplicate-key error onto this value.
var ErrEmailExists = errors.New("email already exists")
