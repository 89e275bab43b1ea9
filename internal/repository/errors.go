// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking engine and handlers to distinguish between different failure
// scenarios. For example, ErrForbidden indicates that the current user
// is not allowed to touch a reservation owned by someone else, while
// ErrResourceNotFound signals that a requested resource id does not
// resolve to an enabled bookable unit.
package repository

import "errors"

// ErrResourceNotFound is returned when a resource lookup fails or the
// resource has been soft-disabled. The booking engine translates this
// into a RESOURCE_NOT_FOUND outcome; handlers into HTTP 404.
var ErrResourceNotFound = errors.New("resource not found")

// ErrReservationNotFound is returned when a reservation lookup fails.
// Handlers should translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrForbidden is returned when the caller attempts an operation on a
// reservation they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyCancelled is returned when a cancellation targets a
// reservation whose soft-delete flag is already set.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")
