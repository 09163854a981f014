// Package apperr defines the error taxonomy shared by the lifecycle
// engine, the hierarchy store and the HTTP layer. Each constructor tags
// the error with an errdefs class so callers can branch on kind without
// string matching.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

// Forbidden marks an action the actor's role or relationship does not
// permit.
func Forbidden(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrPermissionDenied)...)
}

// InvalidArgument marks malformed input, rejected before any mutation.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrInvalidArgument)...)
}

// NotFound marks a missing user or request id.
func NotFound(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrNotFound)...)
}

// InvalidTransition marks an action that does not apply to the
// request's current status. The caller must re-fetch before retrying.
func InvalidTransition(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrConflict)...)
}

// InvalidState marks a hierarchy mutation the store's current state
// does not allow, such as demoting a manager with active subordinates.
func InvalidState(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errdefs.ErrFailedPrecondition)...)
}

func IsForbidden(err error) bool         { return errdefs.IsPermissionDenied(err) }
func IsInvalidArgument(err error) bool   { return errdefs.IsInvalidArgument(err) }
func IsNotFound(err error) bool          { return errdefs.IsNotFound(err) }
func IsInvalidTransition(err error) bool { return errdefs.IsConflict(err) }
func IsInvalidState(err error) bool      { return errdefs.IsFailedPrecondition(err) }

// HTTPStatus maps an error to the status code surfaced to the client.
// Every taxonomy kind gets a distinct code so the UI can decide whether
// to re-query before letting the user retry.
func HTTPStatus(err error) int {
	switch {
	case errdefs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errdefs.IsPermissionDenied(err):
		return http.StatusForbidden
	case errdefs.IsNotFound(err):
		return http.StatusNotFound
	case errdefs.IsConflict(err):
		return http.StatusConflict
	case errdefs.IsFailedPrecondition(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
