package approval

import (
	"errors"
	"fmt"
)

// ErrRequestNotFound indicates the request id does not exist.
var ErrRequestNotFound = errors.New("approval request not found")

// AuthorizationError means the caller is not entitled to decide this step.
// Rendered distinctly from state conflicts so the UI can show "not your
// turn" instead of a generic failure.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

// StateConflictError means the request moved under the caller: it is already
// terminal, or a concurrent actor decided the step first. The caller should
// re-fetch and re-evaluate rather than blindly retry the same command.
type StateConflictError struct {
	Reason string
}

func (e *StateConflictError) Error() string {
	return "state conflict: " + e.Reason
}

// StoreError wraps a transient store failure. The same command is safe to
// retry unchanged.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError covers malformed commands (bad step index, unknown
// request type) before any store round trip.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}
