package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an illegal transition: the task is already in a
// terminal state or the requested edge does not exist for its kind. Retrying
// does not change the outcome, so callers surface it rather than retry.
var ErrInvalidState = errors.New("invalid state transition")

// ErrFieldMapping indicates a change request referencing a field name that has
// no entry in the account field catalog. This is a configuration defect, not a
// user error.
var ErrFieldMapping = errors.New("unmapped change request field")

// ErrMissingReason indicates a rejection that requires a reason was issued
// without one. Checked before any mutation is attempted.
var ErrMissingReason = errors.New("rejection reason required")

// ErrForbidden indicates the caller lacks the role required for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
