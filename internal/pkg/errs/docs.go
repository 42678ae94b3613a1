// Package errs provides standardized error types for the pickup marketplace.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced entity is missing
//   - AccessDeniedError: the acting user may not perform the operation
//   - InvalidStateError: the operation is not legal in the current lifecycle state
//   - ConflictError and VersionIsInvalidError: a concurrent mutation won the race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Transport adapters classify failures with errors.Is against the sentinels
// and never inspect message text.
package errs
