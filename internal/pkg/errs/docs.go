// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// The HTTP adapter maps these sentinels onto response status codes:
// ErrObjectNotFound becomes 404, ErrValueIsInvalid and ErrValueIsRequired
// become 400, ErrNotAuthorized becomes 403 and ErrVersionConflict becomes 409.
package errs
