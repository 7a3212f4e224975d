// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - QuantityExceededError: For when a line quantity exceeds the remaining
//     committable amount of its source line
//   - ForbiddenStatusError: For when a mutation is attempted outside the
//     document status set that permits it
//   - ConflictError: For when a transactional retry budget is exhausted
//     under write contention
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach lets callers classify failures with errors.Is
// while still receiving the numeric bounds and status names that were violated.
package errs
