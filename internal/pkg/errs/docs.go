// Package errs provides standardized error types for the dispatch engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The taxonomy mirrors the outcomes callers must distinguish:
//   - ObjectNotFoundError: an order, job, or mover is absent
//   - ConflictError: duplicate active order, job already claimed, idempotency replay mismatch
//   - InvalidTransitionError: a lifecycle event not legal from the current status
//   - UnauthorizedError: the actor is not the owning student / assigned mover
//   - ValueIsInvalid/Required/OutOfRange: malformed request fields
//   - PaymentError: payment-gateway failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// This standardized approach enables the HTTP layer to map errors to status
// codes with errors.Is and keeps expected outcomes (claim conflicts) from
// being logged as severe failures.
package errs
