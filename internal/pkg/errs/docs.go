// Package errs provides the typed errors shared across the scheduler.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or not allowed
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: a persisted object cannot be found
//
// Each type pairs a sentinel (e.g. ErrValueIsRequired) with a struct that
// carries the details, constructors with and without a cause, and an Unwrap
// method returning the sentinel so callers can use errors.Is.
package errs
