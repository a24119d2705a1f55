// Package guard provides ConstructorGuard, a marker embedded in entities,
// value objects and commands so that their zero value can be told apart
// from an instance built by the designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was created through
// its constructor.
//
// Example usage:
//
//	var ErrFleetConfigIsNotConstructed = errors.New("FleetConfig must be created via NewFleetConfig")
//
//	type FleetConfig struct {
//	    count int
//	    guard guard.ConstructorGuard
//	}
//
//	func (c FleetConfig) Validate() error {
//	    return c.guard.Validate(ErrFleetConfigIsNotConstructed)
//	}
//
// The guard holds a single immutable flag, so copies are safe to share
// between goroutines.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it from
// the constructor of the enclosing type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
