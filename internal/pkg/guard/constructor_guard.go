// Package guard provides a small helper for enforcing constructor usage
// on domain objects. Embedding a ConstructorGuard in a struct makes the
// zero value detectable, so objects that bypassed their factory function
// fail validation instead of carrying unchecked state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does
// not supply a more specific "not constructed" error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// constructor. The zero value is invalid; NewConstructorGuard produces
// a valid guard.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
// Call this from the owning object's factory function.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}
	if notConstructedErr != nil {
		return notConstructedErr
	}
	return ErrDefaultConstructorGuard
}
