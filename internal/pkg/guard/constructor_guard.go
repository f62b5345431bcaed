// Package guard provides ConstructorGuard, a marker that lets value objects, commands and
// queries tell a properly constructed instance apart from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when the caller
// does not supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose invariants are established by a constructor.
// The zero value reports "not constructed".
//
// Example:
//
//	var ErrMoveStopCommandIsNotConstructed = errors.New("MoveStopCommand must be created via NewMoveStopCommand")
//
//	type MoveStopCommand struct {
//	    routeID  kernel.UUID
//	    sequence int
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c MoveStopCommand) Validate() error {
//	    return c.guard.Validate(ErrMoveStopCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it from constructors only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
