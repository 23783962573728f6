// Package access implements the decorator-specialized access dispatcher and
// the checked array-copy algorithm.
//
// Every barrier-mediated heap access is described at the call site by a
// decorator set: compile-time flags stating what the site needs checked. The
// dispatcher is generic over the decorator set, so each (decorator, strategy)
// pair compiles to its own instantiation and the flags are evaluated once
// per call — the unchecked instantiation contains no per-element checking at
// all, while the checked instantiations pay for exactly what they ask for.
//
// The decorator set is a closed enumeration: a call site either needs the
// runtime cast check, the null check, both, or neither. There is nothing to
// configure at run time and a site's decorators never change.
package access

// Decorators is the compile-time flag set of one access call site.
//
// Implementations are empty structs; the dispatcher instantiates per type
// and reads the flags into locals before any element is touched. Decorator
// tests never appear inside the unchecked copy loop.
type Decorators interface {
	// CheckCast reports whether stores must verify the element is an
	// instance of the destination's declared element type.
	CheckCast() bool

	// NotNull reports whether null elements are forbidden.
	NotNull() bool
}

// Unchecked requests no per-element checking: the destination's static
// element type already guarantees safety (the covariant-array case, verified
// upstream).
type Unchecked struct{}

// CheckCast reports false.
func (Unchecked) CheckCast() bool { return false }

// NotNull reports false.
func (Unchecked) NotNull() bool { return false }

// NullChecked forbids null elements but needs no cast check.
type NullChecked struct{}

// CheckCast reports false.
func (NullChecked) CheckCast() bool { return false }

// NotNull reports true.
func (NullChecked) NotNull() bool { return true }

// CastChecked requires the runtime cast check; nulls are permitted.
type CastChecked struct{}

// CheckCast reports true.
func (CastChecked) CheckCast() bool { return true }

// NotNull reports false.
func (CastChecked) NotNull() bool { return false }

// FullyChecked requires the cast check and forbids nulls.
type FullyChecked struct{}

// CheckCast reports true.
func (FullyChecked) CheckCast() bool { return true }

// NotNull reports true.
func (FullyChecked) NotNull() bool { return true }
