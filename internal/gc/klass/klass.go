// Package klass implements the type-descriptor collaborator of the barrier
// runtime.
//
// A Klass describes one runtime type: its externally readable name, its
// supertype chain, and — for array types — the declared element type. The
// barrier core only ever reads Klass data: it resolves the destination's
// element type once per checked copy and runs subtype queries per element,
// so both operations must be cheap and allocation-free.
//
// Klass instances are immutable after construction and safe for unsynchronized
// concurrent use from any number of threads.
package klass

// Klass is a read-only runtime type descriptor.
//
// Fields:
//   - name: externally readable type name (e.g. "java.lang.String")
//   - super: direct supertype, nil for the root type
//   - element: declared element type, non-nil only for array descriptors
//
// Invariant: immutable after construction. The checked-copy hot loop calls
// IsSubtypeOf for every element, so Klass carries no locks and no lazy state.
type Klass struct {
	name    string
	super   *Klass
	element *Klass
}

// New creates a non-array Klass with the given external name and supertype.
//
// Pass a nil super for the root of the hierarchy. Typical setups build the
// hierarchy top-down:
//
//	object := klass.New("java.lang.Object", nil)
//	str := klass.New("java.lang.String", object)
func New(name string, super *Klass) *Klass {
	return &Klass{name: name, super: super}
}

// NewArray creates an array Klass whose declared element type is element.
//
// The external name is derived as "<element>[]". Array descriptors share the
// supertype chain root of their element type's hierarchy: A[] is a subtype of
// B[] exactly when A is a subtype of B (covariant arrays), which is what makes
// the per-element store check necessary in the first place.
func NewArray(element *Klass) *Klass {
	return &Klass{
		name:    element.name + "[]",
		element: element,
	}
}

// ElementKlass returns the declared element type of an array descriptor, or
// nil for non-array descriptors.
//
// The checked-copy path resolves this exactly once per copy, outside the
// per-element loop.
func (k *Klass) ElementKlass() *Klass {
	return k.element
}

// IsArray reports whether k describes an array type.
func (k *Klass) IsArray() bool {
	return k.element != nil
}

// IsSubtypeOf reports whether k is other or a transitive subtype of other.
//
// For array descriptors the check is covariant: A[] <= B[] iff A <= B.
// This runs once per element on the checked-copy path; it is a pointer-chase
// over the supertype chain with no allocation.
func (k *Klass) IsSubtypeOf(other *Klass) bool {
	if other == nil {
		return false
	}
	if k.element != nil && other.element != nil {
		return k.element.IsSubtypeOf(other.element)
	}
	for s := k; s != nil; s = s.super {
		if s == other {
			return true
		}
	}
	return false
}

// ExternalName returns the externally readable name of the type.
//
// Used only for diagnostic messages (the two array-store error shapes), never
// on a success path.
func (k *Klass) ExternalName() string {
	return k.name
}

// String implements fmt.Stringer via the external name.
func (k *Klass) String() string {
	return k.name
}
