package access

import (
	"fmt"

	"github.com/kolkov/gcbarrier/internal/gc/klass"
)

// The two recoverable error kinds of the barrier core. Both are scoped to a
// single copy or store, catchable by the calling context, and never fatal.
// After a failed copy the destination holds a well-defined partial result:
// slots [0, Index) carry the copied prefix, slots [Index, n) are untouched,
// so a caller can compute exactly how many elements succeeded.

// NullStoreError reports a null element where nulls are forbidden.
//
// Fields:
//   - Bound: the destination array's declared element type
//   - Index: the source index holding the offending null
type NullStoreError struct {
	Bound *klass.Klass
	Index int
}

// Error implements the error interface.
func (e *NullStoreError) Error() string {
	return fmt.Sprintf("arraycopy: can not copy null values into %s[]",
		e.Bound.ExternalName())
}

// newNullStore builds the null-store error for a checked copy.
func newNullStore(bound *klass.Klass, index int) *NullStoreError {
	return &NullStoreError{Bound: bound, Index: index}
}

// ArrayStoreError reports an element (or a whole array) that is not
// assignable to the destination's declared element type.
//
// Two message shapes are carried, and deliberately not collapsed into one —
// they mean different things to whoever is debugging:
//   - whole-array: the destination element type is not a subtype of the
//     source array's declared element type at all, so no element could ever
//     fit; the message cites both array types.
//   - element: the arrays are compatible in principle but one concrete
//     element is not; the message cites that element's runtime type and the
//     destination element type.
//
// Fields:
//   - Src: the source array's declared element type (nil for single stores)
//   - Elem: the runtime type of the offending element (nil for whole-array)
//   - Bound: the destination array's declared element type
//   - Index: the index at which the copy stopped
type ArrayStoreError struct {
	Src   *klass.Klass
	Elem  *klass.Klass
	Bound *klass.Klass
	Index int
}

// Whole reports whether this is the whole-array mismatch shape.
func (e *ArrayStoreError) Whole() bool {
	return e.Elem == nil
}

// Error implements the error interface.
func (e *ArrayStoreError) Error() string {
	if e.Src == nil {
		// Single-reference store, no source array to cite.
		return fmt.Sprintf("store: type mismatch: can not store %s into %s[]",
			e.Elem.ExternalName(), e.Bound.ExternalName())
	}
	if e.Whole() {
		return fmt.Sprintf("arraycopy: type mismatch: can not copy %s[] into %s[]",
			e.Src.ExternalName(), e.Bound.ExternalName())
	}
	return fmt.Sprintf("arraycopy: element type mismatch: can not cast one of the elements"+
		" of %s[], a %s, to the type of the destination array, %s",
		e.Src.ExternalName(), e.Elem.ExternalName(), e.Bound.ExternalName())
}

// newWholeArrayMismatch builds the whole-array shape: destination element
// type not a subtype of the source's declared element type.
func newWholeArrayMismatch(src, bound *klass.Klass, index int) *ArrayStoreError {
	return &ArrayStoreError{Src: src, Bound: bound, Index: index}
}

// newElementMismatch builds the single-element shape, citing the offending
// element's runtime type.
func newElementMismatch(src, elem, bound *klass.Klass, index int) *ArrayStoreError {
	return &ArrayStoreError{Src: src, Elem: elem, Bound: bound, Index: index}
}
