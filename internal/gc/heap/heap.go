// Package heap implements the minimal object model the barrier runtime
// operates on.
//
// The barrier core never interprets object contents. It needs exactly three
// things from the heap: a nullable reference type that can report its runtime
// Klass, a reference-array type that can report its declared element Klass,
// and a way to resolve one side of a bulk copy — (array object, byte offset,
// raw slot window) — into a flat window of slots. Everything else about object
// layout belongs to the host runtime.
package heap

import (
	"github.com/kolkov/gcbarrier/internal/gc/contract"
	"github.com/kolkov/gcbarrier/internal/gc/klass"
)

// RefSize is the size in bytes of one reference slot.
//
// Byte offsets handed to ArrayView are expressed in these units; an offset
// that is not a multiple of RefSize does not name a slot and is a contract
// violation.
const RefSize = 8

// Object is a heap object carrying its runtime type descriptor.
//
// Only the Klass is modelled; the barrier core reads it for the per-element
// cast check and for diagnostic messages, nothing more.
type Object struct {
	klass *klass.Klass
}

// NewObject allocates an object of the given runtime type.
func NewObject(k *klass.Klass) *Object {
	return &Object{klass: k}
}

// Klass returns the object's runtime type descriptor.
func (o *Object) Klass() *klass.Klass {
	return o.klass
}

// Ref is a nullable heap reference. A nil Ref is the null reference.
type Ref = *Object

// ObjArray is a reference array with a declared element type.
//
// The declared element Klass drives the checked-copy cast test; the slot
// storage is the flat window the raw copy primitive operates on.
type ObjArray struct {
	klass *klass.Klass // array descriptor, element() is the declared element type
	slots []Ref
}

// NewObjArray allocates a reference array of the given length whose declared
// element type is element. All slots start null.
func NewObjArray(element *klass.Klass, length int) *ObjArray {
	return &ObjArray{
		klass: klass.NewArray(element),
		slots: make([]Ref, length),
	}
}

// Len returns the number of slots.
func (a *ObjArray) Len() int {
	return len(a.slots)
}

// Klass returns the array's own type descriptor (e.g. "T[]").
func (a *ObjArray) Klass() *klass.Klass {
	return a.klass
}

// ElementKlass returns the array's declared element type.
//
// The checked-copy path resolves this once per copy.
func (a *ObjArray) ElementKlass() *klass.Klass {
	return a.klass.ElementKlass()
}

// Get returns the slot at index i.
func (a *ObjArray) Get(i int) Ref {
	return a.slots[i]
}

// Set stores v into the slot at index i.
//
// This is the raw store; barrier-mediated stores go through the access
// dispatcher, which layers strategy bookkeeping on top.
func (a *ObjArray) Set(i int, v Ref) {
	a.slots[i] = v
}

// Slots returns the backing slot window.
func (a *ObjArray) Slots() []Ref {
	return a.slots
}

// ArrayView describes one side of a bulk copy: the array object, a byte
// offset from slot 0, and an optional pre-resolved raw slot window.
//
// The object reference is used only for diagnostics and for the destination
// element-type lookup; the (offset, raw) pair identifies the real copy range.
// A view is derived per call and never stored.
type ArrayView struct {
	// Obj is the array object. Required on the destination side of a
	// checked copy (element-type lookup); used for diagnostics otherwise.
	Obj *ObjArray

	// Offset is the byte offset of the first copied slot, counted from
	// slot 0. Must be a multiple of RefSize. Ignored when Raw is set.
	Offset uintptr

	// Raw, when non-nil, is the already-resolved slot window starting at
	// the first copied slot. Takes precedence over (Obj, Offset).
	Raw []Ref
}

// ViewOf builds a view of a starting at slot index from.
func ViewOf(a *ObjArray, from int) ArrayView {
	return ArrayView{Obj: a, Offset: uintptr(from) * RefSize}
}

// Resolve materializes the view's flat window of n slots.
//
// Mirrors the offset-to-raw resolution of the copy entry point: an explicit
// raw window wins; otherwise the window is derived from the array object and
// the byte offset. A misaligned offset or a window that does not fit the
// array is a contract violation — the host runtime computed a bad range, and
// continuing would corrupt the heap.
func (v ArrayView) Resolve(n int) []Ref {
	if v.Raw != nil {
		if n > len(v.Raw) {
			contract.Throwf("array view: raw window has %d slots, need %d", len(v.Raw), n)
		}
		return v.Raw[:n]
	}
	if v.Obj == nil {
		contract.Throwf("array view: neither raw window nor array object present")
	}
	if v.Offset%RefSize != 0 {
		contract.Throwf("array view: byte offset %d not slot-aligned", v.Offset)
	}
	first := int(v.Offset / RefSize)
	if first < 0 || first+n > v.Obj.Len() {
		contract.Throwf("array view: slots [%d,%d) out of range for array of length %d",
			first, first+n, v.Obj.Len())
	}
	return v.Obj.slots[first : first+n]
}
