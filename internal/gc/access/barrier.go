package access

import (
	"github.com/kolkov/gcbarrier/internal/gc/barrierset"
	"github.com/kolkov/gcbarrier/internal/gc/contract"
	"github.com/kolkov/gcbarrier/internal/gc/heap"
)

// Barrier is the access dispatcher: the façade one call site's accesses go
// through, specialized by that site's decorator set.
//
// A Barrier holds the active strategy by reference; it is a value type,
// cheap to construct per site, and carries no mutable state of its own. All
// operations run entirely on the calling thread: a copy runs to completion
// or stops at the first failing element, with no suspension and no blocking.
type Barrier[D Decorators] struct {
	bs barrierset.BarrierSet
}

// For builds the dispatcher for one call site against the active strategy.
//
// Typical use, with the decorator set fixed at the site:
//
//	ab := access.For[access.CheckCast](reg.Active())
//	err := ab.OopArrayCopy(src, dst, n)
func For[D Decorators](bs barrierset.BarrierSet) Barrier[D] {
	return Barrier[D]{bs: bs}
}

// OopArrayCopy copies n reference slots from src to dst, layering the
// decorator-driven checking of this instantiation over the strategy's raw
// copy primitive.
//
// Fast path (no decorators): one flat bulk copy through the strategy, O(n),
// no per-element branch, followed by the strategy's post-copy bookkeeping
// over the whole destination range. This is the covariant-array case — the
// destination's static element type already guarantees safety.
//
// Checked path (either decorator): the destination's declared element type
// is resolved once, then elements are processed in strictly increasing index
// order. On the first forbidden null a *NullStoreError is returned; on the
// first non-assignable element an *ArrayStoreError. Either way slots < the
// failing index are committed and slots >= it are untouched — a fail-fast,
// non-transactional partial copy — and the post-copy bookkeeping covers
// exactly the committed prefix.
//
// n = 0 touches no element and never fails, for every decorator set.
func (b Barrier[D]) OopArrayCopy(src, dst heap.ArrayView, n int) error {
	if n == 0 {
		return nil
	}

	srcSlots := src.Resolve(n)
	dstSlots := dst.Resolve(n)

	// Decorator selection happens here, once per call, never per element.
	var d D
	if !d.CheckCast() && !d.NotNull() {
		// Covariant, copy without checks.
		b.bs.RawArrayCopy(dstSlots, srcSlots)
		b.bs.WriteRefArray(dstSlots)
		return nil
	}

	return b.checkedCopy(d, src, dst, srcSlots, dstSlots)
}

// checkedCopy is the per-element slow path. Split out so the fast path stays
// branch-free and trivially inlinable.
func (b Barrier[D]) checkedCopy(d D, src, dst heap.ArrayView, srcSlots, dstSlots []heap.Ref) error {
	if dst.Obj == nil || src.Obj == nil {
		contract.Throwf("checked arraycopy without array objects for type lookup")
	}
	bound := dst.Obj.ElementKlass()
	stype := src.Obj.ElementKlass()
	if bound == nil || stype == nil {
		contract.Throwf("checked arraycopy over non-array objects")
	}

	checkCast, notNull := d.CheckCast(), d.NotNull()

	committed := 0
	var fail error
	for i, elem := range srcSlots {
		if notNull && elem == nil {
			fail = newNullStore(bound, i)
			break
		}
		if checkCast && elem != nil && !elem.Klass().IsSubtypeOf(bound) {
			// The subtype query below feeds the diagnostic only: a
			// destination type the source could never supply gets the
			// whole-array message, an incompatible individual element
			// gets the element message.
			if !bound.IsSubtypeOf(stype) {
				fail = newWholeArrayMismatch(stype, bound, i)
			} else {
				fail = newElementMismatch(stype, elem.Klass(), bound, i)
			}
			break
		}
		dstSlots[i] = elem
		committed++
	}

	// Bookkeeping covers the committed prefix only, even on failure.
	b.bs.WriteRefArray(dstSlots[:committed])
	return fail
}

// OopStore stores v into slot i of arr under this site's decorators and
// routes the post-write notification to the strategy.
func (b Barrier[D]) OopStore(arr *heap.ObjArray, i int, v heap.Ref) error {
	var d D
	if d.NotNull() && v == nil {
		return newNullStore(arr.ElementKlass(), i)
	}
	if d.CheckCast() && v != nil && !v.Klass().IsSubtypeOf(arr.ElementKlass()) {
		return &ArrayStoreError{Elem: v.Klass(), Bound: arr.ElementKlass(), Index: i}
	}
	arr.Set(i, v)
	b.bs.WriteRef(&arr.Slots()[i])
	return nil
}

// OopLoad reads slot i of arr. No load barriers: the read is plain and the
// strategy is not consulted.
func (b Barrier[D]) OopLoad(arr *heap.ObjArray, i int) heap.Ref {
	return arr.Get(i)
}
