package barrierset

import (
	"sync/atomic"

	"github.com/kolkov/gcbarrier/internal/gc/heap"
	"github.com/kolkov/gcbarrier/internal/gc/threads"
)

// Epsilon is the no-op barrier strategy.
//
// It performs no bookkeeping whatsoever: the raw copy primitive is a flat
// slot copy and every post-write notification is ignored. It also carries no
// stub assembler, which makes it the strategy that exercises the "stub
// initialization is a no-op" execution mode.
//
// The only state it keeps is an attach counter, so hosts can verify the
// thread-announcement protocol reached the strategy.
type Epsilon struct {
	attached atomic.Int64
}

// NewEpsilon creates the no-op strategy.
func NewEpsilon() *Epsilon {
	return &Epsilon{}
}

// Kind returns KindEpsilon.
func (e *Epsilon) Kind() Kind { return KindEpsilon }

// Name returns the diagnostic name.
func (e *Epsilon) Name() string { return "epsilon" }

// OnThreadAttach counts the announcement and otherwise ignores it.
func (e *Epsilon) OnThreadAttach(t *threads.Thread) {
	e.attached.Add(1)
}

// AttachedThreads returns how many threads have been announced.
func (e *Epsilon) AttachedThreads() int64 {
	return e.attached.Load()
}

// RawArrayCopy performs a flat bulk copy of the slot windows.
func (e *Epsilon) RawArrayCopy(dst, src []heap.Ref) {
	copy(dst, src)
}

// WriteRefArray is a no-op: epsilon keeps no remembered set.
func (e *Epsilon) WriteRefArray(dst []heap.Ref) {}

// WriteRef is a no-op.
func (e *Epsilon) WriteRef(slot *heap.Ref) {}

// Assembler returns nil: epsilon emits no compiled-code stubs.
func (e *Epsilon) Assembler() Assembler { return nil }
