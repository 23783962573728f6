// Package barrierset implements the pluggable barrier-strategy layer of the
// runtime.
//
// A BarrierSet is the one object through which every heap reference mutation
// is allowed to pass. Collectors plug in their own strategy; the rest of the
// runtime sees only this interface plus the process-wide Registry that holds
// the single installed instance.
//
// Startup ordering is the delicate part and is modelled as an explicit
// call sequence:
//
//	reg := barrierset.NewRegistry(threadRegistry)
//	reg.Install(barrierset.NewCardTable())   // step 1: install the strategy
//	reg.BindBootstrap(bootstrapThread)       // step 2: announce the first thread
//	reg.StubsInit()                          // step 3: emit compiled-code stubs
//
// The bootstrap thread exists before the thread registry tracks anything,
// which is why it is announced by BindBootstrap rather than by the normal
// AttachThread path every later thread uses.
package barrierset

import (
	"github.com/kolkov/gcbarrier/internal/gc/heap"
	"github.com/kolkov/gcbarrier/internal/gc/threads"
)

// Kind identifies a barrier strategy family.
type Kind uint8

const (
	// KindEpsilon is the no-op strategy: no bookkeeping of any sort.
	KindEpsilon Kind = iota

	// KindCardTable is the card-marking strategy: post-write bookkeeping
	// dirties the cards covering mutated slots.
	KindCardTable
)

// String returns the strategy family name.
func (k Kind) String() string {
	switch k {
	case KindEpsilon:
		return "epsilon"
	case KindCardTable:
		return "cardtable"
	default:
		return "unknown"
	}
}

// BarrierSet is a collector's barrier strategy.
//
// Exactly one instance exists per process, installed once during startup and
// never replaced. The access dispatcher holds it by reference and routes
// every bulk copy and reference store through it.
//
// Strategies that keep shared per-thread or per-card bookkeeping own their
// own synchronization; the dispatcher adds none.
type BarrierSet interface {
	// Kind returns the strategy family tag.
	Kind() Kind

	// Name returns the strategy's diagnostic name.
	Name() string

	// OnThreadAttach announces a thread to the strategy. Called exactly
	// once per thread during that thread's startup, before the thread
	// performs any barrier-mediated heap access.
	OnThreadAttach(t *threads.Thread)

	// RawArrayCopy is the strategy's raw copy primitive: a flat bulk
	// reference copy over two slot windows of equal length. No per-element
	// checking of any kind — checking, when required, is layered on top by
	// the access dispatcher.
	RawArrayCopy(dst, src []heap.Ref)

	// WriteRefArray is the post-copy notification covering exactly the
	// destination slots that were committed. After a failed checked copy
	// this is the committed prefix, not the requested range.
	WriteRefArray(dst []heap.Ref)

	// WriteRef is the post-write notification for a single reference
	// store through the dispatcher.
	WriteRef(slot *heap.Ref)

	// Assembler returns the strategy's stub generator, or nil when the
	// execution mode has none (stub initialization is then a no-op).
	Assembler() Assembler
}

// Assembler is the optional stub-generator capability of a strategy.
//
// BarrierStubsInit is invoked exactly once during startup, after the
// strategy is installed and before any compiled code using barriers runs.
// It emits the strategy's specialized inline barrier sequences for later
// use by compiled code.
type Assembler interface {
	BarrierStubsInit()
}
