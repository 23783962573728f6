package barrierset

import (
	"github.com/kolkov/gcbarrier/internal/gc/contract"
	"github.com/kolkov/gcbarrier/internal/gc/heap"
)

// Stub names emitted by strategy assemblers.
const (
	// StubOopArrayCopy is the unchecked bulk-copy sequence including the
	// strategy's post-write bookkeeping.
	StubOopArrayCopy = "oop_arraycopy"

	// StubOopArrayCopyUninit is the bulk-copy sequence for destinations
	// that are freshly allocated and need no post-write bookkeeping.
	StubOopArrayCopyUninit = "oop_arraycopy_uninit"
)

// CopyStub is one emitted inline copy sequence: a fused raw copy plus
// whatever bookkeeping the strategy bakes into its compiled-code path.
type CopyStub func(dst, src []heap.Ref)

// StubTable holds the inline barrier sequences emitted by a strategy's
// assembler during stub initialization.
//
// The table is built once, single-threaded, before any compiled code using
// barriers executes; afterwards it is read-only and safe for unsynchronized
// concurrent lookups.
type StubTable struct {
	stubs map[string]CopyStub
}

// NewStubTable creates an empty stub table.
func NewStubTable() *StubTable {
	return &StubTable{stubs: make(map[string]CopyStub)}
}

// Register adds an emitted stub under its name. Emitting the same stub twice
// is a contract violation: stub initialization runs exactly once.
func (t *StubTable) Register(name string, stub CopyStub) {
	if _, ok := t.stubs[name]; ok {
		contract.Throwf("stub %q emitted twice", name)
	}
	t.stubs[name] = stub
}

// Lookup returns the stub emitted under name, or nil.
func (t *StubTable) Lookup(name string) CopyStub {
	return t.stubs[name]
}

// Len returns the number of emitted stubs.
func (t *StubTable) Len() int {
	return len(t.stubs)
}
