package barrierset

import (
	"testing"
	"unsafe"

	"github.com/kolkov/gcbarrier/internal/gc/heap"
	"github.com/kolkov/gcbarrier/internal/gc/klass"
)

func newRefs(n int) []heap.Ref {
	object := klass.New("java.lang.Object", nil)
	refs := make([]heap.Ref, n)
	for i := range refs {
		refs[i] = heap.NewObject(object)
	}
	return refs
}

// TestRawArrayCopyMovesSlots tests that the raw primitive is a flat copy
// with no card side effects of its own.
func TestRawArrayCopyMovesSlots(t *testing.T) {
	ct := NewCardTable()
	src := newRefs(16)
	dst := make([]heap.Ref, 16)

	ct.RawArrayCopy(dst, src)

	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("dst[%d] != src[%d] after raw copy", i, i)
		}
	}
	if got := ct.DirtyCards(); got != 0 {
		t.Errorf("DirtyCards() = %d after raw copy, want 0 (dirtying is post-copy)", got)
	}
}

// TestWriteRefArrayDirtiesCoveringCards tests that post-copy bookkeeping
// dirties every card the committed range touches and nothing else.
func TestWriteRefArrayDirtiesCoveringCards(t *testing.T) {
	ct := NewCardTable()
	// More slots than fit one 512-byte card (64 slots at 8 bytes).
	dst := make([]heap.Ref, 200)

	ct.WriteRefArray(dst)

	first := uintptr(unsafe.Pointer(&dst[0]))
	last := uintptr(unsafe.Pointer(&dst[len(dst)-1]))
	wantCards := int(CardOf(last)-CardOf(first)) + 1
	if got := ct.DirtyCards(); got != wantCards {
		t.Errorf("DirtyCards() = %d, want %d", got, wantCards)
	}
	if !ct.IsDirty(first) || !ct.IsDirty(last) {
		t.Error("boundary slots not covered by dirty cards")
	}
}

// TestWriteRefArrayEmptyRange tests that an empty committed range (n=0, or a
// checked copy failing at index 0) dirties nothing.
func TestWriteRefArrayEmptyRange(t *testing.T) {
	ct := NewCardTable()
	ct.WriteRefArray(nil)
	ct.WriteRefArray([]heap.Ref{})
	if got := ct.DirtyCards(); got != 0 {
		t.Errorf("DirtyCards() = %d for empty ranges, want 0", got)
	}
}

// TestWriteRefDirtiesSingleCard tests single-store bookkeeping.
func TestWriteRefDirtiesSingleCard(t *testing.T) {
	ct := NewCardTable()
	slots := make([]heap.Ref, 4)

	ct.WriteRef(&slots[2])

	addr := uintptr(unsafe.Pointer(&slots[2]))
	if !ct.IsDirty(addr) {
		t.Error("card covering stored slot not dirty")
	}
	if got := ct.DirtyCards(); got != 1 {
		t.Errorf("DirtyCards() = %d, want 1", got)
	}

	ct.Clean()
	if ct.IsDirty(addr) {
		t.Error("card still dirty after Clean")
	}
}

// TestAssemblerEmitsFusedStubs tests the emitted compiled-code sequences:
// the standard stub fuses copy and card dirtying, the uninit variant copies
// only.
func TestAssemblerEmitsFusedStubs(t *testing.T) {
	ct := NewCardTable()
	ct.Assembler().BarrierStubsInit()

	stubs := ct.Stubs()
	if stubs == nil || stubs.Len() != 2 {
		t.Fatalf("expected 2 emitted stubs, got %v", stubs)
	}

	src := newRefs(8)

	t.Run(StubOopArrayCopy, func(t *testing.T) {
		dst := make([]heap.Ref, 8)
		stubs.Lookup(StubOopArrayCopy)(dst, src)
		if dst[7] != src[7] {
			t.Error("stub did not copy slots")
		}
		if !ct.IsDirty(uintptr(unsafe.Pointer(&dst[0]))) {
			t.Error("stub did not dirty destination cards")
		}
	})

	t.Run(StubOopArrayCopyUninit, func(t *testing.T) {
		ct.Clean()
		dst := make([]heap.Ref, 8)
		stubs.Lookup(StubOopArrayCopyUninit)(dst, src)
		if dst[0] != src[0] {
			t.Error("uninit stub did not copy slots")
		}
		if got := ct.DirtyCards(); got != 0 {
			t.Errorf("uninit stub dirtied %d cards, want 0", got)
		}
	})
}

// TestStubTableDoubleRegisterFatal tests the exactly-once emission contract.
func TestStubTableDoubleRegisterFatal(t *testing.T) {
	table := NewStubTable()
	table.Register("s", func(dst, src []heap.Ref) {})
	expectViolation(t, func() { table.Register("s", func(dst, src []heap.Ref) {}) })
}
