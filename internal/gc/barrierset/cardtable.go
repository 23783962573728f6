package barrierset

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/kolkov/gcbarrier/internal/gc/heap"
	"github.com/kolkov/gcbarrier/internal/gc/threads"
)

// CardShift is the log2 of the card size in bytes: 512-byte cards, the
// classic card-marking granule.
const CardShift = 9

// CardOf returns the card index covering the given slot address.
func CardOf(addr uintptr) uintptr {
	return addr >> CardShift
}

// CardTable is the card-marking barrier strategy.
//
// Its post-write bookkeeping dirties the card covering every mutated slot,
// so a later collection can limit its scan to dirty cards. The table is kept
// sparse — a set of dirty card indices — since this runtime does not own a
// contiguous heap to back a flat byte map with.
//
// The dirty set is shared mutable state; the strategy owns its own mutex for
// it, per the concurrency contract (the dispatcher adds no locking).
//
// CardTable carries a stub assembler: stub initialization pre-builds the
// inline copy sequences compiled code uses for unchecked copies.
type CardTable struct {
	mu    sync.Mutex
	dirty map[uintptr]struct{}

	attached atomic.Int64
	stubs    *StubTable
}

// NewCardTable creates a card-marking strategy with a clean table.
func NewCardTable() *CardTable {
	return &CardTable{dirty: make(map[uintptr]struct{})}
}

// Kind returns KindCardTable.
func (c *CardTable) Kind() Kind { return KindCardTable }

// Name returns the diagnostic name.
func (c *CardTable) Name() string { return "cardtable" }

// OnThreadAttach counts the announcement. A full collector would size
// per-thread dirty-card queues here.
func (c *CardTable) OnThreadAttach(t *threads.Thread) {
	c.attached.Add(1)
}

// AttachedThreads returns how many threads have been announced.
func (c *CardTable) AttachedThreads() int64 {
	return c.attached.Load()
}

// RawArrayCopy performs the flat bulk copy. The raw primitive moves slots
// only; card dirtying happens in the post-copy notification so that it
// covers exactly the committed range of a checked copy.
func (c *CardTable) RawArrayCopy(dst, src []heap.Ref) {
	copy(dst, src)
}

// WriteRefArray dirties every card covering the committed destination slots.
func (c *CardTable) WriteRefArray(dst []heap.Ref) {
	if len(dst) == 0 {
		return
	}
	first := CardOf(uintptr(unsafe.Pointer(&dst[0])))
	last := CardOf(uintptr(unsafe.Pointer(&dst[len(dst)-1])))
	c.mu.Lock()
	for card := first; card <= last; card++ {
		c.dirty[card] = struct{}{}
	}
	c.mu.Unlock()
}

// WriteRef dirties the card covering a single stored slot.
func (c *CardTable) WriteRef(slot *heap.Ref) {
	card := CardOf(uintptr(unsafe.Pointer(slot)))
	c.mu.Lock()
	c.dirty[card] = struct{}{}
	c.mu.Unlock()
}

// IsDirty reports whether the card covering addr has been dirtied.
func (c *CardTable) IsDirty(addr uintptr) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.dirty[CardOf(addr)]
	return ok
}

// DirtyCards returns the number of dirty cards.
func (c *CardTable) DirtyCards() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirty)
}

// Clean clears the table, as a collection cycle would after scanning.
func (c *CardTable) Clean() {
	c.mu.Lock()
	c.dirty = make(map[uintptr]struct{})
	c.mu.Unlock()
}

// Stubs returns the emitted stub table, or nil before stub initialization.
func (c *CardTable) Stubs() *StubTable {
	return c.stubs
}

// Assembler returns the card-table stub generator.
func (c *CardTable) Assembler() Assembler {
	return &cardTableAssembler{ct: c}
}

// cardTableAssembler emits the card-table inline barrier sequences.
type cardTableAssembler struct {
	ct *CardTable
}

// BarrierStubsInit builds the stub table once. The emitted sequences fuse
// the raw copy with the post-write card dirtying, which is exactly what a
// code generator would inline at an unchecked copy site.
func (a *cardTableAssembler) BarrierStubsInit() {
	table := NewStubTable()
	ct := a.ct
	table.Register(StubOopArrayCopy, func(dst, src []heap.Ref) {
		ct.RawArrayCopy(dst, src)
		ct.WriteRefArray(dst)
	})
	table.Register(StubOopArrayCopyUninit, func(dst, src []heap.Ref) {
		// Destination freshly allocated: nothing old to remember, the
		// copy alone suffices until the first collection sees it.
		ct.RawArrayCopy(dst, src)
	})
	ct.stubs = table
}
