package barrier

import (
	"github.com/kolkov/gcbarrier/internal/gc/access"
	"github.com/kolkov/gcbarrier/internal/gc/barrierset"
	"github.com/kolkov/gcbarrier/internal/gc/heap"
	"github.com/kolkov/gcbarrier/internal/gc/klass"
	"github.com/kolkov/gcbarrier/internal/gc/threads"
)

// Re-exported core types. The implementation lives in internal packages;
// these aliases are the supported surface.
type (
	// Set is a pluggable barrier strategy.
	Set = barrierset.BarrierSet

	// Kind identifies a strategy family.
	Kind = barrierset.Kind

	// Thread is one mutator thread as seen by the runtime.
	Thread = threads.Thread

	// Klass is a read-only runtime type descriptor.
	Klass = klass.Klass

	// Object is a heap object carrying its runtime Klass.
	Object = heap.Object

	// Ref is a nullable heap reference.
	Ref = heap.Ref

	// ObjArray is a reference array with a declared element type.
	ObjArray = heap.ObjArray

	// ArrayView describes one side of a bulk copy.
	ArrayView = heap.ArrayView

	// Decorators is the compile-time flag set of one access call site.
	Decorators = access.Decorators

	// Unchecked requests no per-element checking.
	Unchecked = access.Unchecked

	// NullChecked forbids null elements.
	NullChecked = access.NullChecked

	// CheckCast requires the runtime cast check.
	CheckCast = access.CastChecked

	// FullyChecked requires the cast check and forbids nulls.
	FullyChecked = access.FullyChecked

	// NullStoreError reports a forbidden null; recoverable.
	NullStoreError = access.NullStoreError

	// ArrayStoreError reports a non-assignable element or array;
	// recoverable.
	ArrayStoreError = access.ArrayStoreError
)

// Strategy kinds.
const (
	KindEpsilon   = barrierset.KindEpsilon
	KindCardTable = barrierset.KindCardTable
)

// NewEpsilon creates the no-op barrier strategy.
func NewEpsilon() *barrierset.Epsilon { return barrierset.NewEpsilon() }

// NewCardTable creates the card-marking barrier strategy.
func NewCardTable() *barrierset.CardTable { return barrierset.NewCardTable() }

// NewKlass creates a type descriptor. Pass a nil super for the hierarchy
// root.
func NewKlass(name string, super *Klass) *Klass { return klass.New(name, super) }

// NewObject allocates an object of the given runtime type.
func NewObject(k *Klass) *Object { return heap.NewObject(k) }

// NewObjArray allocates a reference array with the given declared element
// type. All slots start null.
func NewObjArray(element *Klass, length int) *ObjArray {
	return heap.NewObjArray(element, length)
}

// ViewOf builds an array view starting at slot index from.
func ViewOf(a *ObjArray, from int) ArrayView { return heap.ViewOf(a, from) }

// Runtime owns the barrier runtime state for one process: the thread
// registry and the single-assignment strategy holder.
//
// It is constructed explicitly at startup and threaded by reference into
// whatever consumes it; there is no package-global instance.
type Runtime struct {
	threads  *threads.Registry
	barriers *barrierset.Registry
}

// NewRuntime creates an empty runtime. Nothing works until a strategy is
// installed and the bootstrap thread is bound.
func NewRuntime() *Runtime {
	tr := threads.NewRegistry()
	return &Runtime{
		threads:  tr,
		barriers: barrierset.NewRegistry(tr),
	}
}

// Install installs the barrier strategy. Step 1 of the startup protocol;
// a second call is a fatal contract violation.
func (rt *Runtime) Install(bs Set) {
	rt.barriers.Install(bs)
}

// BindBootstrap announces the bootstrap thread to the installed strategy.
// Step 2 of the startup protocol; announcing it twice is fatal.
func (rt *Runtime) BindBootstrap(t *Thread) {
	rt.barriers.BindBootstrap(t)
}

// Initialize combines Install and BindBootstrap: it installs bs, creates
// the bootstrap thread under the given name, announces it, and returns it.
func (rt *Runtime) Initialize(bs Set, bootstrapName string) *Thread {
	boot := threads.NewBootstrap(bootstrapName)
	rt.barriers.Initialize(bs, boot)
	return boot
}

// StubsInit runs the one-shot stub-initialization hook against the active
// strategy. Step 3 of the startup protocol.
func (rt *Runtime) StubsInit() {
	rt.barriers.StubsInit()
}

// Active returns the installed strategy. Safe for unsynchronized concurrent
// use once startup completed; never called before Install.
func (rt *Runtime) Active() Set {
	return rt.barriers.Active()
}

// AttachThread announces an ordinary thread during its startup and tracks
// it. Exactly once per thread; re-announcement is fatal.
func (rt *Runtime) AttachThread(t *Thread) {
	rt.barriers.AttachThread(t)
}

// StartThread creates an ordinary thread under the given name, runs its
// attach announcement, and returns it ready for barrier-mediated access.
func (rt *Runtime) StartThread(name string) *Thread {
	t := threads.New(name)
	rt.barriers.AttachThread(t)
	return t
}

// Threads returns the thread registry, for host diagnostics.
func (rt *Runtime) Threads() *threads.Registry {
	return rt.threads
}

// Copy performs a decorator-specialized bulk reference copy of n slots
// through the active strategy.
//
// The decorator set is a type parameter so that selection happens at the
// call site, once per call: an [Unchecked] copy compiles to the flat bulk
// path with no per-element branch. Checked variants fail fast with a
// committed prefix; see the package documentation.
func Copy[D Decorators](rt *Runtime, src, dst ArrayView, n int) error {
	return access.For[D](rt.Active()).OopArrayCopy(src, dst, n)
}

// Store performs a decorator-specialized single-reference store into slot i
// of arr through the active strategy.
func Store[D Decorators](rt *Runtime, arr *ObjArray, i int, v Ref) error {
	return access.For[D](rt.Active()).OopStore(arr, i, v)
}

// Load reads slot i of arr. Loads are plain: no load barriers.
func Load(rt *Runtime, arr *ObjArray, i int) Ref {
	return access.For[Unchecked](rt.Active()).OopLoad(arr, i)
}
