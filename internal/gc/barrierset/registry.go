package barrierset

import (
	"github.com/kolkov/gcbarrier/internal/gc/contract"
	"github.com/kolkov/gcbarrier/internal/gc/threads"
)

// Registry is the process-wide single-assignment holder of the active
// barrier strategy.
//
// It is constructed explicitly at startup and threaded by reference into the
// components that consume it, rather than living in package-global state;
// "exactly one instance, never replaced" is enforced by the single Install
// and by ownership of the Registry itself.
//
// Concurrency: Install, BindBootstrap and StubsInit run single-threaded,
// strictly before any thread other than the bootstrap thread exists. After
// installation the active field is never written again, so Active is a safe
// unsynchronized read from any thread: the installing write happens-before
// every other thread's start.
type Registry struct {
	threads *threads.Registry
	active  BarrierSet

	bootstrapBound bool
	stubsDone      bool
}

// NewRegistry creates an empty registry backed by the given thread registry.
func NewRegistry(tr *threads.Registry) *Registry {
	return &Registry{threads: tr}
}

// Install installs the barrier strategy. A second call is a fatal contract
// violation: the strategy is single-assignment for the process lifetime.
//
// Install must be followed by BindBootstrap before any heap mutation; the
// two-step sequence makes the bootstrap-thread special case a visible part
// of the startup protocol.
func (r *Registry) Install(bs BarrierSet) {
	if r.active != nil {
		contract.Throwf("barrier set already installed (%s), refusing to replace with %s",
			r.active.Name(), bs.Name())
	}
	if bs == nil {
		contract.Throwf("nil barrier set installed")
	}
	r.active = bs
}

// BindBootstrap announces the bootstrap thread to the installed strategy.
//
// The bootstrap thread predates the thread registry: the normal attach path
// cannot have run for it, so it must not be tracked yet. Announcing it a
// second time is a fatal contract violation, caught through the thread's own
// announced flag since the bootstrap thread never joins the tracked list
// through this path.
func (r *Registry) BindBootstrap(t *threads.Thread) {
	if r.active == nil {
		contract.Throwf("bootstrap thread announced before barrier set install")
	}
	if !t.IsBootstrap() {
		contract.Throwf("thread %q is not the bootstrap thread", t.Name())
	}
	if r.threads.Tracked(t) {
		contract.Throwf("bootstrap thread %q already on the thread list", t.Name())
	}
	if r.bootstrapBound || !t.MarkAnnounced() {
		contract.Throwf("bootstrap thread %q announced twice", t.Name())
	}
	r.bootstrapBound = true
	r.active.OnThreadAttach(t)
}

// Initialize is the combined startup entry point: Install followed by
// BindBootstrap. Most hosts call this once; the two-step methods exist for
// hosts that need to interleave other setup between the steps.
func (r *Registry) Initialize(bs BarrierSet, bootstrap *threads.Thread) {
	r.Install(bs)
	r.BindBootstrap(bootstrap)
}

// Active returns the installed strategy.
//
// Never called before Install per the startup contract; a nil strategy here
// means the host skipped initialization entirely, which is fatal.
func (r *Registry) Active() BarrierSet {
	if r.active == nil {
		contract.Throwf("barrier set queried before install")
	}
	return r.active
}

// Installed reports whether a strategy has been installed. Used by startup
// diagnostics only; runtime paths rely on Active's contract instead.
func (r *Registry) Installed() bool {
	return r.active != nil
}

// AttachThread announces an ordinary thread to the strategy and tracks it.
//
// Every thread except the bootstrap thread must pass through here exactly
// once, during its own startup, before performing any barrier-mediated heap
// access. Re-announcing a thread — or routing the bootstrap thread through
// this path — is a fatal contract violation.
func (r *Registry) AttachThread(t *threads.Thread) {
	if r.active == nil {
		contract.Throwf("thread %q attached before barrier set install", t.Name())
	}
	if t.IsBootstrap() {
		contract.Throwf("bootstrap thread %q routed through the ordinary attach path", t.Name())
	}
	if !t.MarkAnnounced() {
		contract.Throwf("thread %q (id %d) announced twice", t.Name(), t.ID())
	}
	r.active.OnThreadAttach(t)
	r.threads.Add(t)
}

// StubsInit runs the one-shot stub-initialization hook.
//
// If the installed strategy carries a stub assembler, it is asked to emit
// its specialized inline barrier sequences for compiled code; execution
// modes without an assembler make this a no-op. Runs once, single-threaded,
// before any compiled code using barriers executes.
func (r *Registry) StubsInit() {
	if r.active == nil {
		contract.Throwf("barrier stubs initialized before barrier set install")
	}
	if r.stubsDone {
		contract.Throwf("barrier stubs initialized twice")
	}
	r.stubsDone = true
	if asm := r.active.Assembler(); asm != nil {
		asm.BarrierStubsInit()
	}
}
