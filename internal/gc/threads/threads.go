// Package threads implements the thread registry collaborator.
//
// The registry answers exactly two questions for the barrier runtime: "is
// this thread tracked yet" and "track this thread". The subtlety it exists
// for is startup ordering: the bootstrap thread is constructed before the
// registry tracks anything, so the barrier-set install path asserts the
// bootstrap thread is NOT yet tracked and announces it specially, while every
// later thread is tracked and announced through the normal attach path.
//
// Attach calls from distinct threads are independent; the registry's shared
// list is guarded by its own mutex.
package threads

import (
	"sync"
	"sync/atomic"

	"github.com/kolkov/gcbarrier/internal/gc/contract"
)

// threadIDs allocates process-unique thread identifiers.
var threadIDs atomic.Uint64

// Thread is one mutator thread as seen by the barrier runtime.
//
// The announced flag records whether the thread has been presented to the
// active barrier set; it is what makes a second announcement detectable even
// for the bootstrap thread, which is announced before it is tracked.
type Thread struct {
	id        uint64
	name      string
	bootstrap bool
	announced atomic.Bool
}

// New creates an ordinary (non-bootstrap) thread.
func New(name string) *Thread {
	return &Thread{id: threadIDs.Add(1), name: name}
}

// NewBootstrap creates the bootstrap thread — the first thread of the
// process, which exists before the thread registry does.
func NewBootstrap(name string) *Thread {
	return &Thread{id: threadIDs.Add(1), name: name, bootstrap: true}
}

// ID returns the process-unique thread identifier.
func (t *Thread) ID() uint64 {
	return t.id
}

// Name returns the thread's diagnostic name.
func (t *Thread) Name() string {
	return t.name
}

// IsBootstrap reports whether this is the bootstrap thread.
func (t *Thread) IsBootstrap() bool {
	return t.bootstrap
}

// MarkAnnounced records that the thread has been announced to the barrier
// set. Returns false if it had already been announced.
func (t *Thread) MarkAnnounced() bool {
	return t.announced.CompareAndSwap(false, true)
}

// Announced reports whether the thread has been announced to the barrier set.
func (t *Thread) Announced() bool {
	return t.announced.Load()
}

// Registry is the shared list of tracked threads.
type Registry struct {
	mu      sync.Mutex
	tracked map[uint64]*Thread
}

// NewRegistry creates an empty thread registry.
func NewRegistry() *Registry {
	return &Registry{tracked: make(map[uint64]*Thread)}
}

// Tracked reports whether t is on the thread list.
func (r *Registry) Tracked(t *Thread) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tracked[t.id]
	return ok
}

// Add puts t on the thread list. Adding a thread twice is a contract
// violation: it means the host runtime ran a thread's startup path twice.
func (r *Registry) Add(t *Thread) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tracked[t.id]; ok {
		contract.Throwf("thread %q (id %d) already on the thread list", t.name, t.id)
	}
	r.tracked[t.id] = t
}

// Len returns the number of tracked threads.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tracked)
}
