// Package barrier provides a Pure-Go heap-access barrier runtime for
// managed-memory hosts.
//
// The package is the access layer a garbage-collected runtime routes every
// heap reference mutation through: a pluggable barrier strategy installed
// once at startup, a dispatcher specialized per call site by compile-time
// decorators, and the checked bulk array-copy algorithm every collector
// shares.
//
// # Quick Start
//
//	rt := barrier.NewRuntime()
//	boot := rt.Initialize(barrier.NewCardTable(), "main")
//	rt.StubsInit()
//
//	worker := rt.StartThread("worker-1")
//	_ = worker
//
//	err := barrier.Copy[barrier.CheckCast](rt, srcView, dstView, n)
//
// # Startup Protocol
//
// Startup ordering is deliberate and visible:
//
//  1. [Runtime.Install] installs the barrier strategy. Exactly once; a
//     second install halts the process (contract violation).
//  2. [Runtime.BindBootstrap] announces the bootstrap thread — the first
//     thread of the process, which exists before the thread registry and so
//     cannot take the normal attach path.
//  3. [Runtime.StubsInit] lets the strategy emit its specialized inline
//     barrier sequences for compiled code, once, or does nothing for
//     strategies without a stub assembler.
//
// [Runtime.Initialize] combines steps 1 and 2 for hosts that need nothing
// between them. Every later thread must pass through [Runtime.StartThread]
// (or [Runtime.AttachThread]) exactly once, during its own startup, before
// performing any barrier-mediated heap access.
//
// # Checked Copies
//
// A copy call site fixes its decorator set as a type parameter:
//
//   - [Unchecked]: flat bulk copy, no per-element branch. For call sites
//     whose safety was proven upstream (the covariant-array case).
//   - [NullChecked]: nulls forbidden.
//   - [CastChecked]: per-element runtime cast check against the
//     destination's declared element type.
//   - [FullyChecked]: both.
//
// Checked copies fail fast: elements are processed in strictly increasing
// index order, the first failing element stops the copy, and the destination
// then holds the committed prefix with the suffix untouched. The two
// recoverable failure kinds, [NullStoreError] and [ArrayStoreError], are
// ordinary errors scoped to the one call; contract violations (double
// install, double thread announcement) halt instead.
package barrier
