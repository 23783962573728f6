// Package contract implements the fatal diagnostics channel of the barrier
// runtime.
//
// The runtime distinguishes two failure channels. Data-dependent failures
// (a null where nulls are forbidden, an element that does not fit the
// destination array) are ordinary errors returned to the caller. Contract
// violations — installing the barrier set twice, announcing a thread twice —
// indicate a startup-ordering defect in the host runtime. They are not
// recoverable and must halt immediately instead of propagating through the
// error channel.
//
// A violation is raised as a panic carrying *Violation. Runtime code never
// recovers it; tests intercept it to assert that a misuse was caught.
package contract

import "fmt"

// Violation describes a fatal runtime-contract violation.
//
// It implements error so that intercepting tests can format it, but it is
// never returned as an error value by any runtime API.
type Violation struct {
	// Reason is the diagnostic message describing the broken contract.
	Reason string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return "gcbarrier: contract violation: " + v.Reason
}

// Throwf raises a fatal contract violation with a formatted diagnostic.
//
// It never returns. The panic value is *Violation.
func Throwf(format string, args ...any) {
	panic(&Violation{Reason: fmt.Sprintf(format, args...)})
}
