// Contains the two-way data binding layer that sits on top of a dom.Document: reentrancy-guarded
// split bindings between a combined value and its parts, plus otto-backed computed values and the
// script shim that exposes the document to JS for dynamic member access.
package binding

// The per-instance reentrancy counter that wraps any two-way-bound pair of derived values.
//
// When component A's change handler writes to component B, B's handler would write straight back to
// A and loop forever. The guard pattern breaks the loop: increment before cascading writes,
// decrement after, and skip the cascade body entirely while the counter is non-zero. Plain int, no
// locks: the store is single-threaded by contract.
type Guard struct {
	changing int
}

// Runs f unless the guard is already held, in which case the cascade body is skipped entirely.
func (g *Guard) Do(f func()) {
	if g.changing > 0 {
		return
	}
	g.changing++
	defer func() { g.changing-- }()
	f()
}

// Returns whether a cascade is currently in flight.
func (g *Guard) Held() bool {
	return g.changing > 0
}
