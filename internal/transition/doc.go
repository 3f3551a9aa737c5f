// Package transition converts ordinary functions into runnable transitions
// and composes them.
//
// A transition wraps a function together with two sets derived from its
// signature: the facts it requires (parameters) and the facts it produces
// (results). The sets are computed once, at construction time, by reflecting
// over the function's type - not on every invocation.
//
// Signature rules:
//   - 0 to 8 parameters, each a fact type T or an optional *T; variadic
//     functions are rejected.
//   - 0 to 8 results, each a fact type T or an optional *T.
//   - A concrete parameter takes its fact from the store and contributes one
//     requirement; taking fails fatally when the fact is absent.
//   - An optional *T parameter receives nil when the fact is absent and
//     contributes no requirement.
//   - A concrete result is inserted into the store and contributes one
//     production; an optional *T result is inserted only when non-nil and
//     contributes no production.
//   - The same concrete fact type may not appear twice among the parameters
//     (DUPLICATE_REQUIREMENT) or twice among the results
//     (DUPLICATE_PRODUCTION). Optional shapes are exempt.
//
// Extraction and insertion run in declaration order, left to right.
//
// Three variants form a one-way conversion lattice:
//
//	Transition (pure, repeatable)
//	  -> TransitionMut (stateful, repeatable)
//	    -> TransitionOnce (single-use, spent after one run)
//
// AndThen chains two transitions of the same variant into one, validating
// that the second half's requirements survive the first half's consumption.
package transition
