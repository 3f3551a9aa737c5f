package transition

import (
	"fmt"
	"sync/atomic"

	"github.com/roach88/sems/internal/fact"
)

// Runnable is implemented by all three transition variants. It is the
// boundary the state machine and the dictionary work against: the derived
// sets for requirement checking, and the mutable-execute primitive.
type Runnable interface {
	// Requires returns the required fact identities, sorted by name.
	Requires() []fact.ID

	// Produces returns the produced fact identities, sorted by name.
	Produces() []fact.ID

	// Apply executes the transition against the store without any
	// requirement check. Callers assert that the requirements are met;
	// a missing fact fails fatally.
	Apply(*fact.Store)
}

// Transition is a pure, repeatable transition: its procedure may run any
// number of times and does not mutate captured state.
//
// Transitions are created with New and are immutable once built.
type Transition struct {
	proc     func(*fact.Store)
	requires idSet
	produces idSet
}

// TransitionMut is a stateful, repeatable transition: its procedure may
// mutate its own captured environment across invocations.
type TransitionMut struct {
	proc     func(*fact.Store)
	requires idSet
	produces idSet
}

// TransitionOnce is a single-use transition. After one Apply it is spent;
// a second Apply panics. Go cannot consume a value the way a moved closure
// is consumed, so the one-shot discipline is enforced with an atomic flag.
type TransitionOnce struct {
	spent    atomic.Bool
	proc     func(*fact.Store)
	requires idSet
	produces idSet
}

// New converts a function into a pure Transition.
//
// The function's shape is validated here, once: results first (duplicate
// production), then parameters (duplicate requirement). The wrapped
// procedure extracts parameters left to right, invokes fn, and inserts
// results left to right.
//
// fn must be side-effect free with respect to its own closure state; use
// NewMut for functions that capture and mutate state.
func New(fn any) (*Transition, error) {
	b, err := bindFunc(fn)
	if err != nil {
		return nil, err
	}
	return &Transition{proc: b.proc, requires: b.requires, produces: b.produces}, nil
}

// NewMut converts a function into a TransitionMut.
func NewMut(fn any) (*TransitionMut, error) {
	b, err := bindFunc(fn)
	if err != nil {
		return nil, err
	}
	return &TransitionMut{proc: b.proc, requires: b.requires, produces: b.produces}, nil
}

// NewOnce converts a function into a TransitionOnce.
func NewOnce(fn any) (*TransitionOnce, error) {
	b, err := bindFunc(fn)
	if err != nil {
		return nil, err
	}
	return &TransitionOnce{proc: b.proc, requires: b.requires, produces: b.produces}, nil
}

// Must unwraps a transition constructor result, panicking on error.
// Intended for statically known signatures, typically at program setup.
func Must[T Runnable](t T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("transition: %v", err))
	}
	return t
}

// Requires returns the required fact identities, sorted by name.
func (t *Transition) Requires() []fact.ID { return t.requires.sorted() }

// Produces returns the produced fact identities, sorted by name.
func (t *Transition) Produces() []fact.ID { return t.produces.sorted() }

// Apply executes the transition against the store. See Runnable.
func (t *Transition) Apply(s *fact.Store) { t.proc(s) }

// Mut converts the pure transition into a stateful one. The conversion is
// one-directional: there is no way back up the lattice.
func (t *Transition) Mut() *TransitionMut {
	return &TransitionMut{proc: t.proc, requires: t.requires, produces: t.produces}
}

// Once converts the pure transition into a single-use one.
func (t *Transition) Once() *TransitionOnce {
	return &TransitionOnce{proc: t.proc, requires: t.requires, produces: t.produces}
}

// Requires returns the required fact identities, sorted by name.
func (t *TransitionMut) Requires() []fact.ID { return t.requires.sorted() }

// Produces returns the produced fact identities, sorted by name.
func (t *TransitionMut) Produces() []fact.ID { return t.produces.sorted() }

// Apply executes the transition against the store. See Runnable.
func (t *TransitionMut) Apply(s *fact.Store) { t.proc(s) }

// Once converts the stateful transition into a single-use one. The caller
// must not run the original afterwards; the transition's closure state now
// belongs to the returned TransitionOnce.
func (t *TransitionMut) Once() *TransitionOnce {
	return &TransitionOnce{proc: t.proc, requires: t.requires, produces: t.produces}
}

// Requires returns the required fact identities, sorted by name.
func (t *TransitionOnce) Requires() []fact.ID { return t.requires.sorted() }

// Produces returns the produced fact identities, sorted by name.
func (t *TransitionOnce) Produces() []fact.ID { return t.produces.sorted() }

// Apply executes the transition and marks it spent.
// Panics if the transition has already run.
func (t *TransitionOnce) Apply(s *fact.Store) {
	t.take()(s)
}

// Spent reports whether the transition has already run (or been consumed
// by composition).
func (t *TransitionOnce) Spent() bool {
	return t.spent.Load()
}

// take claims the procedure, marking the transition spent exactly once.
func (t *TransitionOnce) take() func(*fact.Store) {
	if t.spent.Swap(true) {
		panic("transition: single-use transition already run")
	}
	return t.proc
}

func (t *Transition) String() string {
	return fmt.Sprintf("Transition(%d->%d)", len(t.requires), len(t.produces))
}

func (t *TransitionMut) String() string {
	return fmt.Sprintf("TransitionMut(%d->%d)", len(t.requires), len(t.produces))
}

func (t *TransitionOnce) String() string {
	return fmt.Sprintf("TransitionOnce(%d->%d)", len(t.requires), len(t.produces))
}
