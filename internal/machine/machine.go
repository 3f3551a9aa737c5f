// Package machine orchestrates transitions against a fact store.
//
// The machine has no state of its own beyond the store's contents: it is
// stateless orchestration logic over a stateful store. Run checks that
// every required fact is present before executing; RunUnchecked trades that
// guard for a check-free hot path and relies on the store's fatal
// missing-fact behavior instead.
//
// A Machine exclusively owns its store. Execution is single-threaded,
// synchronous, and non-reentrant; callers must not share one Machine across
// goroutines without serializing access themselves, since
// check-requirements-then-consume must be atomic with respect to other
// transitions touching overlapping facts.
package machine

import (
	"log/slog"

	"github.com/roach88/sems/internal/fact"
	"github.com/roach88/sems/internal/transition"
)

// Machine runs transitions against its fact store after checking their
// requirements.
//
// Each machine carries a run token for log correlation: every Run logs with
// the same token, so the steps of one machine's lifetime can be grouped in
// aggregated logs.
type Machine struct {
	store *fact.Store
	token string
}

// Option configures a Machine.
type Option func(*machineConfig)

type machineConfig struct {
	gen TokenGenerator
}

// WithTokenGenerator overrides the run token source.
// Tests use FixedGenerator for deterministic tokens.
func WithTokenGenerator(gen TokenGenerator) Option {
	return func(c *machineConfig) {
		c.gen = gen
	}
}

// New creates a machine with an empty store.
func New(opts ...Option) *Machine {
	cfg := machineConfig{gen: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Machine{
		store: fact.NewStore(),
		token: cfg.gen.Generate(),
	}
}

// Token returns the machine's run token.
func (m *Machine) Token() string {
	return m.token
}

// CanRun reports whether every fact the transition requires is present.
// No mutation.
func (m *Machine) CanRun(t transition.Runnable) bool {
	for _, id := range t.Requires() {
		if !m.store.Has(id) {
			return false
		}
	}
	return true
}

// Missing returns the required facts currently absent from the store,
// sorted by name. Empty means the transition is runnable.
func (m *Machine) Missing(t transition.Runnable) []fact.ID {
	var missing []fact.ID
	for _, id := range t.Requires() {
		if !m.store.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// Run executes the transition if its requirements are met.
//
// When a required fact is absent, Run returns a MissingRequirementError
// naming the missing facts and leaves the store untouched. The error is
// recoverable - run a different transition first, or treat it as a no-op -
// and is never retried by the machine itself.
func (m *Machine) Run(t transition.Runnable) error {
	if missing := m.Missing(t); len(missing) > 0 {
		return &MissingRequirementError{Missing: missing}
	}
	slog.Debug("running transition",
		"run_token", m.token,
		"requires", len(t.Requires()),
		"produces", len(t.Produces()),
	)
	t.Apply(m.store)
	return nil
}

// RunUnchecked executes the transition without the requirement guard.
// The caller asserts the requirements are met; if they are not, extraction
// fails fatally via the store's missing-fact panic.
func (m *Machine) RunUnchecked(t transition.Runnable) {
	t.Apply(m.store)
}

// Insert stores a fact value under its own dynamic type.
// Dynamic counterpart of Set, used when the type is only known at runtime
// (e.g. facts decoded from a manifest).
func (m *Machine) Insert(v any) fact.ID {
	return m.store.Insert(v)
}

// FactIDs returns the identities of all stored facts, sorted by name.
func (m *Machine) FactIDs() []fact.ID {
	return m.store.IDs()
}

// PeekFact returns the stored value for id without removing it.
// For display only; transitions always take.
func (m *Machine) PeekFact(id fact.ID) (any, bool) {
	return m.store.Peek(id)
}

// Set stores a fact of type T, overwriting any prior value for that type.
func Set[T any](m *Machine, v T) {
	fact.Put(m.store, v)
}

// Has reports whether a fact of type T is present.
func Has[T any](m *Machine) bool {
	return fact.Contains[T](m.store)
}

// Take removes and returns the fact of type T, if present.
func Take[T any](m *Machine) (T, bool) {
	return fact.TakeOptional[T](m.store)
}
