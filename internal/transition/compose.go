package transition

import "github.com/roach88/sems/internal/fact"

// combineSets merges the requirement/production sets of two transitions
// chained first-then-second.
//
// A fact both halves require must be produced by the first half, or the
// second half would find it missing after the first consumed it. The merged
// requirement set is R1 ∪ (R2 − P1): what the second half needs and the
// first does not supply must be required up front. The merged production
// set is P2 ∪ (P1 − R2): what the first half produced and the second did
// not consume survives to the composite's output.
//
// This validation is re-derived at every composition, never assumed to hold
// transitively through earlier compositions.
func combineSets(requires1, produces1, requires2, produces2 idSet) (idSet, idSet, error) {
	for id := range requires1 {
		if requires2.has(id) && !produces1.has(id) {
			return nil, nil, unsatisfiableReorderError(id)
		}
	}

	requires := requires1.clone()
	for id := range requires2 {
		if !produces1.has(id) {
			requires.add(id)
		}
	}

	produces := produces2.clone()
	for id := range produces1 {
		if !requires2.has(id) {
			produces.add(id)
		}
	}

	return requires, produces, nil
}

// AndThen chains t with next into one pure transition that runs t first,
// then next, against the same store.
func (t *Transition) AndThen(next *Transition) (*Transition, error) {
	requires, produces, err := combineSets(t.requires, t.produces, next.requires, next.produces)
	if err != nil {
		return nil, err
	}
	first, second := t.proc, next.proc
	return &Transition{
		proc: func(s *fact.Store) {
			first(s)
			second(s)
		},
		requires: requires,
		produces: produces,
	}, nil
}

// AndThen chains t with next into one stateful transition. Both operands'
// procedures are owned by the composite afterwards; running an operand
// separately as well will double its effect.
func (t *TransitionMut) AndThen(next *TransitionMut) (*TransitionMut, error) {
	requires, produces, err := combineSets(t.requires, t.produces, next.requires, next.produces)
	if err != nil {
		return nil, err
	}
	first, second := t.proc, next.proc
	return &TransitionMut{
		proc: func(s *fact.Store) {
			first(s)
			second(s)
		},
		requires: requires,
		produces: produces,
	}, nil
}

// AndThen chains t with next into one single-use transition, consuming both
// operands: they are marked spent here, and only the composite can run.
func (t *TransitionOnce) AndThen(next *TransitionOnce) (*TransitionOnce, error) {
	requires, produces, err := combineSets(t.requires, t.produces, next.requires, next.produces)
	if err != nil {
		return nil, err
	}
	first, second := t.take(), next.take()
	return &TransitionOnce{
		proc: func(s *fact.Store) {
			first(s)
			second(s)
		},
		requires: requires,
		produces: produces,
	}, nil
}
