package manifest

import (
	"fmt"
	"log/slog"

	"github.com/roach88/sems/internal/dictionary"
	"github.com/roach88/sems/internal/transition"
)

// ResolvePipeline composes the pipeline's steps, left to right, into a
// single transition.
//
// Every step must name a transition in the dictionary. Composition errors
// (an unsatisfiable step order, most commonly) surface here, at resolution
// time, before any execution.
func ResolvePipeline(p *Pipeline, dict *dictionary.TransitionDictionary) (*transition.TransitionMut, error) {
	chain, ok := dict.Get(p.Steps[0])
	if !ok {
		return nil, fmt.Errorf("pipeline %q: step %q: %w", p.Name, p.Steps[0], &dictionary.NotFoundError{Path: p.Steps[0]})
	}

	for _, step := range p.Steps[1:] {
		next, ok := dict.Get(step)
		if !ok {
			return nil, fmt.Errorf("pipeline %q: step %q: %w", p.Name, step, &dictionary.NotFoundError{Path: step})
		}
		composed, err := chain.AndThen(next)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: step %q: %w", p.Name, step, err)
		}
		chain = composed
	}

	slog.Debug("pipeline resolved",
		"pipeline", p.Name,
		"steps", len(p.Steps),
		"requires", len(chain.Requires()),
		"produces", len(chain.Produces()),
	)
	return chain, nil
}

// Resolve composes every pipeline in the manifest against the dictionary.
// All pipelines are attempted; the returned map holds the ones that
// resolved, and errs the failures.
func (m *Manifest) Resolve(dict *dictionary.TransitionDictionary) (map[string]*transition.TransitionMut, []error) {
	resolved := make(map[string]*transition.TransitionMut, len(m.Pipelines))
	var errs []error
	for i := range m.Pipelines {
		p := &m.Pipelines[i]
		t, err := ResolvePipeline(p, dict)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved[p.Name] = t
	}
	return resolved, errs
}
