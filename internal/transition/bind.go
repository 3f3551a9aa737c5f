package transition

import (
	"fmt"
	"reflect"

	"github.com/roach88/sems/internal/fact"
)

// Arity ceilings for transition functions. This is the documented contract,
// not a fundamental limitation of the reflection machinery.
const (
	MaxParams  = 8
	MaxResults = 8
)

// paramBinding extracts one parameter value from the store.
//
// A concrete binding takes the fact and fails fatally when it is absent or
// mismatched; an optional binding yields a nil pointer on absence.
type paramBinding struct {
	id       fact.ID
	optional bool
	ptype    reflect.Type // declared parameter type (*T when optional)
}

func (b paramBinding) extract(s *fact.Store) reflect.Value {
	v, ok := s.Remove(b.id)
	if b.optional {
		if !ok {
			return reflect.Zero(b.ptype)
		}
		out := reflect.New(b.ptype.Elem())
		out.Elem().Set(reflect.ValueOf(v))
		return out
	}
	if !ok {
		panic(fmt.Sprintf("fact: store does not contain required fact %s", b.id))
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != b.ptype {
		panic(fmt.Sprintf("fact: wrong dynamic type %T stored for fact %s", v, b.id))
	}
	return rv
}

// resultBinding inserts one result value into the store.
type resultBinding struct {
	id       fact.ID
	optional bool
}

func (b resultBinding) insert(s *fact.Store, rv reflect.Value) {
	if b.optional {
		if rv.IsNil() {
			return
		}
		s.Set(b.id, rv.Elem().Interface())
		return
	}
	s.Set(b.id, rv.Interface())
}

// binding is the construction-time analysis of one function: a procedure
// that extracts parameters, calls the function, and inserts results, plus
// the derived requirement and production sets.
type binding struct {
	proc     func(*fact.Store)
	requires idSet
	produces idSet
}

// bindFunc analyzes fn and derives its binding.
//
// Validation order matches construction order: the result shape is checked
// first, then the parameter shape. Both checks run exactly once, here, not
// per invocation.
func bindFunc(fn any) (*binding, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, shapeError("transition must be a function, got %T", fn)
	}
	if fv.IsNil() {
		return nil, shapeError("transition function is nil")
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, shapeError("variadic functions are not supported")
	}
	if ft.NumIn() > MaxParams {
		return nil, shapeError("function has %d parameters, maximum is %d", ft.NumIn(), MaxParams)
	}
	if ft.NumOut() > MaxResults {
		return nil, shapeError("function has %d results, maximum is %d", ft.NumOut(), MaxResults)
	}

	results := make([]resultBinding, ft.NumOut())
	produces := make(idSet)
	for i := range results {
		rb, err := classifyResult(ft.Out(i), i)
		if err != nil {
			return nil, err
		}
		results[i] = rb
		if rb.optional {
			continue
		}
		if produces.has(rb.id) {
			return nil, duplicateProductionError(rb.id)
		}
		produces.add(rb.id)
	}

	params := make([]paramBinding, ft.NumIn())
	requires := make(idSet)
	for i := range params {
		pb, err := classifyParam(ft.In(i), i)
		if err != nil {
			return nil, err
		}
		params[i] = pb
		if pb.optional {
			continue
		}
		if requires.has(pb.id) {
			return nil, duplicateRequirementError(pb.id)
		}
		requires.add(pb.id)
	}

	proc := func(s *fact.Store) {
		args := make([]reflect.Value, len(params))
		for i, p := range params {
			args[i] = p.extract(s)
		}
		outs := fv.Call(args)
		for i, r := range results {
			r.insert(s, outs[i])
		}
	}

	return &binding{proc: proc, requires: requires, produces: produces}, nil
}

// classifyParam maps a declared parameter type to its binding.
// T is a concrete fact, *T an optional one. Pointer fact types are not
// representable since the pointer form is reserved for optionality.
func classifyParam(pt reflect.Type, pos int) (paramBinding, error) {
	if pt.Kind() == reflect.Ptr {
		elem := pt.Elem()
		if elem.Kind() == reflect.Ptr {
			return paramBinding{}, shapeError("parameter %d: %s is a pointer to a pointer; optional facts are a single *T", pos, pt)
		}
		return paramBinding{id: fact.TypeID(elem), optional: true, ptype: pt}, nil
	}
	return paramBinding{id: fact.TypeID(pt), ptype: pt}, nil
}

// classifyResult maps a declared result type to its binding, with the same
// pointer-means-optional rule as parameters.
func classifyResult(rt reflect.Type, pos int) (resultBinding, error) {
	if rt.Kind() == reflect.Ptr {
		elem := rt.Elem()
		if elem.Kind() == reflect.Ptr {
			return resultBinding{}, shapeError("result %d: %s is a pointer to a pointer; optional facts are a single *T", pos, rt)
		}
		return resultBinding{id: fact.TypeID(elem), optional: true}, nil
	}
	return resultBinding{id: fact.TypeID(rt)}, nil
}
