package manifest

import (
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sems/internal/fact"
	"github.com/roach88/sems/internal/machine"
)

// FactRegistry maps stable names to fact types, so manifests and fact files
// can refer to facts without knowing Go type names.
type FactRegistry struct {
	types map[string]reflect.Type
	names map[fact.ID]string
}

// NewFactRegistry creates an empty registry.
func NewFactRegistry() *FactRegistry {
	return &FactRegistry{
		types: make(map[string]reflect.Type),
		names: make(map[fact.ID]string),
	}
}

// RegisterFact registers fact type T under name.
//
// Registration is a setup-time contract: a duplicate name, a second name
// for the same type, or a pointer type panics immediately rather than
// surfacing later as a confusing decode error.
func RegisterFact[T any](r *FactRegistry, name string) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Ptr {
		panic(fmt.Sprintf("manifest: fact type %s is a pointer; register the element type", rt))
	}
	if prev, ok := r.types[name]; ok {
		panic(fmt.Sprintf("manifest: fact name %q already registered for %s", name, prev))
	}
	id := fact.TypeID(rt)
	if prev, ok := r.names[id]; ok {
		panic(fmt.Sprintf("manifest: fact type %s already registered as %q", rt, prev))
	}
	r.types[name] = rt
	r.names[id] = name
}

// Name returns the registered name for a fact identity, or its type name
// when unregistered. Used for rendering.
func (r *FactRegistry) Name(id fact.ID) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return id.String()
}

// Names returns all registered fact names, sorted.
func (r *FactRegistry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode unmarshals a YAML node into a new value of the named fact type.
func (r *FactRegistry) Decode(name string, node *yaml.Node) (any, error) {
	rt, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown fact name %q", name)
	}
	pv := reflect.New(rt)
	if err := node.Decode(pv.Interface()); err != nil {
		return nil, fmt.Errorf("decode fact %q: %w", name, err)
	}
	return pv.Elem().Interface(), nil
}

// DecodeFile decodes a YAML fact file: a single document mapping fact names
// to values. Returns the decoded facts keyed by name.
func (r *FactRegistry) DecodeFile(data []byte) (map[string]any, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fact file: %w", err)
	}
	facts := make(map[string]any, len(doc))
	for name, node := range doc {
		v, err := r.Decode(name, &node)
		if err != nil {
			return nil, err
		}
		facts[name] = v
	}
	return facts, nil
}

// Seed decodes a YAML fact file and inserts every fact into the machine.
func (r *FactRegistry) Seed(m *machine.Machine, data []byte) error {
	facts, err := r.DecodeFile(data)
	if err != nil {
		return err
	}
	for _, v := range facts {
		m.Insert(v)
	}
	return nil
}
