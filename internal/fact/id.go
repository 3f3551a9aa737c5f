package fact

import "reflect"

// ID identifies a fact type. IDs are comparable, hashable as map keys, and
// stable for the lifetime of the process: the same type always yields the
// same ID, and two distinct types never yield the same ID.
//
// The zero ID identifies no type and is never returned by IDOf.
type ID struct {
	rtype reflect.Type
}

// IDOf returns the identity of fact type T.
func IDOf[T any]() ID {
	return ID{rtype: reflect.TypeFor[T]()}
}

// TypeID returns the identity for a reflected type.
// Used by the transition binding machinery; most callers want IDOf.
func TypeID(rt reflect.Type) ID {
	return ID{rtype: rt}
}

// Type returns the underlying reflected type, or nil for the zero ID.
func (id ID) Type() reflect.Type {
	return id.rtype
}

// IsZero reports whether the ID identifies no type.
func (id ID) IsZero() bool {
	return id.rtype == nil
}

// typeOf returns the dynamic type of v, panicking on untyped nil since a
// nil interface has no identity to store under.
func typeOf(v any) reflect.Type {
	rt := reflect.TypeOf(v)
	if rt == nil {
		panic("fact: cannot determine identity of untyped nil")
	}
	return rt
}

// String returns the type's name, e.g. "demo.Counter". Zero IDs render as
// "<none>". Used for error messages, log fields, and sorted CLI output.
func (id ID) String() string {
	if id.rtype == nil {
		return "<none>"
	}
	return id.rtype.String()
}
