// Package fact provides fact identity and the type-keyed fact store.
//
// This is the foundational layer: all other internal packages import fact;
// fact imports nothing internal.
//
// A fact is a typed piece of data held at most once per type. The Store maps
// a fact's identity (its Go type) to a single owned value. Retrieval always
// removes the value ("take" semantics) - facts are transferred, never shared.
//
// Key design constraints:
//   - Identity is intrinsic runtime type identity (reflect.Type is canonical
//     and comparable per process), so two distinct types can never collide.
//   - Pointer types are not fact types; a pointer denotes an optional fact
//     in transition signatures.
//   - Missing or type-mismatched facts on the checked paths are invariant
//     violations and panic immediately rather than returning an error.
package fact
