// Package dsl provides the construction DSL for specflow schema nodes.
//
// Overview
//   - Builder API: declare keywords with chained setters, then Build()/MustBuild().
//     Build validates every rule fail-fast and returns an immutable node;
//     no partially built node ever escapes.
//   - Three shapes: Base() (keywords common to every schema), Array()
//     (array keywords plus family-strict composition), Object() (object
//     keywords plus generic composition).
//   - Leaves: String()/Integer()/Number()/Boolean() build scalar
//     constraint schemas that nest anywhere a node does.
//
// Entry points
//   - Base(): generic schema builder; chain ID/Schema/Ref/Anchor/... then Build.
//   - Array(): array schema builder; Items/PrefixItems/Contains/MinItems/...
//   - Object(): object schema builder; Property/Required/PatternProperties/...
//   - String()/Integer()/Number()/Boolean(): scalar leaf builders.
//
// File layout (roles)
//   - base.go: shared keyword slots, their validation rules, and their
//     canonical serialization order.
//   - array.go: ArraySchema and its builder (array keywords, strict
//     same-family composition membership).
//   - object.go: ObjectSchema and its builder (object keywords, generic
//     composition membership).
//   - scalars.go: scalar leaf schemas (string/integer/number/boolean).
//
// Design guidelines
//   - Builders are single-use; every setter replaces its slot.
//   - Validation is atomic: the first violated rule aborts Build with a
//     specflow.SchemaError and nothing is constructed.
//   - Serialization emits only set keywords, in a fixed canonical order,
//     so serializing twice yields identical structures.
package dsl
