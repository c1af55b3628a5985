package specflow

// Package specflow builds validated JSON Schema (2020-12 style) documents
// through a typed construction API and serializes them to canonical
// keyword mappings.
//
// - Construct-or-fail builders: an internally inconsistent document can
//   never be produced; every invariant is checked at Build time.
// - A stable error model via SchemaError (kind, code, keyword, value).
// - Canonical serialization via Document() into an ordered.Map that is
//   ready for JSON encoding (only set keywords, canonical spellings).
//
// Design policy:
// - Keep only public capability types and the error model in the root
//   package; put the construction DSL under dsl/ and the serialized
//   representation under ordered/.
// - Import of loosely-typed documents lives under importer/, the CLI
//   under cmd/specflow.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	name := dsl.String().MinLength(1).MustBuild()
//	user := dsl.Object().
//		Property("name", name).
//		Required("name").
//		MustBuild()
//	out, err := json.Marshal(user.Document())
