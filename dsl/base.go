package dsl

import (
	"regexp"
	"sort"
	"strings"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/internal/uriref"
	"github.com/specflow/specflow-go/ordered"
)

// anchorPattern is the fragment-identifier grammar for $anchor and
// $dynamicAnchor: a leading letter, then letters/digits/'-'/'_'. The
// grammar itself excludes '#'.
var anchorPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// baseKeywords holds every keyword slot shared by all schema shapes.
// Presence is carried by pointers and nil maps; absence is distinct
// from a zero value.
type baseKeywords struct {
	id              *string
	schema          *string
	ref             *string
	dynamicRef      *string
	recursiveRef    *string
	definitions     map[string]any
	defs            map[string]any
	comment         *string
	anchor          *string
	dynamicAnchor   *string
	recursiveAnchor *bool
	vocabulary      map[string]bool
	title           *string
	description     *string
	deprecated      *bool
	readOnly        *bool
	writeOnly       *bool
}

// validate runs the shared keyword rules in a fixed order, failing on
// the first violation.
func (kw *baseKeywords) validate() error {
	if kw.id != nil {
		if isBlank(*kw.id) {
			return specflow.NewConstraintError("$id", specflow.CodeBlankString, nil)
		}
		if !uriref.IsURI(*kw.id) {
			return specflow.NewConstraintError("$id", specflow.CodeInvalidURI, *kw.id)
		}
	}
	if kw.schema != nil {
		if isBlank(*kw.schema) {
			return specflow.NewConstraintError("$schema", specflow.CodeBlankString, nil)
		}
		if !uriref.IsURI(*kw.schema) {
			return specflow.NewConstraintError("$schema", specflow.CodeInvalidURI, *kw.schema)
		}
	}

	refs := 0
	for _, p := range []*string{kw.ref, kw.dynamicRef, kw.recursiveRef} {
		if p != nil {
			refs++
		}
	}
	if refs > 1 {
		return specflow.NewConstraintError("$ref/$dynamicRef/$recursiveRef", specflow.CodeExclusiveKeywords, nil)
	}
	for _, r := range []struct {
		keyword string
		value   *string
	}{
		{"$ref", kw.ref},
		{"$dynamicRef", kw.dynamicRef},
		{"$recursiveRef", kw.recursiveRef},
	} {
		if r.value == nil {
			continue
		}
		if isBlank(*r.value) {
			return specflow.NewConstraintError(r.keyword, specflow.CodeBlankString, nil)
		}
		if !uriref.IsURIReference(*r.value) {
			return specflow.NewConstraintError(r.keyword, specflow.CodeInvalidURIReference, *r.value)
		}
	}

	anchors := 0
	if kw.anchor != nil {
		anchors++
	}
	if kw.dynamicAnchor != nil {
		anchors++
	}
	if kw.recursiveAnchor != nil {
		anchors++
	}
	if anchors > 1 {
		return specflow.NewConstraintError("$anchor/$dynamicAnchor/$recursiveAnchor", specflow.CodeExclusiveKeywords, nil)
	}
	for _, a := range []struct {
		keyword string
		value   *string
	}{
		{"$anchor", kw.anchor},
		{"$dynamicAnchor", kw.dynamicAnchor},
	} {
		if a.value == nil {
			continue
		}
		if isBlank(*a.value) {
			return specflow.NewConstraintError(a.keyword, specflow.CodeBlankString, nil)
		}
		if !anchorPattern.MatchString(*a.value) {
			return specflow.NewConstraintError(a.keyword, specflow.CodeInvalidAnchor, *a.value)
		}
	}

	for uri := range kw.vocabulary {
		if isBlank(uri) {
			return specflow.NewConstraintError("$vocabulary", specflow.CodeBlankString, nil)
		}
		if !uriref.IsURI(uri) {
			return specflow.NewConstraintError("$vocabulary", specflow.CodeInvalidURI, uri)
		}
	}

	if kw.readOnly != nil && kw.writeOnly != nil && *kw.readOnly && *kw.writeOnly {
		return specflow.NewConstraintError("readOnly/writeOnly", specflow.CodeExclusiveKeywords, nil)
	}

	if kw.definitions != nil && kw.defs != nil {
		return specflow.NewConstraintError("definitions/$defs", specflow.CodeExclusiveKeywords, nil)
	}
	for key := range kw.definitions {
		if isBlank(key) {
			return specflow.NewConstraintError("definitions", specflow.CodeBlankString, nil)
		}
	}
	for key := range kw.defs {
		if isBlank(key) {
			return specflow.NewConstraintError("$defs", specflow.CodeBlankString, nil)
		}
	}
	return nil
}

// document appends every set shared keyword to m using canonical
// spellings, in a fixed order.
func (kw *baseKeywords) document(m *ordered.Map) {
	if kw.id != nil {
		m.Set("$id", *kw.id)
	}
	if kw.schema != nil {
		m.Set("$schema", *kw.schema)
	}
	if kw.ref != nil {
		m.Set("$ref", *kw.ref)
	}
	if kw.dynamicRef != nil {
		m.Set("$dynamicRef", *kw.dynamicRef)
	}
	if kw.recursiveRef != nil {
		m.Set("$recursiveRef", *kw.recursiveRef)
	}
	if kw.definitions != nil {
		m.Set("definitions", containerDocument(kw.definitions))
	}
	if kw.defs != nil {
		m.Set("$defs", containerDocument(kw.defs))
	}
	if kw.comment != nil {
		m.Set("$comment", *kw.comment)
	}
	if kw.anchor != nil {
		m.Set("$anchor", *kw.anchor)
	}
	if kw.dynamicAnchor != nil {
		m.Set("$dynamicAnchor", *kw.dynamicAnchor)
	}
	if kw.recursiveAnchor != nil {
		m.Set("$recursiveAnchor", *kw.recursiveAnchor)
	}
	if kw.vocabulary != nil {
		v := ordered.New()
		for _, uri := range sortedKeys(kw.vocabulary) {
			v.Set(uri, kw.vocabulary[uri])
		}
		m.Set("$vocabulary", v)
	}
	if kw.title != nil {
		m.Set("title", *kw.title)
	}
	if kw.description != nil {
		m.Set("description", *kw.description)
	}
	if kw.deprecated != nil {
		m.Set("deprecated", *kw.deprecated)
	}
	if kw.readOnly != nil {
		m.Set("readOnly", *kw.readOnly)
	}
	if kw.writeOnly != nil {
		m.Set("writeOnly", *kw.writeOnly)
	}
}

// clone copies the map-valued slots so a built node cannot be mutated
// through the maps the caller handed to the builder.
func (kw baseKeywords) clone() baseKeywords {
	out := kw
	out.definitions = copyMap(kw.definitions)
	out.defs = copyMap(kw.defs)
	if kw.vocabulary != nil {
		out.vocabulary = make(map[string]bool, len(kw.vocabulary))
		for k, v := range kw.vocabulary {
			out.vocabulary[k] = v
		}
	}
	return out
}

// BaseSchema is a validated generic schema node carrying only the
// keywords common to every shape. It emits no type keyword.
type BaseSchema struct {
	kw baseKeywords
}

// Document returns the canonical keyword mapping for the node.
func (s *BaseSchema) Document() *ordered.Map {
	m := ordered.New()
	s.kw.document(m)
	return m
}

// BaseBuilder accumulates shared keywords for a generic schema node.
type BaseBuilder struct {
	kw baseKeywords
}

// Base creates a new builder for a generic schema node.
func Base() *BaseBuilder { return &BaseBuilder{} }

// ID sets $id. Must be a non-blank, syntactically valid URI.
func (b *BaseBuilder) ID(id string) *BaseBuilder { b.kw.id = &id; return b }

// Schema sets $schema. Must be a non-blank, syntactically valid URI.
func (b *BaseBuilder) Schema(uri string) *BaseBuilder { b.kw.schema = &uri; return b }

// Ref sets $ref; mutually exclusive with $dynamicRef and $recursiveRef.
func (b *BaseBuilder) Ref(ref string) *BaseBuilder { b.kw.ref = &ref; return b }

// DynamicRef sets $dynamicRef.
func (b *BaseBuilder) DynamicRef(ref string) *BaseBuilder { b.kw.dynamicRef = &ref; return b }

// RecursiveRef sets $recursiveRef.
func (b *BaseBuilder) RecursiveRef(ref string) *BaseBuilder { b.kw.recursiveRef = &ref; return b }

// Definitions sets the draft-07 definitions container; mutually
// exclusive with $defs. Values may be schema nodes or raw values.
func (b *BaseBuilder) Definitions(defs map[string]any) *BaseBuilder { b.kw.definitions = defs; return b }

// Defs sets the 2019-09+ $defs container; mutually exclusive with
// definitions.
func (b *BaseBuilder) Defs(defs map[string]any) *BaseBuilder { b.kw.defs = defs; return b }

// Comment sets $comment.
func (b *BaseBuilder) Comment(c string) *BaseBuilder { b.kw.comment = &c; return b }

// Anchor sets $anchor; mutually exclusive with $dynamicAnchor and
// $recursiveAnchor.
func (b *BaseBuilder) Anchor(a string) *BaseBuilder { b.kw.anchor = &a; return b }

// DynamicAnchor sets $dynamicAnchor.
func (b *BaseBuilder) DynamicAnchor(a string) *BaseBuilder { b.kw.dynamicAnchor = &a; return b }

// RecursiveAnchor sets $recursiveAnchor.
func (b *BaseBuilder) RecursiveAnchor(v bool) *BaseBuilder { b.kw.recursiveAnchor = &v; return b }

// Vocabulary sets $vocabulary. Keys must be syntactically valid URIs.
// NOTE: $vocabulary is only meaningful on meta-schema roots (schemas
// defining JSON Schema dialects); that restriction is documented, not
// structurally enforced.
func (b *BaseBuilder) Vocabulary(v map[string]bool) *BaseBuilder { b.kw.vocabulary = v; return b }

// Title sets title.
func (b *BaseBuilder) Title(t string) *BaseBuilder { b.kw.title = &t; return b }

// Description sets description.
func (b *BaseBuilder) Description(d string) *BaseBuilder { b.kw.description = &d; return b }

// Deprecated sets deprecated.
func (b *BaseBuilder) Deprecated(v bool) *BaseBuilder { b.kw.deprecated = &v; return b }

// ReadOnly sets readOnly; readOnly and writeOnly cannot both be true.
func (b *BaseBuilder) ReadOnly(v bool) *BaseBuilder { b.kw.readOnly = &v; return b }

// WriteOnly sets writeOnly.
func (b *BaseBuilder) WriteOnly(v bool) *BaseBuilder { b.kw.writeOnly = &v; return b }

// Build validates every shared rule and returns the immutable node.
func (b *BaseBuilder) Build() (*BaseSchema, error) {
	if err := b.kw.validate(); err != nil {
		return nil, err
	}
	return &BaseSchema{kw: b.kw.clone()}, nil
}

// MustBuild is Build that panics on error.
func (b *BaseBuilder) MustBuild() *BaseSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ---- shared helpers ----

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func copyMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// containerDocument serializes a definitions/$defs container: schema
// values recurse, raw values pass through. Keys are emitted sorted so
// repeated serialization is identical.
func containerDocument(c map[string]any) *ordered.Map {
	m := ordered.New()
	for _, k := range sortedKeys(c) {
		if s, ok := c[k].(specflow.Schema); ok {
			m.Set(k, s.Document())
			continue
		}
		m.Set(k, c[k])
	}
	return m
}

// schemaListDocument serializes a composition member list.
func schemaListDocument(list []specflow.Schema) []any {
	out := make([]any, 0, len(list))
	for _, s := range list {
		out = append(out, s.Document())
	}
	return out
}

// schemaMapDocument serializes a string->schema mapping with sorted keys.
func schemaMapDocument(m map[string]specflow.Schema) *ordered.Map {
	out := ordered.New()
	for _, k := range sortedKeys(m) {
		out.Set(k, m[k].Document())
	}
	return out
}

func copySchemas(list []specflow.Schema) []specflow.Schema {
	if list == nil {
		return nil
	}
	out := make([]specflow.Schema, len(list))
	copy(out, list)
	return out
}
