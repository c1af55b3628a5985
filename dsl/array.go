package dsl

import (
	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/ordered"
)

// ArraySchema is a validated array-shaped schema node. Composition
// keywords are family-strict: every member of allOf/anyOf/oneOf and the
// not/if/then/else slots must itself be an *ArraySchema.
type ArraySchema struct {
	kw          baseKeywords
	items       specflow.Schema
	itemsTuple  []specflow.Schema
	prefixItems []specflow.Schema
	contains    specflow.Schema
	minItems    *int
	maxItems    *int
	minContains *int
	maxContains *int
	uniqueItems *bool
	uneval      *specflow.SchemaOrBool
	allOf       []specflow.Schema
	anyOf       []specflow.Schema
	oneOf       []specflow.Schema
	not         specflow.Schema
	ifSchema    specflow.Schema
	thenSchema  specflow.Schema
	elseSchema  specflow.Schema
}

// Document returns the canonical keyword mapping. type:"array" is
// always present; everything else only when set.
func (s *ArraySchema) Document() *ordered.Map {
	m := ordered.New()
	s.kw.document(m)
	m.Set("type", "array")
	if s.items != nil {
		m.Set("items", s.items.Document())
	} else if s.itemsTuple != nil {
		m.Set("items", schemaListDocument(s.itemsTuple))
	}
	if s.prefixItems != nil {
		m.Set("prefixItems", schemaListDocument(s.prefixItems))
	}
	if s.contains != nil {
		m.Set("contains", s.contains.Document())
	}
	if s.minItems != nil {
		m.Set("minItems", *s.minItems)
	}
	if s.maxItems != nil {
		m.Set("maxItems", *s.maxItems)
	}
	if s.minContains != nil {
		m.Set("minContains", *s.minContains)
	}
	if s.maxContains != nil {
		m.Set("maxContains", *s.maxContains)
	}
	if s.uniqueItems != nil {
		m.Set("uniqueItems", *s.uniqueItems)
	}
	if s.uneval != nil {
		m.Set("unevaluatedItems", s.uneval.DocumentValue())
	}
	if s.allOf != nil {
		m.Set("allOf", schemaListDocument(s.allOf))
	}
	if s.anyOf != nil {
		m.Set("anyOf", schemaListDocument(s.anyOf))
	}
	if s.oneOf != nil {
		m.Set("oneOf", schemaListDocument(s.oneOf))
	}
	if s.not != nil {
		m.Set("not", s.not.Document())
	}
	if s.ifSchema != nil {
		m.Set("if", s.ifSchema.Document())
	}
	if s.thenSchema != nil {
		m.Set("then", s.thenSchema.Document())
	}
	if s.elseSchema != nil {
		m.Set("else", s.elseSchema.Document())
	}
	return m
}

// ArrayBuilder accumulates keywords for an array-shaped schema node.
type ArrayBuilder struct {
	kw          baseKeywords
	items       specflow.Schema
	itemsSet    bool
	itemsTuple  []specflow.Schema
	tupleSet    bool
	prefixItems []specflow.Schema
	prefixSet   bool
	contains    specflow.Schema
	containsSet bool
	minItems    *int
	maxItems    *int
	minContains *int
	maxContains *int
	uniqueItems *bool
	uneval      *specflow.SchemaOrBool
	allOf       []specflow.Schema
	allOfSet    bool
	anyOf       []specflow.Schema
	anyOfSet    bool
	oneOf       []specflow.Schema
	oneOfSet    bool
	not         specflow.Schema
	notSet      bool
	ifSchema    specflow.Schema
	ifSet       bool
	thenSchema  specflow.Schema
	thenSet     bool
	elseSchema  specflow.Schema
	elseSet     bool
}

// Array creates a new builder for an array-shaped schema node.
func Array() *ArrayBuilder { return &ArrayBuilder{} }

// ---- shared keywords ----

func (b *ArrayBuilder) ID(id string) *ArrayBuilder       { b.kw.id = &id; return b }
func (b *ArrayBuilder) Schema(uri string) *ArrayBuilder  { b.kw.schema = &uri; return b }
func (b *ArrayBuilder) Ref(ref string) *ArrayBuilder     { b.kw.ref = &ref; return b }
func (b *ArrayBuilder) DynamicRef(r string) *ArrayBuilder {
	b.kw.dynamicRef = &r
	return b
}
func (b *ArrayBuilder) RecursiveRef(r string) *ArrayBuilder {
	b.kw.recursiveRef = &r
	return b
}
func (b *ArrayBuilder) Definitions(d map[string]any) *ArrayBuilder {
	b.kw.definitions = d
	return b
}
func (b *ArrayBuilder) Defs(d map[string]any) *ArrayBuilder { b.kw.defs = d; return b }
func (b *ArrayBuilder) Comment(c string) *ArrayBuilder      { b.kw.comment = &c; return b }
func (b *ArrayBuilder) Anchor(a string) *ArrayBuilder       { b.kw.anchor = &a; return b }
func (b *ArrayBuilder) DynamicAnchor(a string) *ArrayBuilder {
	b.kw.dynamicAnchor = &a
	return b
}
func (b *ArrayBuilder) RecursiveAnchor(v bool) *ArrayBuilder {
	b.kw.recursiveAnchor = &v
	return b
}
func (b *ArrayBuilder) Vocabulary(v map[string]bool) *ArrayBuilder {
	b.kw.vocabulary = v
	return b
}
func (b *ArrayBuilder) Title(t string) *ArrayBuilder       { b.kw.title = &t; return b }
func (b *ArrayBuilder) Description(d string) *ArrayBuilder { b.kw.description = &d; return b }
func (b *ArrayBuilder) Deprecated(v bool) *ArrayBuilder    { b.kw.deprecated = &v; return b }
func (b *ArrayBuilder) ReadOnly(v bool) *ArrayBuilder      { b.kw.readOnly = &v; return b }
func (b *ArrayBuilder) WriteOnly(v bool) *ArrayBuilder     { b.kw.writeOnly = &v; return b }

// ---- array keywords ----

// Items sets the homogeneous items form: one schema applied to every
// element. Mutually exclusive with ItemsTuple.
func (b *ArrayBuilder) Items(s specflow.Schema) *ArrayBuilder {
	b.items = s
	b.itemsSet = true
	return b
}

// ItemsTuple sets the legacy tuple form of items: one schema per
// position. Mutually exclusive with Items.
func (b *ArrayBuilder) ItemsTuple(ss ...specflow.Schema) *ArrayBuilder {
	b.itemsTuple = ss
	b.tupleSet = true
	return b
}

// PrefixItems sets the modern tuple form.
func (b *ArrayBuilder) PrefixItems(ss ...specflow.Schema) *ArrayBuilder {
	b.prefixItems = ss
	b.prefixSet = true
	return b
}

// Contains sets contains.
func (b *ArrayBuilder) Contains(s specflow.Schema) *ArrayBuilder {
	b.contains = s
	b.containsSet = true
	return b
}

// MinItems sets minItems; non-negative, and no greater than maxItems
// when both are set.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder { b.minItems = &n; return b }

// MaxItems sets maxItems.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder { b.maxItems = &n; return b }

// MinContains sets minContains; requires Contains.
func (b *ArrayBuilder) MinContains(n int) *ArrayBuilder { b.minContains = &n; return b }

// MaxContains sets maxContains; requires Contains.
func (b *ArrayBuilder) MaxContains(n int) *ArrayBuilder { b.maxContains = &n; return b }

// UniqueItems sets uniqueItems.
func (b *ArrayBuilder) UniqueItems(v bool) *ArrayBuilder { b.uniqueItems = &v; return b }

// UnevaluatedItems sets unevaluatedItems to a schema or boolean.
func (b *ArrayBuilder) UnevaluatedItems(v specflow.SchemaOrBool) *ArrayBuilder {
	b.uneval = &v
	return b
}

// AllOf sets allOf. Members must be non-empty and array-shaped.
func (b *ArrayBuilder) AllOf(ss ...specflow.Schema) *ArrayBuilder {
	b.allOf = ss
	b.allOfSet = true
	return b
}

// AnyOf sets anyOf. Members must be non-empty and array-shaped.
func (b *ArrayBuilder) AnyOf(ss ...specflow.Schema) *ArrayBuilder {
	b.anyOf = ss
	b.anyOfSet = true
	return b
}

// OneOf sets oneOf. Members must be non-empty and array-shaped.
func (b *ArrayBuilder) OneOf(ss ...specflow.Schema) *ArrayBuilder {
	b.oneOf = ss
	b.oneOfSet = true
	return b
}

// Not sets not; must be array-shaped.
func (b *ArrayBuilder) Not(s specflow.Schema) *ArrayBuilder {
	b.not = s
	b.notSet = true
	return b
}

// If sets if; must be array-shaped. if alone is a valid no-op
// conditional.
func (b *ArrayBuilder) If(s specflow.Schema) *ArrayBuilder {
	b.ifSchema = s
	b.ifSet = true
	return b
}

// Then sets then; requires If.
func (b *ArrayBuilder) Then(s specflow.Schema) *ArrayBuilder {
	b.thenSchema = s
	b.thenSet = true
	return b
}

// Else sets else; requires If.
func (b *ArrayBuilder) Else(s specflow.Schema) *ArrayBuilder {
	b.elseSchema = s
	b.elseSet = true
	return b
}

// requireArrayMembers checks the family-strict membership rule for a
// composition keyword.
func requireArrayMembers(keyword string, list []specflow.Schema) error {
	for _, s := range list {
		if s == nil {
			return specflow.NewShapeError(keyword, specflow.CodeInvalidType, nil)
		}
		if _, ok := s.(*ArraySchema); !ok {
			return specflow.NewShapeError(keyword, specflow.CodeWrongFamily, nil)
		}
	}
	return nil
}

func requireArrayNode(keyword string, s specflow.Schema) error {
	if s == nil {
		return specflow.NewShapeError(keyword, specflow.CodeInvalidType, nil)
	}
	if _, ok := s.(*ArraySchema); !ok {
		return specflow.NewShapeError(keyword, specflow.CodeWrongFamily, nil)
	}
	return nil
}

// Build validates every array rule fail-fast and returns the immutable
// node.
func (b *ArrayBuilder) Build() (*ArraySchema, error) {
	if err := b.kw.validate(); err != nil {
		return nil, err
	}

	if b.itemsSet && b.tupleSet {
		return nil, specflow.NewConstraintError("items", specflow.CodeDuplicateKeyword, nil)
	}
	if b.itemsSet && b.items == nil {
		return nil, specflow.NewShapeError("items", specflow.CodeInvalidType, nil)
	}
	if b.tupleSet {
		for _, s := range b.itemsTuple {
			if s == nil {
				return nil, specflow.NewShapeError("items", specflow.CodeInvalidType, nil)
			}
		}
	}
	if b.prefixSet {
		for _, s := range b.prefixItems {
			if s == nil {
				return nil, specflow.NewShapeError("prefixItems", specflow.CodeInvalidType, nil)
			}
		}
	}
	if b.containsSet && b.contains == nil {
		return nil, specflow.NewShapeError("contains", specflow.CodeInvalidType, nil)
	}

	if b.minItems != nil && *b.minItems < 0 {
		return nil, specflow.NewConstraintError("minItems", specflow.CodeNegativeBound, *b.minItems)
	}
	if b.maxItems != nil && *b.maxItems < 0 {
		return nil, specflow.NewConstraintError("maxItems", specflow.CodeNegativeBound, *b.maxItems)
	}
	if b.minItems != nil && b.maxItems != nil && *b.minItems > *b.maxItems {
		return nil, specflow.NewConstraintError("minItems/maxItems", specflow.CodeMinOverMax, nil)
	}

	if b.minContains != nil {
		if *b.minContains < 0 {
			return nil, specflow.NewConstraintError("minContains", specflow.CodeNegativeBound, *b.minContains)
		}
		if !b.containsSet {
			return nil, specflow.NewConstraintError("minContains", specflow.CodeMissingDependency, "contains")
		}
	}
	if b.maxContains != nil {
		if *b.maxContains < 0 {
			return nil, specflow.NewConstraintError("maxContains", specflow.CodeNegativeBound, *b.maxContains)
		}
		if !b.containsSet {
			return nil, specflow.NewConstraintError("maxContains", specflow.CodeMissingDependency, "contains")
		}
	}
	if b.minContains != nil && b.maxContains != nil && *b.minContains > *b.maxContains {
		return nil, specflow.NewConstraintError("minContains/maxContains", specflow.CodeMinOverMax, nil)
	}

	if b.uneval != nil && !b.uneval.IsBool() && b.uneval.Schema() == nil {
		return nil, specflow.NewShapeError("unevaluatedItems", specflow.CodeInvalidType, nil)
	}

	for _, comp := range []struct {
		keyword string
		set     bool
		list    []specflow.Schema
	}{
		{"allOf", b.allOfSet, b.allOf},
		{"anyOf", b.anyOfSet, b.anyOf},
		{"oneOf", b.oneOfSet, b.oneOf},
	} {
		if !comp.set {
			continue
		}
		if len(comp.list) == 0 {
			return nil, specflow.NewConstraintError(comp.keyword, specflow.CodeEmptyList, nil)
		}
		if err := requireArrayMembers(comp.keyword, comp.list); err != nil {
			return nil, err
		}
	}

	if b.notSet {
		if err := requireArrayNode("not", b.not); err != nil {
			return nil, err
		}
	}
	if (b.thenSet || b.elseSet) && !b.ifSet {
		return nil, specflow.NewConstraintError("then/else", specflow.CodeMissingDependency, "if")
	}
	if b.ifSet {
		if err := requireArrayNode("if", b.ifSchema); err != nil {
			return nil, err
		}
	}
	if b.thenSet {
		if err := requireArrayNode("then", b.thenSchema); err != nil {
			return nil, err
		}
	}
	if b.elseSet {
		if err := requireArrayNode("else", b.elseSchema); err != nil {
			return nil, err
		}
	}

	node := &ArraySchema{
		kw:          b.kw.clone(),
		items:       b.items,
		contains:    b.contains,
		minItems:    b.minItems,
		maxItems:    b.maxItems,
		minContains: b.minContains,
		maxContains: b.maxContains,
		uniqueItems: b.uniqueItems,
		uneval:      b.uneval,
		not:         b.not,
		ifSchema:    b.ifSchema,
		thenSchema:  b.thenSchema,
		elseSchema:  b.elseSchema,
	}
	if b.tupleSet {
		node.itemsTuple = copySchemas(b.itemsTuple)
		if node.itemsTuple == nil {
			node.itemsTuple = []specflow.Schema{}
		}
	}
	if b.prefixSet {
		node.prefixItems = copySchemas(b.prefixItems)
		if node.prefixItems == nil {
			node.prefixItems = []specflow.Schema{}
		}
	}
	if b.allOfSet {
		node.allOf = copySchemas(b.allOf)
	}
	if b.anyOfSet {
		node.anyOf = copySchemas(b.anyOf)
	}
	if b.oneOfSet {
		node.oneOf = copySchemas(b.oneOf)
	}
	return node, nil
}

// MustBuild is Build that panics on error.
func (b *ArrayBuilder) MustBuild() *ArraySchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
