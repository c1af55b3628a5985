package dsl

import (
	"regexp"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/ordered"
)

// ObjectSchema is a validated object-shaped schema node. Composition
// keywords accept any schema node, unlike the array family.
type ObjectSchema struct {
	kw            baseKeywords
	properties    map[string]specflow.Schema
	patternProps  map[string]specflow.Schema
	additional    *specflow.SchemaOrBool
	uneval        *specflow.SchemaOrBool
	required      []string
	propertyNames specflow.Schema
	minProperties *int
	maxProperties *int
	depRequired   map[string][]string
	depSchemas    map[string]specflow.Schema
	allOf         []specflow.Schema
	anyOf         []specflow.Schema
	oneOf         []specflow.Schema
	not           specflow.Schema
	ifSchema      specflow.Schema
	thenSchema    specflow.Schema
	elseSchema    specflow.Schema
}

// Document returns the canonical keyword mapping. type:"object" is
// always present; everything else only when set. Map-valued keywords
// emit sorted keys so repeated serialization is identical.
func (s *ObjectSchema) Document() *ordered.Map {
	m := ordered.New()
	s.kw.document(m)
	m.Set("type", "object")
	if s.properties != nil {
		m.Set("properties", schemaMapDocument(s.properties))
	}
	if s.patternProps != nil {
		m.Set("patternProperties", schemaMapDocument(s.patternProps))
	}
	if s.additional != nil {
		m.Set("additionalProperties", s.additional.DocumentValue())
	}
	if s.uneval != nil {
		m.Set("unevaluatedProperties", s.uneval.DocumentValue())
	}
	if s.required != nil {
		m.Set("required", append([]string(nil), s.required...))
	}
	if s.propertyNames != nil {
		m.Set("propertyNames", s.propertyNames.Document())
	}
	if s.minProperties != nil {
		m.Set("minProperties", *s.minProperties)
	}
	if s.maxProperties != nil {
		m.Set("maxProperties", *s.maxProperties)
	}
	if s.depRequired != nil {
		dr := ordered.New()
		for _, k := range sortedKeys(s.depRequired) {
			dr.Set(k, append([]string(nil), s.depRequired[k]...))
		}
		m.Set("dependentRequired", dr)
	}
	if s.depSchemas != nil {
		m.Set("dependentSchemas", schemaMapDocument(s.depSchemas))
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

// ObjectBuilder accumulates keywords for an object-shaped schema node.
type ObjectBuilder struct {
	kw            baseKeywords
	properties    map[string]specflow.Schema
	patternProps  map[string]specflow.Schema
	additional    *specflow.SchemaOrBool
	uneval        *specflow.SchemaOrBool
	required      []string
	requiredSet   bool
	propertyNames specflow.Schema
	propNamesSet  bool
	minProperties *int
	maxProperties *int
	depRequired   map[string][]string
	depSchemas    map[string]specflow.Schema
	allOf         []specflow.Schema
	allOfSet      bool
	anyOf         []specflow.Schema
	anyOfSet      bool
	oneOf         []specflow.Schema
	oneOfSet      bool
	not           specflow.Schema
	notSet        bool
	ifSchema      specflow.Schema
	ifSet         bool
	thenSchema    specflow.Schema
	thenSet       bool
	elseSchema    specflow.Schema
	elseSet       bool
}

// Object creates a new builder for an object-shaped schema node.
func Object() *ObjectBuilder { return &ObjectBuilder{} }

// ---- shared keywords ----

func (b *ObjectBuilder) ID(id string) *ObjectBuilder      { b.kw.id = &id; return b }
func (b *ObjectBuilder) Schema(uri string) *ObjectBuilder { b.kw.schema = &uri; return b }
func (b *ObjectBuilder) Ref(ref string) *ObjectBuilder    { b.kw.ref = &ref; return b }
func (b *ObjectBuilder) DynamicRef(r string) *ObjectBuilder {
	b.kw.dynamicRef = &r
	return b
}
func (b *ObjectBuilder) RecursiveRef(r string) *ObjectBuilder {
	b.kw.recursiveRef = &r
	return b
}
func (b *ObjectBuilder) Definitions(d map[string]any) *ObjectBuilder {
	b.kw.definitions = d
	return b
}
func (b *ObjectBuilder) Defs(d map[string]any) *ObjectBuilder { b.kw.defs = d; return b }
func (b *ObjectBuilder) Comment(c string) *ObjectBuilder      { b.kw.comment = &c; return b }
func (b *ObjectBuilder) Anchor(a string) *ObjectBuilder       { b.kw.anchor = &a; return b }
func (b *ObjectBuilder) DynamicAnchor(a string) *ObjectBuilder {
	b.kw.dynamicAnchor = &a
	return b
}
func (b *ObjectBuilder) RecursiveAnchor(v bool) *ObjectBuilder {
	b.kw.recursiveAnchor = &v
	return b
}
func (b *ObjectBuilder) Vocabulary(v map[string]bool) *ObjectBuilder {
	b.kw.vocabulary = v
	return b
}
func (b *ObjectBuilder) Title(t string) *ObjectBuilder       { b.kw.title = &t; return b }
func (b *ObjectBuilder) Description(d string) *ObjectBuilder { b.kw.description = &d; return b }
func (b *ObjectBuilder) Deprecated(v bool) *ObjectBuilder    { b.kw.deprecated = &v; return b }
func (b *ObjectBuilder) ReadOnly(v bool) *ObjectBuilder      { b.kw.readOnly = &v; return b }
func (b *ObjectBuilder) WriteOnly(v bool) *ObjectBuilder     { b.kw.writeOnly = &v; return b }

// ---- object keywords ----

// Property registers one named property schema.
func (b *ObjectBuilder) Property(name string, s specflow.Schema) *ObjectBuilder {
	if b.properties == nil {
		b.properties = map[string]specflow.Schema{}
	}
	b.properties[name] = s
	return b
}

// Properties replaces the whole properties mapping.
func (b *ObjectBuilder) Properties(props map[string]specflow.Schema) *ObjectBuilder {
	b.properties = props
	return b
}

// PatternProperties sets patternProperties. Keys must be valid regular
// expressions.
func (b *ObjectBuilder) PatternProperties(props map[string]specflow.Schema) *ObjectBuilder {
	b.patternProps = props
	return b
}

// AdditionalProperties sets additionalProperties to a schema or boolean.
func (b *ObjectBuilder) AdditionalProperties(v specflow.SchemaOrBool) *ObjectBuilder {
	b.additional = &v
	return b
}

// UnevaluatedProperties sets unevaluatedProperties to a schema or
// boolean.
func (b *ObjectBuilder) UnevaluatedProperties(v specflow.SchemaOrBool) *ObjectBuilder {
	b.uneval = &v
	return b
}

// Required sets required. Non-empty; every name must be a properties
// key when properties is also set.
func (b *ObjectBuilder) Required(names ...string) *ObjectBuilder {
	b.required = names
	b.requiredSet = true
	return b
}

// PropertyNames sets propertyNames, applied to property-key strings.
func (b *ObjectBuilder) PropertyNames(s specflow.Schema) *ObjectBuilder {
	b.propertyNames = s
	b.propNamesSet = true
	return b
}

// MinProperties sets minProperties.
func (b *ObjectBuilder) MinProperties(n int) *ObjectBuilder { b.minProperties = &n; return b }

// MaxProperties sets maxProperties.
func (b *ObjectBuilder) MaxProperties(n int) *ObjectBuilder { b.maxProperties = &n; return b }

// DependentRequired sets dependentRequired: property name to the
// non-empty list of property names it forces.
func (b *ObjectBuilder) DependentRequired(deps map[string][]string) *ObjectBuilder {
	b.depRequired = deps
	return b
}

// DependentSchemas sets dependentSchemas: property name to the schema
// applied when it is present.
func (b *ObjectBuilder) DependentSchemas(deps map[string]specflow.Schema) *ObjectBuilder {
	b.depSchemas = deps
	return b
}

// AllOf sets allOf; non-empty, any schema family.
func (b *ObjectBuilder) AllOf(ss ...specflow.Schema) *ObjectBuilder {
	b.allOf = ss
	b.allOfSet = true
	return b
}

// AnyOf sets anyOf; non-empty, any schema family.
func (b *ObjectBuilder) AnyOf(ss ...specflow.Schema) *ObjectBuilder {
	b.anyOf = ss
	b.anyOfSet = true
	return b
}

// OneOf sets oneOf; non-empty, any schema family.
func (b *ObjectBuilder) OneOf(ss ...specflow.Schema) *ObjectBuilder {
	b.oneOf = ss
	b.oneOfSet = true
	return b
}

// Not sets not.
func (b *ObjectBuilder) Not(s specflow.Schema) *ObjectBuilder {
	b.not = s
	b.notSet = true
	return b
}

// If sets if. if alone is a valid no-op conditional.
func (b *ObjectBuilder) If(s specflow.Schema) *ObjectBuilder {
	b.ifSchema = s
	b.ifSet = true
	return b
}

// Then sets then; requires If.
func (b *ObjectBuilder) Then(s specflow.Schema) *ObjectBuilder {
	b.thenSchema = s
	b.thenSet = true
	return b
}

// Else sets else; requires If.
func (b *ObjectBuilder) Else(s specflow.Schema) *ObjectBuilder {
	b.elseSchema = s
	b.elseSet = true
	return b
}

func requireMembers(keyword string, list []specflow.Schema) error {
	for _, s := range list {
		if s == nil {
			return specflow.NewShapeError(keyword, specflow.CodeInvalidType, nil)
		}
	}
	return nil
}

// Build validates every object rule fail-fast and returns the immutable
// node.
func (b *ObjectBuilder) Build() (*ObjectSchema, error) {
	if err := b.kw.validate(); err != nil {
		return nil, err
	}

	for key, s := range b.properties {
		if isBlank(key) {
			return nil, specflow.NewConstraintError("properties", specflow.CodeBlankString, nil)
		}
		if s == nil {
			return nil, specflow.NewShapeError("properties", specflow.CodeInvalidType, key)
		}
	}

	for key, s := range b.patternProps {
		if isBlank(key) {
			return nil, specflow.NewConstraintError("patternProperties", specflow.CodeBlankString, nil)
		}
		if _, err := regexp.Compile(key); err != nil {
			return nil, specflow.NewConstraintError("patternProperties", specflow.CodeInvalidPattern, key)
		}
		if s == nil {
			return nil, specflow.NewShapeError("patternProperties", specflow.CodeInvalidType, key)
		}
	}

	if b.additional != nil && !b.additional.IsBool() && b.additional.Schema() == nil {
		return nil, specflow.NewShapeError("additionalProperties", specflow.CodeInvalidType, nil)
	}
	if b.uneval != nil && !b.uneval.IsBool() && b.uneval.Schema() == nil {
		return nil, specflow.NewShapeError("unevaluatedProperties", specflow.CodeInvalidType, nil)
	}

	if b.requiredSet {
		if len(b.required) == 0 {
			return nil, specflow.NewConstraintError("required", specflow.CodeEmptyList, nil)
		}
		for _, name := range b.required {
			if isBlank(name) {
				return nil, specflow.NewConstraintError("required", specflow.CodeBlankString, nil)
			}
		}
	}

	if b.propNamesSet && b.propertyNames == nil {
		return nil, specflow.NewShapeError("propertyNames", specflow.CodeInvalidType, nil)
	}

	if b.minProperties != nil && *b.minProperties < 0 {
		return nil, specflow.NewConstraintError("minProperties", specflow.CodeNegativeBound, *b.minProperties)
	}
	if b.maxProperties != nil && *b.maxProperties < 0 {
		return nil, specflow.NewConstraintError("maxProperties", specflow.CodeNegativeBound, *b.maxProperties)
	}
	if b.minProperties != nil && b.maxProperties != nil && *b.minProperties > *b.maxProperties {
		return nil, specflow.NewConstraintError("minProperties/maxProperties", specflow.CodeMinOverMax, nil)
	}

	for key, names := range b.depRequired {
		if isBlank(key) {
			return nil, specflow.NewConstraintError("dependentRequired", specflow.CodeBlankString, nil)
		}
		if len(names) == 0 {
			return nil, specflow.NewConstraintError("dependentRequired", specflow.CodeEmptyList, key)
		}
		for _, n := range names {
			if isBlank(n) {
				return nil, specflow.NewConstraintError("dependentRequired", specflow.CodeBlankString, key)
			}
		}
	}

	for key, s := range b.depSchemas {
		if isBlank(key) {
			return nil, specflow.NewConstraintError("dependentSchemas", specflow.CodeBlankString, nil)
		}
		if s == nil {
			return nil, specflow.NewShapeError("dependentSchemas", specflow.CodeInvalidType, key)
		}
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
		if err := requireMembers(comp.keyword, comp.list); err != nil {
			return nil, err
		}
	}

	if b.notSet && b.not == nil {
		return nil, specflow.NewShapeError("not", specflow.CodeInvalidType, nil)
	}
	if (b.thenSet || b.elseSet) && !b.ifSet {
		return nil, specflow.NewConstraintError("then/else", specflow.CodeMissingDependency, "if")
	}
	if b.ifSet && b.ifSchema == nil {
		return nil, specflow.NewShapeError("if", specflow.CodeInvalidType, nil)
	}
	if b.thenSet && b.thenSchema == nil {
		return nil, specflow.NewShapeError("then", specflow.CodeInvalidType, nil)
	}
	if b.elseSet && b.elseSchema == nil {
		return nil, specflow.NewShapeError("else", specflow.CodeInvalidType, nil)
	}

	// Checked last, matching the rule order callers observe: every
	// required name must be a properties key when both are present.
	if b.requiredSet && b.properties != nil {
		for _, name := range b.required {
			if _, ok := b.properties[name]; !ok {
				return nil, specflow.NewConstraintError("required", specflow.CodeMissingDependency, name)
			}
		}
	}

	node := &ObjectSchema{
		kw:            b.kw.clone(),
		properties:    copyMap(b.properties),
		patternProps:  copyMap(b.patternProps),
		additional:    b.additional,
		uneval:        b.uneval,
		propertyNames: b.propertyNames,
		minProperties: b.minProperties,
		maxProperties: b.maxProperties,
		depSchemas:    copyMap(b.depSchemas),
		not:           b.not,
		ifSchema:      b.ifSchema,
		thenSchema:    b.thenSchema,
		elseSchema:    b.elseSchema,
	}
	if b.requiredSet {
		node.required = append([]string(nil), b.required...)
	}
	if b.depRequired != nil {
		node.depRequired = make(map[string][]string, len(b.depRequired))
		for k, v := range b.depRequired {
			node.depRequired[k] = append([]string(nil), v...)
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
func (b *ObjectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
