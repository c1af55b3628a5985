package dsl

import (
	"regexp"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/ordered"
)

// Scalar leaf schemas. They carry only annotation and constraint
// keywords for their primitive type, and satisfy specflow.Schema so
// they nest anywhere a node does.

// scalarType emits the type keyword, widened to ["<t>", "null"] for
// nullable leaves.
func scalarType(m *ordered.Map, typ string, nullable bool) {
	if nullable {
		m.Set("type", []string{typ, "null"})
		return
	}
	m.Set("type", typ)
}

// StringSchema is a validated string leaf.
type StringSchema struct {
	title       *string
	description *string
	defaultVal  *string
	constVal    *string
	enum        []string
	minLength   *int
	maxLength   *int
	pattern     *string
	nullable    bool
}

func (s *StringSchema) Document() *ordered.Map {
	m := ordered.New()
	scalarType(m, "string", s.nullable)
	if s.title != nil {
		m.Set("title", *s.title)
	}
	if s.description != nil {
		m.Set("description", *s.description)
	}
	if s.defaultVal != nil {
		m.Set("default", *s.defaultVal)
	}
	if s.constVal != nil {
		m.Set("const", *s.constVal)
	}
	if s.enum != nil {
		m.Set("enum", append([]string(nil), s.enum...))
	}
	if s.minLength != nil {
		m.Set("minLength", *s.minLength)
	}
	if s.maxLength != nil {
		m.Set("maxLength", *s.maxLength)
	}
	if s.pattern != nil {
		m.Set("pattern", *s.pattern)
	}
	return m
}

// StringBuilder accumulates keywords for a string leaf.
type StringBuilder struct{ s StringSchema }

// String creates a new string leaf builder.
func String() *StringBuilder { return &StringBuilder{} }

func (b *StringBuilder) Title(t string) *StringBuilder       { b.s.title = &t; return b }
func (b *StringBuilder) Description(d string) *StringBuilder { b.s.description = &d; return b }
func (b *StringBuilder) Default(v string) *StringBuilder     { b.s.defaultVal = &v; return b }
func (b *StringBuilder) Const(v string) *StringBuilder       { b.s.constVal = &v; return b }
func (b *StringBuilder) Enum(values ...string) *StringBuilder {
	b.s.enum = values
	if b.s.enum == nil {
		b.s.enum = []string{}
	}
	return b
}
func (b *StringBuilder) MinLength(n int) *StringBuilder   { b.s.minLength = &n; return b }
func (b *StringBuilder) MaxLength(n int) *StringBuilder   { b.s.maxLength = &n; return b }
func (b *StringBuilder) Pattern(p string) *StringBuilder  { b.s.pattern = &p; return b }
func (b *StringBuilder) Nullable() *StringBuilder         { b.s.nullable = true; return b }

// Build validates the string constraints fail-fast.
func (b *StringBuilder) Build() (*StringSchema, error) {
	if b.s.minLength != nil && *b.s.minLength < 0 {
		return nil, specflow.NewConstraintError("minLength", specflow.CodeNegativeBound, *b.s.minLength)
	}
	if b.s.maxLength != nil && *b.s.maxLength < 0 {
		return nil, specflow.NewConstraintError("maxLength", specflow.CodeNegativeBound, *b.s.maxLength)
	}
	if b.s.minLength != nil && b.s.maxLength != nil && *b.s.minLength > *b.s.maxLength {
		return nil, specflow.NewConstraintError("minLength/maxLength", specflow.CodeMinOverMax, nil)
	}
	if b.s.pattern != nil {
		if _, err := regexp.Compile(*b.s.pattern); err != nil {
			return nil, specflow.NewConstraintError("pattern", specflow.CodeInvalidPattern, *b.s.pattern)
		}
	}
	if b.s.enum != nil && len(b.s.enum) == 0 {
		return nil, specflow.NewConstraintError("enum", specflow.CodeEmptyList, nil)
	}
	node := b.s
	node.enum = append([]string(nil), b.s.enum...)
	return &node, nil
}

func (b *StringBuilder) MustBuild() *StringSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// IntegerSchema is a validated integer leaf.
type IntegerSchema struct {
	title        *string
	description  *string
	defaultVal   *int
	minimum      *int
	maximum      *int
	exclusiveMin *int
	exclusiveMax *int
	multipleOf   *int
	nullable     bool
}

func (s *IntegerSchema) Document() *ordered.Map {
	m := ordered.New()
	scalarType(m, "integer", s.nullable)
	if s.title != nil {
		m.Set("title", *s.title)
	}
	if s.description != nil {
		m.Set("description", *s.description)
	}
	if s.defaultVal != nil {
		m.Set("default", *s.defaultVal)
	}
	if s.minimum != nil {
		m.Set("minimum", *s.minimum)
	}
	if s.maximum != nil {
		m.Set("maximum", *s.maximum)
	}
	if s.exclusiveMin != nil {
		m.Set("exclusiveMinimum", *s.exclusiveMin)
	}
	if s.exclusiveMax != nil {
		m.Set("exclusiveMaximum", *s.exclusiveMax)
	}
	if s.multipleOf != nil {
		m.Set("multipleOf", *s.multipleOf)
	}
	return m
}

// IntegerBuilder accumulates keywords for an integer leaf.
type IntegerBuilder struct{ s IntegerSchema }

// Integer creates a new integer leaf builder.
func Integer() *IntegerBuilder { return &IntegerBuilder{} }

func (b *IntegerBuilder) Title(t string) *IntegerBuilder        { b.s.title = &t; return b }
func (b *IntegerBuilder) Description(d string) *IntegerBuilder  { b.s.description = &d; return b }
func (b *IntegerBuilder) Default(v int) *IntegerBuilder         { b.s.defaultVal = &v; return b }
func (b *IntegerBuilder) Minimum(v int) *IntegerBuilder         { b.s.minimum = &v; return b }
func (b *IntegerBuilder) Maximum(v int) *IntegerBuilder         { b.s.maximum = &v; return b }
func (b *IntegerBuilder) ExclusiveMinimum(v int) *IntegerBuilder { b.s.exclusiveMin = &v; return b }
func (b *IntegerBuilder) ExclusiveMaximum(v int) *IntegerBuilder { b.s.exclusiveMax = &v; return b }
func (b *IntegerBuilder) MultipleOf(v int) *IntegerBuilder      { b.s.multipleOf = &v; return b }
func (b *IntegerBuilder) Nullable() *IntegerBuilder             { b.s.nullable = true; return b }

// Build validates the integer constraints fail-fast.
func (b *IntegerBuilder) Build() (*IntegerSchema, error) {
	if b.s.minimum != nil && b.s.maximum != nil && *b.s.minimum > *b.s.maximum {
		return nil, specflow.NewConstraintError("minimum/maximum", specflow.CodeMinOverMax, nil)
	}
	if b.s.multipleOf != nil && *b.s.multipleOf <= 0 {
		return nil, specflow.NewConstraintError("multipleOf", specflow.CodeNonPositiveBound, *b.s.multipleOf)
	}
	node := b.s
	return &node, nil
}

func (b *IntegerBuilder) MustBuild() *IntegerSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// NumberSchema is a validated number leaf.
type NumberSchema struct {
	title        *string
	description  *string
	defaultVal   *float64
	minimum      *float64
	maximum      *float64
	exclusiveMin *float64
	exclusiveMax *float64
	multipleOf   *float64
	nullable     bool
}

func (s *NumberSchema) Document() *ordered.Map {
	m := ordered.New()
	scalarType(m, "number", s.nullable)
	if s.title != nil {
		m.Set("title", *s.title)
	}
	if s.description != nil {
		m.Set("description", *s.description)
	}
	if s.defaultVal != nil {
		m.Set("default", *s.defaultVal)
	}
	if s.minimum != nil {
		m.Set("minimum", *s.minimum)
	}
	if s.maximum != nil {
		m.Set("maximum", *s.maximum)
	}
	if s.exclusiveMin != nil {
		m.Set("exclusiveMinimum", *s.exclusiveMin)
	}
	if s.exclusiveMax != nil {
		m.Set("exclusiveMaximum", *s.exclusiveMax)
	}
	if s.multipleOf != nil {
		m.Set("multipleOf", *s.multipleOf)
	}
	return m
}

// NumberBuilder accumulates keywords for a number leaf.
type NumberBuilder struct{ s NumberSchema }

// Number creates a new number leaf builder.
func Number() *NumberBuilder { return &NumberBuilder{} }

func (b *NumberBuilder) Title(t string) *NumberBuilder       { b.s.title = &t; return b }
func (b *NumberBuilder) Description(d string) *NumberBuilder { b.s.description = &d; return b }
func (b *NumberBuilder) Default(v float64) *NumberBuilder    { b.s.defaultVal = &v; return b }
func (b *NumberBuilder) Minimum(v float64) *NumberBuilder    { b.s.minimum = &v; return b }
func (b *NumberBuilder) Maximum(v float64) *NumberBuilder    { b.s.maximum = &v; return b }
func (b *NumberBuilder) ExclusiveMinimum(v float64) *NumberBuilder {
	b.s.exclusiveMin = &v
	return b
}
func (b *NumberBuilder) ExclusiveMaximum(v float64) *NumberBuilder {
	b.s.exclusiveMax = &v
	return b
}
func (b *NumberBuilder) MultipleOf(v float64) *NumberBuilder { b.s.multipleOf = &v; return b }
func (b *NumberBuilder) Nullable() *NumberBuilder            { b.s.nullable = true; return b }

// Build validates the number constraints fail-fast.
func (b *NumberBuilder) Build() (*NumberSchema, error) {
	if b.s.minimum != nil && b.s.maximum != nil && *b.s.minimum > *b.s.maximum {
		return nil, specflow.NewConstraintError("minimum/maximum", specflow.CodeMinOverMax, nil)
	}
	if b.s.multipleOf != nil && *b.s.multipleOf <= 0 {
		return nil, specflow.NewConstraintError("multipleOf", specflow.CodeNonPositiveBound, *b.s.multipleOf)
	}
	node := b.s
	return &node, nil
}

func (b *NumberBuilder) MustBuild() *NumberSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// BooleanSchema is a boolean leaf; it has no constraints to violate.
type BooleanSchema struct {
	title       *string
	description *string
	defaultVal  *bool
	nullable    bool
}

func (s *BooleanSchema) Document() *ordered.Map {
	m := ordered.New()
	scalarType(m, "boolean", s.nullable)
	if s.title != nil {
		m.Set("title", *s.title)
	}
	if s.description != nil {
		m.Set("description", *s.description)
	}
	if s.defaultVal != nil {
		m.Set("default", *s.defaultVal)
	}
	return m
}

// BooleanBuilder accumulates keywords for a boolean leaf.
type BooleanBuilder struct{ s BooleanSchema }

// Boolean creates a new boolean leaf builder.
func Boolean() *BooleanBuilder { return &BooleanBuilder{} }

func (b *BooleanBuilder) Title(t string) *BooleanBuilder       { b.s.title = &t; return b }
func (b *BooleanBuilder) Description(d string) *BooleanBuilder { b.s.description = &d; return b }
func (b *BooleanBuilder) Default(v bool) *BooleanBuilder       { b.s.defaultVal = &v; return b }
func (b *BooleanBuilder) Nullable() *BooleanBuilder            { b.s.nullable = true; return b }

// Build never fails for a boolean leaf but keeps the builder contract.
func (b *BooleanBuilder) Build() (*BooleanSchema, error) {
	node := b.s
	return &node, nil
}

func (b *BooleanBuilder) MustBuild() *BooleanSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
