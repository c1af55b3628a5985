// Package importer turns loosely-typed schema documents (decoded JSON
// or YAML) into validated specflow nodes. It dispatches on the type
// keyword, infers object/array shapes from characteristic keywords when
// type is absent, and rejects unknown keywords: the vocabulary is
// closed.
package importer

import (
	"math"

	json "github.com/goccy/go-json"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/dsl"
)

// Import builds a schema node from a loosely-typed document. Builder
// validation errors surface unchanged as *specflow.SchemaError.
func Import(doc map[string]any) (specflow.Schema, error) {
	typ, nullable, err := docType(doc)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		typ = inferType(doc)
	}
	switch typ {
	case "object":
		return importObject(doc)
	case "array":
		return importArray(doc)
	case "string":
		return importString(doc, nullable)
	case "integer":
		return importInteger(doc, nullable)
	case "number":
		return importNumber(doc, nullable)
	case "boolean":
		return importBoolean(doc, nullable)
	case "":
		return importBase(doc)
	default:
		return nil, specflow.NewConstraintError("type", specflow.CodeUnknownType, typ)
	}
}

// ImportJSON decodes a JSON document and imports it.
func ImportJSON(data []byte) (specflow.Schema, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return Import(doc)
}

// docType reads the type keyword: a plain string, or a two-element
// list pairing a primitive type with "null" (nullable scalar form).
func docType(doc map[string]any) (typ string, nullable bool, err error) {
	raw, ok := doc["type"]
	if !ok {
		return "", false, nil
	}
	switch t := raw.(type) {
	case string:
		return t, false, nil
	case []any:
		if len(t) != 2 {
			return "", false, specflow.NewConstraintError("type", specflow.CodeUnknownType, raw)
		}
		var base string
		sawNull := false
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return "", false, specflow.NewShapeError("type", specflow.CodeInvalidType, raw)
			}
			if s == "null" {
				sawNull = true
				continue
			}
			base = s
		}
		if !sawNull || base == "" {
			return "", false, specflow.NewConstraintError("type", specflow.CodeUnknownType, raw)
		}
		return base, true, nil
	default:
		return "", false, specflow.NewShapeError("type", specflow.CodeInvalidType, raw)
	}
}

// inferType guesses object/array from characteristic keywords when type
// is absent; anything else imports as a generic base node.
func inferType(doc map[string]any) string {
	for _, k := range []string{
		"properties", "patternProperties", "additionalProperties",
		"unevaluatedProperties", "required", "propertyNames",
		"minProperties", "maxProperties", "dependentRequired", "dependentSchemas",
	} {
		if _, ok := doc[k]; ok {
			return "object"
		}
	}
	for _, k := range []string{
		"items", "prefixItems", "contains", "minItems", "maxItems",
		"minContains", "maxContains", "uniqueItems", "unevaluatedItems",
	} {
		if _, ok := doc[k]; ok {
			return "array"
		}
	}
	return ""
}

// ---- shared keyword parsing ----

// sharedVals buffers the keywords common to base/array/object documents
// so each shape importer can replay them onto its own builder type.
type sharedVals struct {
	id, schemaURI, ref, dynamicRef, recursiveRef *string
	comment, anchor, dynamicAnchor               *string
	recursiveAnchor, deprecated                  *bool
	readOnly, writeOnly                          *bool
	title, description                           *string
	definitions, defs                            map[string]any
	vocabulary                                   map[string]bool
}

// parseSharedKeyword handles one shared keyword; reports false when the
// key is not a shared keyword.
func parseSharedKeyword(key string, val any, sv *sharedVals) (bool, error) {
	switch key {
	case "$id", "$schema", "$ref", "$dynamicRef", "$recursiveRef",
		"$comment", "$anchor", "$dynamicAnchor", "title", "description":
		s, err := asString(key, val)
		if err != nil {
			return false, err
		}
		switch key {
		case "$id":
			sv.id = &s
		case "$schema":
			sv.schemaURI = &s
		case "$ref":
			sv.ref = &s
		case "$dynamicRef":
			sv.dynamicRef = &s
		case "$recursiveRef":
			sv.recursiveRef = &s
		case "$comment":
			sv.comment = &s
		case "$anchor":
			sv.anchor = &s
		case "$dynamicAnchor":
			sv.dynamicAnchor = &s
		case "title":
			sv.title = &s
		case "description":
			sv.description = &s
		}
		return true, nil
	case "$recursiveAnchor", "deprecated", "readOnly", "writeOnly":
		b, err := asBool(key, val)
		if err != nil {
			return false, err
		}
		switch key {
		case "$recursiveAnchor":
			sv.recursiveAnchor = &b
		case "deprecated":
			sv.deprecated = &b
		case "readOnly":
			sv.readOnly = &b
		case "writeOnly":
			sv.writeOnly = &b
		}
		return true, nil
	case "definitions", "$defs":
		c, err := asContainer(key, val)
		if err != nil {
			return false, err
		}
		if key == "definitions" {
			sv.definitions = c
		} else {
			sv.defs = c
		}
		return true, nil
	case "$vocabulary":
		m, err := asStringMap(key, val)
		if err != nil {
			return false, err
		}
		vocab := make(map[string]bool, len(m))
		for uri, v := range m {
			b, ok := v.(bool)
			if !ok {
				return false, specflow.NewShapeError(key, specflow.CodeInvalidType, v)
			}
			vocab[uri] = b
		}
		sv.vocabulary = vocab
		return true, nil
	}
	return false, nil
}

// ---- shape importers ----

func importBase(doc map[string]any) (specflow.Schema, error) {
	b := dsl.Base()
	sv := sharedVals{}
	for key, val := range doc {
		if key == "type" {
			continue
		}
		ok, err := parseSharedKeyword(key, val, &sv)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	applySharedBase(b, sv)
	return b.Build()
}

func importArray(doc map[string]any) (specflow.Schema, error) {
	b := dsl.Array()
	sv := sharedVals{}
	for key, val := range doc {
		if key == "type" {
			continue
		}
		if ok, err := parseSharedKeyword(key, val, &sv); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		switch key {
		case "items":
			switch v := val.(type) {
			case map[string]any:
				s, err := Import(v)
				if err != nil {
					return nil, err
				}
				b.Items(s)
			case []any:
				list, err := asSchemaList(key, v)
				if err != nil {
					return nil, err
				}
				b.ItemsTuple(list...)
			default:
				return nil, specflow.NewShapeError(key, specflow.CodeInvalidType, val)
			}
		case "prefixItems":
			list, err := asSchemas(key, val)
			if err != nil {
				return nil, err
			}
			b.PrefixItems(list...)
		case "contains":
			s, err := asSchema(key, val)
			if err != nil {
				return nil, err
			}
			b.Contains(s)
		case "minItems", "maxItems", "minContains", "maxContains":
			n, err := asInt(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "minItems":
				b.MinItems(n)
			case "maxItems":
				b.MaxItems(n)
			case "minContains":
				b.MinContains(n)
			case "maxContains":
				b.MaxContains(n)
			}
		case "uniqueItems":
			v, err := asBool(key, val)
			if err != nil {
				return nil, err
			}
			b.UniqueItems(v)
		case "unevaluatedItems":
			sb, err := asSchemaOrBool(key, val)
			if err != nil {
				return nil, err
			}
			b.UnevaluatedItems(sb)
		case "allOf", "anyOf", "oneOf":
			list, err := asSchemas(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "allOf":
				b.AllOf(list...)
			case "anyOf":
				b.AnyOf(list...)
			case "oneOf":
				b.OneOf(list...)
			}
		case "not", "if", "then", "else":
			s, err := asSchema(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "not":
				b.Not(s)
			case "if":
				b.If(s)
			case "then":
				b.Then(s)
			case "else":
				b.Else(s)
			}
		default:
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	applySharedArray(b, sv)
	return b.Build()
}

func importObject(doc map[string]any) (specflow.Schema, error) {
	b := dsl.Object()
	sv := sharedVals{}
	for key, val := range doc {
		if key == "type" {
			continue
		}
		if ok, err := parseSharedKeyword(key, val, &sv); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		switch key {
		case "properties", "patternProperties", "dependentSchemas":
			m, err := asSchemaMap(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "properties":
				b.Properties(m)
			case "patternProperties":
				b.PatternProperties(m)
			case "dependentSchemas":
				b.DependentSchemas(m)
			}
		case "additionalProperties", "unevaluatedProperties":
			sb, err := asSchemaOrBool(key, val)
			if err != nil {
				return nil, err
			}
			if key == "additionalProperties" {
				b.AdditionalProperties(sb)
			} else {
				b.UnevaluatedProperties(sb)
			}
		case "required":
			names, err := asStringSlice(key, val)
			if err != nil {
				return nil, err
			}
			b.Required(names...)
		case "propertyNames":
			s, err := asSchema(key, val)
			if err != nil {
				return nil, err
			}
			b.PropertyNames(s)
		case "minProperties", "maxProperties":
			n, err := asInt(key, val)
			if err != nil {
				return nil, err
			}
			if key == "minProperties" {
				b.MinProperties(n)
			} else {
				b.MaxProperties(n)
			}
		case "dependentRequired":
			m, err := asStringMap(key, val)
			if err != nil {
				return nil, err
			}
			deps := make(map[string][]string, len(m))
			for k, v := range m {
				names, err := asStringSlice(key, v)
				if err != nil {
					return nil, err
				}
				deps[k] = names
			}
			b.DependentRequired(deps)
		case "allOf", "anyOf", "oneOf":
			list, err := asSchemas(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "allOf":
				b.AllOf(list...)
			case "anyOf":
				b.AnyOf(list...)
			case "oneOf":
				b.OneOf(list...)
			}
		case "not", "if", "then", "else":
			s, err := asSchema(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "not":
				b.Not(s)
			case "if":
				b.If(s)
			case "then":
				b.Then(s)
			case "else":
				b.Else(s)
			}
		default:
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	applySharedObject(b, sv)
	return b.Build()
}

func importString(doc map[string]any, nullable bool) (specflow.Schema, error) {
	b := dsl.String()
	if nullable {
		b.Nullable()
	}
	for key, val := range doc {
		switch key {
		case "type":
		case "title", "description", "default", "const", "pattern":
			s, err := asString(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "title":
				b.Title(s)
			case "description":
				b.Description(s)
			case "default":
				b.Default(s)
			case "const":
				b.Const(s)
			case "pattern":
				b.Pattern(s)
			}
		case "enum":
			values, err := asStringSlice(key, val)
			if err != nil {
				return nil, err
			}
			b.Enum(values...)
		case "minLength", "maxLength":
			n, err := asInt(key, val)
			if err != nil {
				return nil, err
			}
			if key == "minLength" {
				b.MinLength(n)
			} else {
				b.MaxLength(n)
			}
		default:
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	return b.Build()
}

func importInteger(doc map[string]any, nullable bool) (specflow.Schema, error) {
	b := dsl.Integer()
	if nullable {
		b.Nullable()
	}
	for key, val := range doc {
		switch key {
		case "type":
		case "title", "description":
			s, err := asString(key, val)
			if err != nil {
				return nil, err
			}
			if key == "title" {
				b.Title(s)
			} else {
				b.Description(s)
			}
		case "default", "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf":
			n, err := asInt(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "default":
				b.Default(n)
			case "minimum":
				b.Minimum(n)
			case "maximum":
				b.Maximum(n)
			case "exclusiveMinimum":
				b.ExclusiveMinimum(n)
			case "exclusiveMaximum":
				b.ExclusiveMaximum(n)
			case "multipleOf":
				b.MultipleOf(n)
			}
		default:
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	return b.Build()
}

func importNumber(doc map[string]any, nullable bool) (specflow.Schema, error) {
	b := dsl.Number()
	if nullable {
		b.Nullable()
	}
	for key, val := range doc {
		switch key {
		case "type":
		case "title", "description":
			s, err := asString(key, val)
			if err != nil {
				return nil, err
			}
			if key == "title" {
				b.Title(s)
			} else {
				b.Description(s)
			}
		case "default", "minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf":
			f, err := asFloat(key, val)
			if err != nil {
				return nil, err
			}
			switch key {
			case "default":
				b.Default(f)
			case "minimum":
				b.Minimum(f)
			case "maximum":
				b.Maximum(f)
			case "exclusiveMinimum":
				b.ExclusiveMinimum(f)
			case "exclusiveMaximum":
				b.ExclusiveMaximum(f)
			case "multipleOf":
				b.MultipleOf(f)
			}
		default:
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	return b.Build()
}

func importBoolean(doc map[string]any, nullable bool) (specflow.Schema, error) {
	b := dsl.Boolean()
	if nullable {
		b.Nullable()
	}
	for key, val := range doc {
		switch key {
		case "type":
		case "title", "description":
			s, err := asString(key, val)
			if err != nil {
				return nil, err
			}
			if key == "title" {
				b.Title(s)
			} else {
				b.Description(s)
			}
		case "default":
			v, err := asBool(key, val)
			if err != nil {
				return nil, err
			}
			b.Default(v)
		default:
			return nil, specflow.NewShapeError(key, specflow.CodeUnknownKeyword, nil)
		}
	}
	return b.Build()
}

// ---- value conversion helpers ----

func asString(keyword string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	return s, nil
}

func asBool(keyword string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	return b, nil
}

// asInt accepts the integer encodings JSON and YAML decoders produce.
func asInt(keyword string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
		}
		return int(i), nil
	default:
		return 0, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
}

func asFloat(keyword string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
		}
		return f, nil
	default:
		return 0, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
}

func asStringSlice(keyword string, v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			s, ok := e.(string)
			if !ok {
				return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
}

func asStringMap(keyword string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	return m, nil
}

func asSchema(keyword string, v any) (specflow.Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	return Import(m)
}

func asSchemas(keyword string, v any) ([]specflow.Schema, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	return asSchemaList(keyword, list)
}

func asSchemaList(keyword string, list []any) ([]specflow.Schema, error) {
	out := make([]specflow.Schema, 0, len(list))
	for _, e := range list {
		s, err := asSchema(keyword, e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func asSchemaMap(keyword string, v any) (map[string]specflow.Schema, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	out := make(map[string]specflow.Schema, len(m))
	for k, e := range m {
		s, err := asSchema(keyword, e)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func asSchemaOrBool(keyword string, v any) (specflow.SchemaOrBool, error) {
	switch t := v.(type) {
	case bool:
		return specflow.BoolValue(t), nil
	case map[string]any:
		s, err := Import(t)
		if err != nil {
			return specflow.SchemaOrBool{}, err
		}
		return specflow.SchemaValue(s), nil
	default:
		return specflow.SchemaOrBool{}, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
}

// asContainer converts a definitions/$defs value: nested schema
// documents are imported, anything else passes through raw.
func asContainer(keyword string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, specflow.NewShapeError(keyword, specflow.CodeInvalidType, v)
	}
	out := make(map[string]any, len(m))
	for k, e := range m {
		if nested, ok := e.(map[string]any); ok {
			s, err := Import(nested)
			if err != nil {
				return nil, err
			}
			out[k] = s
			continue
		}
		out[k] = e
	}
	return out, nil
}

// ---- shared keyword replay (one per builder type; the builders share
// no interface because every setter returns its own builder) ----

func applySharedBase(b *dsl.BaseBuilder, sv sharedVals) {
	if sv.id != nil {
		b.ID(*sv.id)
	}
	if sv.schemaURI != nil {
		b.Schema(*sv.schemaURI)
	}
	if sv.ref != nil {
		b.Ref(*sv.ref)
	}
	if sv.dynamicRef != nil {
		b.DynamicRef(*sv.dynamicRef)
	}
	if sv.recursiveRef != nil {
		b.RecursiveRef(*sv.recursiveRef)
	}
	if sv.definitions != nil {
		b.Definitions(sv.definitions)
	}
	if sv.defs != nil {
		b.Defs(sv.defs)
	}
	if sv.comment != nil {
		b.Comment(*sv.comment)
	}
	if sv.anchor != nil {
		b.Anchor(*sv.anchor)
	}
	if sv.dynamicAnchor != nil {
		b.DynamicAnchor(*sv.dynamicAnchor)
	}
	if sv.recursiveAnchor != nil {
		b.RecursiveAnchor(*sv.recursiveAnchor)
	}
	if sv.vocabulary != nil {
		b.Vocabulary(sv.vocabulary)
	}
	if sv.title != nil {
		b.Title(*sv.title)
	}
	if sv.description != nil {
		b.Description(*sv.description)
	}
	if sv.deprecated != nil {
		b.Deprecated(*sv.deprecated)
	}
	if sv.readOnly != nil {
		b.ReadOnly(*sv.readOnly)
	}
	if sv.writeOnly != nil {
		b.WriteOnly(*sv.writeOnly)
	}
}

func applySharedArray(b *dsl.ArrayBuilder, sv sharedVals) {
	if sv.id != nil {
		b.ID(*sv.id)
	}
	if sv.schemaURI != nil {
		b.Schema(*sv.schemaURI)
	}
	if sv.ref != nil {
		b.Ref(*sv.ref)
	}
	if sv.dynamicRef != nil {
		b.DynamicRef(*sv.dynamicRef)
	}
	if sv.recursiveRef != nil {
		b.RecursiveRef(*sv.recursiveRef)
	}
	if sv.definitions != nil {
		b.Definitions(sv.definitions)
	}
	if sv.defs != nil {
		b.Defs(sv.defs)
	}
	if sv.comment != nil {
		b.Comment(*sv.comment)
	}
	if sv.anchor != nil {
		b.Anchor(*sv.anchor)
	}
	if sv.dynamicAnchor != nil {
		b.DynamicAnchor(*sv.dynamicAnchor)
	}
	if sv.recursiveAnchor != nil {
		b.RecursiveAnchor(*sv.recursiveAnchor)
	}
	if sv.vocabulary != nil {
		b.Vocabulary(sv.vocabulary)
	}
	if sv.title != nil {
		b.Title(*sv.title)
	}
	if sv.description != nil {
		b.Description(*sv.description)
	}
	if sv.deprecated != nil {
		b.Deprecated(*sv.deprecated)
	}
	if sv.readOnly != nil {
		b.ReadOnly(*sv.readOnly)
	}
	if sv.writeOnly != nil {
		b.WriteOnly(*sv.writeOnly)
	}
}

func applySharedObject(b *dsl.ObjectBuilder, sv sharedVals) {
	if sv.id != nil {
		b.ID(*sv.id)
	}
	if sv.schemaURI != nil {
		b.Schema(*sv.schemaURI)
	}
	if sv.ref != nil {
		b.Ref(*sv.ref)
	}
	if sv.dynamicRef != nil {
		b.DynamicRef(*sv.dynamicRef)
	}
	if sv.recursiveRef != nil {
		b.RecursiveRef(*sv.recursiveRef)
	}
	if sv.definitions != nil {
		b.Definitions(sv.definitions)
	}
	if sv.defs != nil {
		b.Defs(sv.defs)
	}
	if sv.comment != nil {
		b.Comment(*sv.comment)
	}
	if sv.anchor != nil {
		b.Anchor(*sv.anchor)
	}
	if sv.dynamicAnchor != nil {
		b.DynamicAnchor(*sv.dynamicAnchor)
	}
	if sv.recursiveAnchor != nil {
		b.RecursiveAnchor(*sv.recursiveAnchor)
	}
	if sv.vocabulary != nil {
		b.Vocabulary(sv.vocabulary)
	}
	if sv.title != nil {
		b.Title(*sv.title)
	}
	if sv.description != nil {
		b.Description(*sv.description)
	}
	if sv.deprecated != nil {
		b.Deprecated(*sv.deprecated)
	}
	if sv.readOnly != nil {
		b.ReadOnly(*sv.readOnly)
	}
	if sv.writeOnly != nil {
		b.WriteOnly(*sv.writeOnly)
	}
}
