package specflow

import "github.com/specflow/specflow-go/ordered"

// Schema is the capability shared by every schema node: a fully
// validated, immutable document fragment that serializes itself into a
// canonical keyword mapping.
type Schema interface {
	// Document returns the ordered mapping of set keywords, canonical
	// spellings only, nested nodes serialized recursively. It never
	// fails: a node that exists has already passed construction.
	Document() *ordered.Map
}

// SchemaOrBool holds either a nested schema or a boolean, for keywords
// that accept both forms (additionalProperties, unevaluatedProperties,
// unevaluatedItems). The zero value holds neither and is rejected at
// build time.
type SchemaOrBool struct {
	schema Schema
	value  bool
	isBool bool
}

// SchemaValue wraps a nested schema.
func SchemaValue(s Schema) SchemaOrBool { return SchemaOrBool{schema: s} }

// BoolValue wraps a boolean.
func BoolValue(b bool) SchemaOrBool { return SchemaOrBool{value: b, isBool: true} }

// IsBool reports whether the boolean form is held.
func (sb SchemaOrBool) IsBool() bool { return sb.isBool }

// Bool returns the boolean form; meaningful only when IsBool is true.
func (sb SchemaOrBool) Bool() bool { return sb.value }

// Schema returns the schema form, or nil when the boolean form is held.
func (sb SchemaOrBool) Schema() Schema { return sb.schema }

// DocumentValue returns the JSON-representable serialization of the
// held value: the boolean itself, or the nested node's document.
func (sb SchemaOrBool) DocumentValue() any {
	if sb.isBool {
		return sb.value
	}
	return sb.schema.Document()
}
