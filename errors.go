package specflow

import (
	"errors"
	"fmt"

	"github.com/specflow/specflow-go/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// Shape codes: value of the wrong fundamental kind.
	CodeInvalidType    = "invalid_type"
	CodeWrongFamily    = "wrong_family"
	CodeUnknownKeyword = "unknown_keyword"

	// Constraint codes: right kind, wrong semantic value.
	CodeBlankString         = "blank_string"
	CodeInvalidURI          = "invalid_uri"
	CodeInvalidURIReference = "invalid_uri_reference"
	CodeInvalidAnchor       = "invalid_anchor"
	CodeInvalidPattern      = "invalid_pattern"
	CodeNegativeBound       = "negative_bound"
	CodeNonPositiveBound    = "non_positive_bound"
	CodeMinOverMax          = "min_over_max"
	CodeMissingDependency   = "missing_dependency"
	CodeExclusiveKeywords   = "exclusive_keywords"
	CodeEmptyList           = "empty_list"
	CodeDuplicateKeyword    = "duplicate_keyword"
	CodeUnknownType         = "unknown_type"
)

// ErrorKind separates the two failure classes of schema construction.
type ErrorKind int

const (
	// KindShape flags a value of the wrong fundamental kind, for example a
	// nil node where a schema was required.
	KindShape ErrorKind = iota
	// KindConstraint flags a value of the right kind with a wrong semantic
	// value: negative bound, min over max, missing dependency, forbidden
	// keyword combination.
	KindConstraint
)

// SchemaError is the single error surfaced by schema construction. The
// first violated rule aborts the build; there is no accumulation.
type SchemaError struct {
	Kind    ErrorKind
	Code    string // One of the codes listed above.
	Keyword string // Canonical spelling of the offending keyword.
	Value   any    // Optional: the offending value.
	Message string
}

// Error renders "keyword: message" with the offending value when present.
func (e *SchemaError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s: %v", e.Keyword, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Keyword, e.Message)
}

// NewShapeError builds a KindShape error with the catalog message for code.
func NewShapeError(keyword, code string, value any) *SchemaError {
	return &SchemaError{
		Kind:    KindShape,
		Code:    code,
		Keyword: keyword,
		Value:   value,
		Message: i18n.T(code, map[string]string{"keyword": keyword}),
	}
}

// NewConstraintError builds a KindConstraint error with the catalog
// message for code.
func NewConstraintError(keyword, code string, value any) *SchemaError {
	return &SchemaError{
		Kind:    KindConstraint,
		Code:    code,
		Keyword: keyword,
		Value:   value,
		Message: i18n.T(code, map[string]string{"keyword": keyword}),
	}
}

// AsSchemaError extracts a *SchemaError from an error using errors.As
// internally.
func AsSchemaError(err error) (*SchemaError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
