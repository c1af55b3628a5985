package dsl_test

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/dsl"
)

func TestObject_EmptySerializesTypeOnly(t *testing.T) {
	s := dsl.Object().MustBuild()
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"type":"object"}` {
		t.Fatalf("expected {\"type\":\"object\"}, got %s", out)
	}
}

func TestObject_RequiredConsistency(t *testing.T) {
	name := dsl.String().MustBuild()

	if _, err := dsl.Object().Property("name", name).Required("name").Build(); err != nil {
		t.Fatalf("expected required name present in properties to succeed, got %v", err)
	}

	_, err := dsl.Object().Property("name", name).Required("missing").Build()
	se := mustCode(t, err, specflow.CodeMissingDependency)
	if se.Value != "missing" {
		t.Fatalf("expected error to cite the missing name, got %v", se.Value)
	}
	if !strings.Contains(se.Error(), "missing") {
		t.Fatalf("expected message to cite the missing name, got %q", se.Error())
	}

	// Without properties the consistency rule is skipped.
	if _, err := dsl.Object().Required("anything").Build(); err != nil {
		t.Fatalf("expected required without properties to succeed, got %v", err)
	}
}

func TestObject_RequiredRules(t *testing.T) {
	_, err := dsl.Object().Required().Build()
	mustCode(t, err, specflow.CodeEmptyList)
	_, err = dsl.Object().Required("  ").Build()
	mustCode(t, err, specflow.CodeBlankString)
}

func TestObject_Properties(t *testing.T) {
	_, err := dsl.Object().Property(" ", dsl.String().MustBuild()).Build()
	mustCode(t, err, specflow.CodeBlankString)

	_, err = dsl.Object().Property("name", nil).Build()
	se := mustCode(t, err, specflow.CodeInvalidType)
	if se.Kind != specflow.KindShape {
		t.Fatalf("expected shape kind, got %v", se.Kind)
	}

	s := dsl.Object().
		Property("b", dsl.Boolean().MustBuild()).
		Property("a", dsl.Integer().MustBuild()).
		MustBuild()
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"type":"object","properties":{"a":{"type":"integer"},"b":{"type":"boolean"}}}` {
		t.Fatalf("unexpected properties serialization: %s", out)
	}
}

func TestObject_PatternProperties(t *testing.T) {
	_, err := dsl.Object().PatternProperties(map[string]specflow.Schema{
		"(unclosed": dsl.String().MustBuild(),
	}).Build()
	se := mustCode(t, err, specflow.CodeInvalidPattern)
	if se.Kind != specflow.KindConstraint {
		t.Fatalf("expected constraint kind, got %v", se.Kind)
	}

	s, err := dsl.Object().PatternProperties(map[string]specflow.Schema{
		"^[a-z]+$": dsl.String().MustBuild(),
	}).Build()
	if err != nil {
		t.Fatalf("expected valid pattern to succeed, got %v", err)
	}
	if !s.Document().Has("patternProperties") {
		t.Fatalf("expected patternProperties in document")
	}
}

func TestObject_PropertyBounds(t *testing.T) {
	if _, err := dsl.Object().MinProperties(0).MaxProperties(5).Build(); err != nil {
		t.Fatalf("expected bounds to succeed, got %v", err)
	}
	_, err := dsl.Object().MinProperties(-1).Build()
	mustCode(t, err, specflow.CodeNegativeBound)
	_, err = dsl.Object().MinProperties(3).MaxProperties(1).Build()
	mustCode(t, err, specflow.CodeMinOverMax)
}

func TestObject_DependentMaps(t *testing.T) {
	_, err := dsl.Object().DependentRequired(map[string][]string{"card": {}}).Build()
	mustCode(t, err, specflow.CodeEmptyList)
	_, err = dsl.Object().DependentRequired(map[string][]string{" ": {"x"}}).Build()
	mustCode(t, err, specflow.CodeBlankString)
	_, err = dsl.Object().DependentRequired(map[string][]string{"card": {" "}}).Build()
	mustCode(t, err, specflow.CodeBlankString)

	_, err = dsl.Object().DependentSchemas(map[string]specflow.Schema{"card": nil}).Build()
	mustCode(t, err, specflow.CodeInvalidType)

	s := dsl.Object().
		DependentRequired(map[string][]string{"card": {"number", "expiry"}}).
		DependentSchemas(map[string]specflow.Schema{"card": dsl.Object().MustBuild()}).
		MustBuild()
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"object","dependentRequired":{"card":["number","expiry"]},"dependentSchemas":{"card":{"type":"object"}}}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestObject_SchemaOrBoolKeywords(t *testing.T) {
	s := dsl.Object().AdditionalProperties(specflow.BoolValue(false)).MustBuild()
	if v, _ := s.Document().Get("additionalProperties"); v != false {
		t.Fatalf("expected additionalProperties=false, got %v", v)
	}

	s = dsl.Object().
		UnevaluatedProperties(specflow.SchemaValue(dsl.String().MustBuild())).
		MustBuild()
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"type":"object","unevaluatedProperties":{"type":"string"}}` {
		t.Fatalf("unexpected unevaluatedProperties: %s", out)
	}

	_, err = dsl.Object().AdditionalProperties(specflow.SchemaOrBool{}).Build()
	mustCode(t, err, specflow.CodeInvalidType)
}

func TestObject_CompositionAcceptsAnyFamily(t *testing.T) {
	_, err := dsl.Object().AllOf().Build()
	mustCode(t, err, specflow.CodeEmptyList)
	_, err = dsl.Object().AnyOf(nil).Build()
	mustCode(t, err, specflow.CodeInvalidType)

	// Generic membership: base, array, object, and scalar leaves mix.
	s, err := dsl.Object().AllOf(
		dsl.Base().MustBuild(),
		dsl.Array().MustBuild(),
		dsl.Object().MustBuild(),
		dsl.String().MustBuild(),
	).Build()
	if err != nil {
		t.Fatalf("expected heterogeneous allOf to succeed, got %v", err)
	}
	if v, _ := s.Document().Get("allOf"); len(v.([]any)) != 4 {
		t.Fatalf("expected four allOf members, got %v", v)
	}
}

func TestObject_Conditionals(t *testing.T) {
	obj := dsl.Object().MustBuild()

	_, err := dsl.Object().Then(obj).Build()
	mustCode(t, err, specflow.CodeMissingDependency)

	if _, err := dsl.Object().If(obj).Build(); err != nil {
		t.Fatalf("expected if alone to succeed, got %v", err)
	}

	s, err := dsl.Object().
		If(dsl.Object().Property("kind", dsl.String().Const("card").MustBuild()).MustBuild()).
		Then(dsl.Object().Required("number").MustBuild()).
		Else(obj).
		Build()
	if err != nil {
		t.Fatalf("expected if+then+else to succeed, got %v", err)
	}
	for _, k := range []string{"if", "then", "else"} {
		if !s.Document().Has(k) {
			t.Fatalf("expected %s in document", k)
		}
	}
}

func TestObject_PropertyNames(t *testing.T) {
	s := dsl.Object().PropertyNames(dsl.String().Pattern("^[a-z]+$").MustBuild()).MustBuild()
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"type":"object","propertyNames":{"type":"string","pattern":"^[a-z]+$"}}` {
		t.Fatalf("unexpected propertyNames: %s", out)
	}

	_, err = dsl.Object().PropertyNames(nil).Build()
	mustCode(t, err, specflow.CodeInvalidType)
}

func TestObject_SharedKeywordsFlowThrough(t *testing.T) {
	s := dsl.Object().
		ID("https://example.com/user").
		Title("User").
		Property("name", dsl.String().MustBuild()).
		MustBuild()
	keys := s.Document().Keys()
	want := []string{"$id", "title", "type", "properties"}
	if len(keys) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, keys)
		}
	}
}
