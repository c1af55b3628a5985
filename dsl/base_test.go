package dsl_test

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/dsl"
)

func mustCode(t *testing.T, err error, code string) *specflow.SchemaError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	se, ok := specflow.AsSchemaError(err)
	if !ok {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if se.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, se.Code, se)
	}
	return se
}

func TestBase_EmptyDocument(t *testing.T) {
	s := dsl.Base().MustBuild()
	doc := s.Document()
	if doc.Len() != 0 {
		t.Fatalf("expected empty document, got keys %v", doc.Keys())
	}
	out, err := json.Marshal(doc)
	if err != nil || string(out) != "{}" {
		t.Fatalf("expected {}, got %s err=%v", out, err)
	}
}

func TestBase_IDAndSchemaURIs(t *testing.T) {
	if _, err := dsl.Base().ID("   ").Build(); err == nil {
		t.Fatalf("expected blank $id to fail")
	} else {
		mustCode(t, err, specflow.CodeBlankString)
	}
	_, err := dsl.Base().ID("%zz").Build()
	se := mustCode(t, err, specflow.CodeInvalidURI)
	if se.Kind != specflow.KindConstraint {
		t.Fatalf("expected constraint kind, got %v", se.Kind)
	}
	_, err = dsl.Base().Schema("%zz").Build()
	mustCode(t, err, specflow.CodeInvalidURI)

	s, err := dsl.Base().
		ID("https://example.com/schemas/user").
		Schema("https://json-schema.org/draft/2020-12/schema").
		Build()
	if err != nil {
		t.Fatalf("expected valid URIs to build, got %v", err)
	}
	if v, _ := s.Document().Get("$id"); v != "https://example.com/schemas/user" {
		t.Fatalf("unexpected $id: %v", v)
	}
}

func TestBase_ReferenceExclusivity(t *testing.T) {
	_, err := dsl.Base().Ref("#/$defs/a").DynamicRef("#meta").Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)

	_, err = dsl.Base().Ref("#/$defs/a").RecursiveRef("#").Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)

	_, err = dsl.Base().DynamicRef("#meta").RecursiveRef("#").Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)

	for _, build := range []func() (*dsl.BaseSchema, error){
		func() (*dsl.BaseSchema, error) { return dsl.Base().Ref("#/$defs/a").Build() },
		func() (*dsl.BaseSchema, error) { return dsl.Base().DynamicRef("#meta").Build() },
		func() (*dsl.BaseSchema, error) { return dsl.Base().RecursiveRef("#").Build() },
	} {
		if _, err := build(); err != nil {
			t.Fatalf("expected single reference keyword to succeed, got %v", err)
		}
	}

	_, err = dsl.Base().Ref("  ").Build()
	mustCode(t, err, specflow.CodeBlankString)
	_, err = dsl.Base().Ref("%zz").Build()
	mustCode(t, err, specflow.CodeInvalidURIReference)
}

func TestBase_AnchorRules(t *testing.T) {
	_, err := dsl.Base().Anchor("node").DynamicAnchor("meta").Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)
	_, err = dsl.Base().Anchor("node").RecursiveAnchor(true).Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)
	_, err = dsl.Base().DynamicAnchor("meta").RecursiveAnchor(false).Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)

	_, err = dsl.Base().Anchor("9starts-with-digit").Build()
	mustCode(t, err, specflow.CodeInvalidAnchor)
	_, err = dsl.Base().Anchor("has#hash").Build()
	mustCode(t, err, specflow.CodeInvalidAnchor)
	_, err = dsl.Base().DynamicAnchor("").Build()
	mustCode(t, err, specflow.CodeBlankString)

	s, err := dsl.Base().Anchor("valid_anchor-1").Build()
	if err != nil {
		t.Fatalf("expected valid anchor, got %v", err)
	}
	if v, _ := s.Document().Get("$anchor"); v != "valid_anchor-1" {
		t.Fatalf("unexpected $anchor: %v", v)
	}

	s, err = dsl.Base().RecursiveAnchor(true).Build()
	if err != nil {
		t.Fatalf("expected recursiveAnchor alone to succeed, got %v", err)
	}
	if v, _ := s.Document().Get("$recursiveAnchor"); v != true {
		t.Fatalf("unexpected $recursiveAnchor: %v", v)
	}
}

func TestBase_Vocabulary(t *testing.T) {
	_, err := dsl.Base().Vocabulary(map[string]bool{"%zz": true}).Build()
	mustCode(t, err, specflow.CodeInvalidURI)

	s, err := dsl.Base().Vocabulary(map[string]bool{
		"https://json-schema.org/draft/2020-12/vocab/core":       true,
		"https://json-schema.org/draft/2020-12/vocab/validation": false,
	}).Build()
	if err != nil {
		t.Fatalf("expected valid vocabulary, got %v", err)
	}
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"$vocabulary":{"https://json-schema.org/draft/2020-12/vocab/core":true,"https://json-schema.org/draft/2020-12/vocab/validation":false}}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestBase_ReadOnlyWriteOnly(t *testing.T) {
	_, err := dsl.Base().ReadOnly(true).WriteOnly(true).Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)

	if _, err := dsl.Base().ReadOnly(true).Build(); err != nil {
		t.Fatalf("readOnly alone should succeed: %v", err)
	}
	if _, err := dsl.Base().WriteOnly(true).Build(); err != nil {
		t.Fatalf("writeOnly alone should succeed: %v", err)
	}
	if _, err := dsl.Base().ReadOnly(true).WriteOnly(false).Build(); err != nil {
		t.Fatalf("readOnly=true writeOnly=false should succeed: %v", err)
	}
}

func TestBase_DefinitionsContainers(t *testing.T) {
	_, err := dsl.Base().
		Definitions(map[string]any{"a": dsl.Base().MustBuild()}).
		Defs(map[string]any{"b": dsl.Base().MustBuild()}).
		Build()
	mustCode(t, err, specflow.CodeExclusiveKeywords)

	_, err = dsl.Base().Definitions(map[string]any{" ": dsl.Base().MustBuild()}).Build()
	mustCode(t, err, specflow.CodeBlankString)
	_, err = dsl.Base().Defs(map[string]any{"": 1}).Build()
	mustCode(t, err, specflow.CodeBlankString)

	// Nested nodes recurse; raw values pass through; keys sort.
	s, err := dsl.Base().Defs(map[string]any{
		"name": dsl.String().MinLength(1).MustBuild(),
		"max":  10,
	}).Build()
	if err != nil {
		t.Fatalf("expected $defs to build, got %v", err)
	}
	out, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"$defs":{"max":10,"name":{"type":"string","minLength":1}}}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestBase_CanonicalSpellingsAndOrder(t *testing.T) {
	s := dsl.Base().
		ID("https://example.com/s").
		Schema("https://json-schema.org/draft/2020-12/schema").
		Comment("internal note").
		Anchor("root").
		Title("Example").
		Description("demo schema").
		Deprecated(true).
		ReadOnly(true).
		MustBuild()

	got := s.Document().Keys()
	want := []string{"$id", "$schema", "$comment", "$anchor", "title", "description", "deprecated", "readOnly"}
	if len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, got)
		}
	}
}

func TestBase_SerializeTwiceIdentical(t *testing.T) {
	s := dsl.Base().
		ID("https://example.com/s").
		Defs(map[string]any{
			"a": dsl.Base().MustBuild(),
			"b": dsl.Integer().Minimum(0).MustBuild(),
		}).
		Vocabulary(map[string]bool{"https://example.com/vocab": true}).
		MustBuild()

	first, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(s.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("expected identical serialization, got %s vs %s", first, second)
	}
}
