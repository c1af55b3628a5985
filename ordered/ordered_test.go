package ordered_test

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/specflow/specflow-go/ordered"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := ordered.New()
	m.Set("b", 1)
	m.Set("a", "x")
	m.Set("c", true)

	keys := m.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Fatalf("expected insertion order [b a c], got %v", keys)
	}
	if v, ok := m.Get("a"); !ok || v != "x" {
		t.Fatalf("expected a=x, got %v ok=%v", v, ok)
	}
	if !m.Has("c") || m.Has("missing") {
		t.Fatalf("Has misbehaved")
	}
}

func TestMap_OverwriteKeepsPosition(t *testing.T) {
	m := ordered.New()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	keys := m.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected overwrite to keep position, got %v", keys)
	}
	if v, _ := m.Get("a"); v != 3 {
		t.Fatalf("expected overwritten value 3, got %v", v)
	}
}

func TestMap_MarshalJSON(t *testing.T) {
	inner := ordered.New()
	inner.Set("type", "string")

	m := ordered.New()
	m.Set("z", 1)
	m.Set("a", inner)
	m.Set("list", []any{inner, true})

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"z":1,"a":{"type":"string"},"list":[{"type":"string"},true]}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestMap_MarshalEmpty(t *testing.T) {
	out, err := json.Marshal(ordered.New())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("expected {}, got %s", out)
	}
}
