package importer

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	specflow "github.com/specflow/specflow-go"
)

// ImportYAML decodes a YAML stream and imports the first mapping
// document as a schema node.
func ImportYAML(data []byte) (specflow.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		m := yamlAnyToStringMap(node)
		if m == nil {
			continue
		}
		return Import(m)
	}
	return nil, errors.New("importer: no schema document found in YAML input")
}

// ImportYAMLAll imports every mapping document in a multi-document
// YAML stream.
func ImportYAMLAll(data []byte) ([]specflow.Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []specflow.Schema
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		m := yamlAnyToStringMap(node)
		if m == nil {
			continue
		}
		s, err := Import(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("importer: no schema document found in YAML input")
	}
	return out, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = yamlNormalizeValue(t[i])
		}
		return out
	default:
		return v
	}
}
