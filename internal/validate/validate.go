// Package validate checks untrusted JSON (persisted state, catalog entries)
// against JSON Schemas before it is decoded into typed structs.
package validate

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// InvalidError reports a document that failed validation.
type InvalidError struct {
	Schema string
	Err    error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s document: %v", e.Schema, e.Err)
}

func (e *InvalidError) Unwrap() error { return e.Err }

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// JSON validates raw against schema. A nil schema accepts everything.
func JSON(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidError{Schema: schema.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return check(schema, parsed)
}

// Value validates an already decoded value (for example a YAML node decoded
// into any) against schema.
func Value(schema *Schema, v any) error {
	if schema == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return &InvalidError{Schema: schema.Name, Err: fmt.Errorf("marshal value: %w", err)}
	}
	return JSON(schema, b)
}

func check(schema *Schema, parsed any) error {
	compiled, err := compiled(schema)
	if err != nil {
		return &InvalidError{Schema: schema.Name, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := compiled.Validate(parsed); err != nil {
		return &InvalidError{Schema: schema.Name, Err: err}
	}
	return nil
}

func compiled(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, not Go literals with int values.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	schemaCache.Store(schema.Name, s)
	return s, nil
}
