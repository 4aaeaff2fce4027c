package scenario

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "lasercircuit://scenario.schema.json"

// schemaJSON describes the shape of a scenario document. Symbol alphabets,
// coordinate ranges and directions are left to the input validators so
// that a scenario reports the same messages an interactive session does.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "lasercircuit scenario",
  "type": "object",
  "required": ["board"],
  "additionalProperties": false,
  "properties": {
    "board": {
      "type": "object",
      "required": ["width", "height"],
      "additionalProperties": false,
      "properties": {
        "width":  {"type": "integer", "maximum": 1000},
        "height": {"type": "integer", "maximum": 1000}
      }
    },
    "emitters":  {"type": "array", "maxItems": 10, "items": {"$ref": "#/$defs/placement"}},
    "receivers": {"type": "array", "maxItems": 10, "items": {"$ref": "#/$defs/placement"}},
    "mirrors":   {"type": "array", "items": {"$ref": "#/$defs/placement"}},
    "pulses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["symbol", "frequency", "direction"],
        "additionalProperties": false,
        "properties": {
          "symbol":    {"type": "string"},
          "frequency": {"type": "integer"},
          "direction": {"type": "string"}
        }
      }
    }
  },
  "$defs": {
    "placement": {
      "type": "object",
      "required": ["symbol", "x", "y"],
      "additionalProperties": false,
      "properties": {
        "symbol": {"type": "string"},
        "x": {"type": "integer"},
        "y": {"type": "integer"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compiling scenario schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded YAML document against the scenario
// schema. The document is round-tripped through JSON so numbers and maps
// have the types the validator expects.
func validateDocument(doc any) error {
	s, err := schema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("scenario is not representable as JSON: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding scenario JSON: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("scenario does not match schema: %w", err)
	}
	return nil
}
