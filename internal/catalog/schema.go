package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// deckSchemaJSON is the JSON Schema every deck file must satisfy.
const deckSchemaJSON = `{
	"type": "object",
	"required": ["name", "items"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "category", "kind", "prompt"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"category": {"type": "string", "minLength": 1},
					"kind": {"enum": ["vocab", "sentence"]},
					"prompt": {"type": "string", "minLength": 1},
					"target": {"type": "string"},
					"phonetic": {"type": "string"},
					"tokens": {"type": "array", "items": {"type": "string"}},
					"distractor_tokens": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

var (
	deckSchemaOnce sync.Once
	deckSchema     *jsonschema.Schema
	deckSchemaErr  error
)

// validateDeck checks raw deck JSON against the deck schema.
func validateDeck(raw []byte) error {
	deckSchemaOnce.Do(compileDeckSchema)
	if deckSchemaErr != nil {
		return fmt.Errorf("compile deck schema: %w", deckSchemaErr)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := deckSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileDeckSchema() {
	var def any
	if err := json.Unmarshal([]byte(deckSchemaJSON), &def); err != nil {
		deckSchemaErr = err
		return
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://deck.json", def); err != nil {
		deckSchemaErr = err
		return
	}
	deckSchema, deckSchemaErr = c.Compile("schema://deck.json")
}
