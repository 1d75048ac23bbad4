package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// contactSchema is compiled once at startup; the contact shape is the only
// schema this module ever checks against.
var contactSchema = mustCompileSchema(BuildContactJSONSchema())

func mustCompileSchema(m map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(m)
	if err != nil {
		panic(fmt.Sprintf("marshal contact schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("contact.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add contact schema: %v", err))
	}
	schema, err := compiler.Compile("contact.json")
	if err != nil {
		panic(fmt.Sprintf("compile contact schema: %v", err))
	}
	return schema
}

// ValidateContactJSON reports whether data conforms to the contact schema.
// Callers treat a mismatch as a warning, not a hard failure; the name gate in
// the validator is what decides acceptance.
func ValidateContactJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := contactSchema.Validate(v); err != nil {
		return fmt.Errorf("json does not match contact schema: %w", err)
	}
	return nil
}
