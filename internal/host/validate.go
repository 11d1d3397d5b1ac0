package host

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/lydakis/unity-mcp/internal/wire"
)

// SchemaValidator compiles a JSON Schema (draft-7) into a ValidateFunc.
// Tool parameter schemas come from the shared catalog, so both sides of
// the bridge agree on what a well-formed call looks like.
func SchemaValidator(schemaJSON []byte) (ValidateFunc, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compiling parameter schema: %w", err)
	}

	return func(params wire.Params) error {
		doc := map[string]any(params)
		if doc == nil {
			doc = map[string]any{}
		}
		result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return fmt.Errorf("validating parameters: %w", err)
		}
		if result.Valid() {
			return nil
		}
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return errors.New("invalid parameters: " + strings.Join(msgs, "; "))
	}, nil
}

// MustSchemaValidator is SchemaValidator for schemas known at compile
// time; a bad schema is a programming error.
func MustSchemaValidator(schemaJSON []byte) ValidateFunc {
	v, err := SchemaValidator(schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}
