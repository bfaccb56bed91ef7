package task

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var taskFileSchema string

const taskFileSchemaURL = "tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func fileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(taskFileSchemaURL, strings.NewReader(taskFileSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(taskFileSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded task file against the file schema.
// Required keys are not part of the schema; FromRecord reports those.
func validateDocument(doc any) error {
	schema, err := fileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SchemaError{Message: err.Error()}
	}
	leaf := firstLeafCause(ve)
	return &SchemaError{Path: leaf.InstanceLocation, Message: leaf.Message}
}

func firstLeafCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}
