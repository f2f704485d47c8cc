package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskman/internal/utils"
)

//go:embed config.schema.json
var schemaJSON string

const schemaURL = "config.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted key path of the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// ValidateFile checks a TOML config file against the embedded JSON Schema.
// A file that cannot be read or parsed yields an invalid result with one
// error rather than a returned error.
func ValidateFile(path string) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: make([]error, 0)}

	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse config file: %w", err)})
		return result
	}
	if err := validateValues(raw); err != nil {
		result.add(err)
	}
	return result
}

// validateValues validates decoded TOML values against the schema.
func validateValues(raw map[string]interface{}) error {
	schema, err := compileSchema()
	if err != nil {
		return &ValidationError{Err: err}
	}

	// TOML decodes to int64 and time.Time; a JSON round trip gives the
	// validator the value types it expects.
	data, err := json.Marshal(raw)
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("marshal config for validation: %w", err)}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("unmarshal config for validation: %w", err)}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	return schema.Validate(doc)
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	return schema, nil
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// add records err, flattening schema validation causes into leaf errors.
func (r *ValidationResult) add(err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		r.fail(err)
		return
	}
	r.collect(ve)
}

func (r *ValidationResult) collect(ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		r.fail(&ValidationError{
			Path: utils.JSONPointerToPath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		r.collect(cause)
	}
}
