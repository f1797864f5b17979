package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema is the built-in JSON Schema one decoded task record is
// checked against when no external schema file is configured.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "deadline", "completed"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "deadline": {"type": "string", "pattern": "^[0-9]{1,2}\\.[0-9]{1,2}\\.[0-9]{4}$"},
    "completed": {"type": "boolean"},
    "category": {"type": "string", "minLength": 1},
    "done": {"type": "boolean"}
  },
  "additionalProperties": false
}`

// ValidationError is a validation error tied to a line of the tasks
// file. Line is 1-based; 0 means the error is not line-specific.
type ValidationError struct {
	Line int
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath overrides the built-in record schema with an external
	// JSON Schema file. If the file cannot be used, validation falls
	// back to the built-in schema with a warning.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// ValidateFile checks the tasks file at path without loading it into a
// store. A missing file validates clean (it loads as an empty store).
// Each line must decode, and each decoded record must pass the JSON
// Schema; when no schema can be compiled, minimal structural checks
// run instead.
func ValidateFile(path string, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("tasks file not found: %s (loads as empty store)", path))
		return result
	}
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("read tasks file: %w", err)})
		return result
	}

	schema := compileSchema(opts.SchemaPath, result)

	for i, line := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, done, err := DecodeLine(line)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Line: lineNo, Err: err})
			continue
		}
		if schema != nil {
			validateRecord(result, lineNo, schema, &t, done)
		} else {
			validateMinimal(result, lineNo, &t)
		}
	}

	return result
}

// compileSchema compiles the external schema if configured, falling
// back to the built-in record schema. Problems with the external file
// become warnings, never hard failures.
func compileSchema(schemaPath string, result *ValidationResult) *jsonschema.Schema {
	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err == nil {
			if _, statErr := os.Stat(absPath); statErr == nil {
				compiler := jsonschema.NewCompiler()
				compiler.AssertFormat = true
				schema, compileErr := compiler.Compile(absPath)
				if compileErr == nil {
					result.UsedSchema = true
					return schema
				}
				result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", compileErr))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
			}
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		}
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(recordSchema)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("built-in schema unavailable: %v", err))
		return nil
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("built-in schema unavailable: %v", err))
		return nil
	}
	result.UsedSchema = true
	return schema
}

// validateRecord runs one decoded line through the schema.
func validateRecord(result *ValidationResult, lineNo int, schema *jsonschema.Schema, t *Task, done bool) {
	record := map[string]interface{}{
		"title":     t.Title,
		"deadline":  t.Deadline,
		"completed": t.Completed,
		"done":      done,
	}
	if t.Category != "" {
		record["category"] = t.Category
	}

	// Round-trip through JSON so the schema sees canonical types.
	data, err := json.Marshal(record)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Line: lineNo, Err: fmt.Errorf("marshal record for validation: %w", err)})
		return
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Line: lineNo, Err: fmt.Errorf("unmarshal record for validation: %w", err)})
		return
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, lineNo, err)
	}
}

// validateMinimal performs minimal checks without JSON Schema.
func validateMinimal(result *ValidationResult, lineNo int, t *Task) {
	if t.Title == "" {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Line: lineNo, Err: fmt.Errorf("empty title")})
	}
	if _, err := DeadlineKey(t.Deadline); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Line: lineNo, Err: err})
	}
}

func appendSchemaErrors(result *ValidationResult, lineNo int, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, &ValidationError{Line: lineNo, Err: err})
		return
	}
	collectSchemaErrors(result, lineNo, ve)
}

func collectSchemaErrors(result *ValidationResult, lineNo int, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Line: lineNo,
			Err:  fmt.Errorf("%s: %s", fieldFromPointer(err.InstanceLocation), err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, lineNo, cause)
	}
}

// fieldFromPointer turns a JSON pointer like "/deadline" into a plain
// field name for error messages.
func fieldFromPointer(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "record"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
