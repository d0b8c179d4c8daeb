// Package schema validates task collections against the embedded JSON Schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/runoshun/task-cli/internal/domain"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "tasks.schema.json"

// Ensure Validator implements domain.CollectionValidator.
var _ domain.CollectionValidator = (*Validator)(nil)

// Validator checks a task collection against the schema and the id
// uniqueness invariant.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	s, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate returns one human-readable problem per violation, ordered by
// position in the collection. doc is checked against the schema, so fields
// missing from or unknown to the stored records are reported. A nil doc is
// derived from tasks. Duplicate ids are reported after schema violations.
func (v *Validator) Validate(doc any, tasks []*domain.Task) ([]string, error) {
	if doc == nil {
		var err error
		if doc, err = toDocument(tasks); err != nil {
			return nil, err
		}
	}

	var problems []string
	if err := v.schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("validate tasks: %w", err)
		}
		problems = collectSchemaErrors(problems, ve)
	}

	for _, id := range domain.DuplicateIDs(tasks) {
		problems = append(problems, fmt.Sprintf("tasks: duplicate id %d", id))
	}
	return problems, nil
}

// toDocument round-trips tasks through JSON so the schema sees the
// persisted shape.
func toDocument(tasks []*domain.Task) (any, error) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	return doc, nil
}

// collectSchemaErrors flattens the leaf causes of a validation error.
func collectSchemaErrors(problems []string, err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		return append(problems, fmt.Sprintf("%s: %s", "tasks"+jsonPointerToPath(err.InstanceLocation), err.Message))
	}
	for _, cause := range err.Causes {
		problems = collectSchemaErrors(problems, cause)
	}
	return problems
}

// jsonPointerToPath converts "/0/status" into "[0].status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		b.WriteString(".")
		b.WriteString(part)
	}
	return b.String()
}
