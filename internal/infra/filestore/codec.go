package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/task-cli/internal/domain"
)

// Codec converts a task collection to and from file content.
type Codec interface {
	// Name returns the codec name, e.g. "json".
	Name() string
	Marshal(tasks []*domain.Task) ([]byte, error)
	Unmarshal(data []byte) ([]*domain.Task, error)

	// UnmarshalDocument decodes data into JSON document values
	// (map[string]any, []any, string, float64, bool, nil).
	UnmarshalDocument(data []byte) (any, error)
}

// CodecFor returns the codec for a store backend name.
func CodecFor(name string) (Codec, error) {
	switch name {
	case domain.StoreJSON:
		return JSONCodec{}, nil
	case domain.StoreYAML:
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, name)
	}
}

// JSONCodec stores tasks as a JSON array pretty-printed with 2-space indentation.
type JSONCodec struct{}

// Name returns "json".
func (JSONCodec) Name() string { return domain.StoreJSON }

// Marshal encodes tasks. An empty collection is written as [].
// HTML characters are kept literal and no trailing newline is added.
func (JSONCodec) Marshal(tasks []*domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes a JSON array of tasks.
func (JSONCodec) Unmarshal(data []byte) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UnmarshalDocument decodes any JSON value.
func (JSONCodec) UnmarshalDocument(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// YAMLCodec stores tasks as a YAML sequence.
type YAMLCodec struct{}

// Name returns "yaml".
func (YAMLCodec) Name() string { return domain.StoreYAML }

// Marshal encodes tasks with 2-space indentation.
func (YAMLCodec) Marshal(tasks []*domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a YAML sequence of tasks. Empty content is an empty collection.
func (YAMLCodec) Unmarshal(data []byte) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UnmarshalDocument decodes YAML and converts it to JSON values, so unquoted
// timestamps become strings and integers become float64.
// Empty content is an empty array.
func (YAMLCodec) UnmarshalDocument(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return []any{}, nil
	}

	converted, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert yaml document: %w", err)
	}
	var doc any
	if err := json.Unmarshal(converted, &doc); err != nil {
		return nil, fmt.Errorf("convert yaml document: %w", err)
	}
	return doc, nil
}
