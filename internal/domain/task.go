// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for persisted timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a point in time persisted as a UTC ISO-8601 string with
// millisecond precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to UTC and truncates it to milliseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// String returns the persisted representation.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Any RFC 3339 value is accepted.
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(text))
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", string(text), err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp must be a string, got %s", s)
	}
	return t.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// Task represents a single trackable unit of work.
// Field order follows the persisted record layout.
type Task struct {
	ID          int       `json:"id" yaml:"id"`
	Description string    `json:"description" yaml:"description"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   Timestamp `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt" yaml:"updatedAt"`
}

// Touch refreshes UpdatedAt.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = NewTimestamp(now)
}

// NormalizeDescription joins description tokens with single spaces.
func NormalizeDescription(parts ...string) string {
	return strings.Join(parts, " ")
}
