package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 5, 9, 7, 1, 123456789, time.FixedZone("JST", 9*60*60)))

	data, err := json.Marshal(ts)

	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05T00:07:01.123Z"`, string(data))
}

func TestTimestamp_MarshalJSON_ZeroMillis(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(ts)

	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01T00:00:00.000Z"`, string(data))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "millisecond UTC",
			input: `"2024-03-05T00:07:01.123Z"`,
			want:  time.Date(2024, 3, 5, 0, 7, 1, 123000000, time.UTC),
		},
		{
			name:  "seconds with offset",
			input: `"2024-03-05T09:07:01+09:00"`,
			want:  time.Date(2024, 3, 5, 0, 7, 1, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v, want %v", ts.Time, tt.want)
		})
	}
}

func TestTimestamp_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []string{`123`, `"yesterday"`, `""`}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			var ts Timestamp
			assert.Error(t, json.Unmarshal([]byte(input), &ts))
		})
	}
}

func TestTask_JSONFieldNames(t *testing.T) {
	now := NewTimestamp(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	task := Task{ID: 7, Description: "Buy milk", Status: StatusInProgress, CreatedAt: now, UpdatedAt: now}

	data, err := json.Marshal(task)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"description": "Buy milk",
		"status": "in-progress",
		"createdAt": "2024-01-01T12:00:00.000Z",
		"updatedAt": "2024-01-01T12:00:00.000Z"
	}`, string(data))
}

func TestTask_Touch(t *testing.T) {
	created := NewTimestamp(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	task := &Task{ID: 1, CreatedAt: created, UpdatedAt: created}
	later := time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC)

	task.Touch(later)

	assert.True(t, task.UpdatedAt.Equal(later))
	assert.True(t, task.CreatedAt.Equal(created.Time), "CreatedAt must not change")
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "Buy milk and eggs", NormalizeDescription("Buy", "milk", "and", "eggs"))
	assert.Equal(t, "single", NormalizeDescription("single"))
}
