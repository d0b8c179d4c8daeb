package domain

import "slices"

// Status represents the progress state of a task.
// Any status may be set over any other; there is no enforced workflow.
type Status string

const (
	StatusTodo       Status = "todo"        // Created, not started
	StatusInProgress Status = "in-progress" // Being worked on
	StatusDone       Status = "done"        // Finished
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusTodo,
		StatusInProgress,
		StatusDone,
	}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	return slices.Contains(AllStatuses(), s)
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}
