package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tasksWithIDs(ids ...int) []*Task {
	tasks := make([]*Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, &Task{ID: id, Status: StatusTodo})
	}
	return tasks
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []*Task
		want  int
	}{
		{"empty collection", nil, 1},
		{"single task", tasksWithIDs(1), 2},
		{"gap after deletion", tasksWithIDs(1, 3), 4},
		{"unordered", tasksWithIDs(5, 2, 9, 4), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.tasks))
		})
	}
}

func TestFindTask(t *testing.T) {
	tasks := tasksWithIDs(1, 2, 3)

	assert.Equal(t, 2, FindTask(tasks, 2).ID)
	assert.Nil(t, FindTask(tasks, 99))
	assert.Nil(t, FindTask(nil, 1))
}

func TestRemoveTask(t *testing.T) {
	tasks := tasksWithIDs(1, 2, 3)

	kept, removed := RemoveTask(tasks, 2)

	assert.True(t, removed)
	assert.Len(t, kept, 2)
	assert.Equal(t, 1, kept[0].ID)
	assert.Equal(t, 3, kept[1].ID)
	assert.Len(t, tasks, 3, "input must not be modified")
}

func TestRemoveTask_NotFound(t *testing.T) {
	kept, removed := RemoveTask(tasksWithIDs(1, 2), 5)

	assert.False(t, removed)
	assert.Len(t, kept, 2)
}

func TestFilterByStatus(t *testing.T) {
	tasks := []*Task{
		{ID: 1, Status: StatusTodo},
		{ID: 2, Status: StatusDone},
		{ID: 3, Status: StatusTodo},
	}

	assert.Len(t, FilterByStatus(tasks, ""), 3)
	assert.Len(t, FilterByStatus(tasks, StatusTodo), 2)
	assert.Len(t, FilterByStatus(tasks, StatusDone), 1)
	assert.Empty(t, FilterByStatus(tasks, StatusInProgress))
	assert.Empty(t, FilterByStatus(tasks, "Todo"), "match must be exact")
}

func TestDuplicateIDs(t *testing.T) {
	assert.Empty(t, DuplicateIDs(tasksWithIDs(1, 2, 3)))
	assert.Equal(t, []int{2, 1}, DuplicateIDs(tasksWithIDs(2, 1, 2, 1, 2)))
}
