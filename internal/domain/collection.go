package domain

// NextID returns the id for a new task: one more than the highest id in
// tasks, or 1 when tasks is empty.
// Ids are derived from the current collection only, so deleting the
// highest-id task frees its id again.
func NextID(tasks []*Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// FindTask returns the task with the given id, or nil.
func FindTask(tasks []*Task, id int) *Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RemoveTask returns tasks without the task whose id matches.
// The second result is false when nothing was removed.
func RemoveTask(tasks []*Task, id int) ([]*Task, bool) {
	kept := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept, len(kept) != len(tasks)
}

// FilterByStatus returns the tasks whose status equals status exactly.
// An empty status returns tasks unchanged.
func FilterByStatus(tasks []*Task, status Status) []*Task {
	if status == "" {
		return tasks
	}
	var result []*Task
	for _, t := range tasks {
		if t.Status == status {
			result = append(result, t)
		}
	}
	return result
}

// DuplicateIDs returns ids that appear more than once, in first-seen order.
func DuplicateIDs(tasks []*Task) []int {
	seen := make(map[int]int, len(tasks))
	var dups []int
	for _, t := range tasks {
		seen[t.ID]++
		if seen[t.ID] == 2 {
			dups = append(dups, t.ID)
		}
	}
	return dups
}
