package tasklist

import (
	"github.com/gobwas/glob"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

// MatchFunc reports whether task operates on record
type MatchFunc[T any] func(record T, task api.ExecutingTask) bool

// TaskFilterFunc selects the tasks belonging to one resource kind
type TaskFilterFunc func(task api.ExecutingTask) bool

// PlaceholderFunc builds a pending record from a task with no matching record
type PlaceholderFunc[T any] func(task api.ExecutingTask) T

// MatchByKey matches when the record identity equals the key carried by the task
func MatchByKey[T any](identity func(T) string, taskKey func(api.ExecutingTask) string) MatchFunc[T] {
	return func(record T, task api.ExecutingTask) bool {
		key := taskKey(task)
		return key != "" && key == identity(record)
	}
}

// MetadataKey extracts one metadata field of a task
func MetadataKey(field string) func(api.ExecutingTask) string {
	return func(task api.ExecutingTask) string {
		return task.Metadata[field]
	}
}

// NameGlob filters tasks by a '/' separated glob, "pool/*" matches one level below
// pool and "pool/**" any depth
func NameGlob(pattern string) (TaskFilterFunc, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	return func(task api.ExecutingTask) bool {
		return g.Match(task.Name)
	}, nil
}

// FilterTasks keeps the tasks accepted by filter, all of them when filter is nil
func FilterTasks(tasks []api.ExecutingTask, filter TaskFilterFunc) []api.ExecutingTask {
	filtered := make([]api.ExecutingTask, 0, len(tasks))
	for _, task := range tasks {
		if filter == nil || filter(task) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// Merge builds the display list: records in order, each with at most one matching
// task, followed by one placeholder per unmatched identity.
func Merge[T any](records []T, tasks []api.ExecutingTask, matches MatchFunc[T],
	placeholder PlaceholderFunc[T], identity func(T) string) []DisplayRow[T] {

	rows := make([]DisplayRow[T], 0, len(records)+len(tasks))
	used := make([]bool, len(tasks))
	seen := make(map[string]struct{}, len(records)+len(tasks))

	for _, record := range records {
		row := DisplayRow[T]{Item: record}
		if matches != nil {
			for i := range tasks {
				if used[i] || !matches(record, tasks[i]) {
					continue
				}
				task := tasks[i]
				row.Task = &task
				used[i] = true
				break
			}
		}
		if identity != nil {
			seen[identity(record)] = struct{}{}
		}
		rows = append(rows, row)
	}

	if placeholder == nil {
		return rows
	}
	for i := range tasks {
		if used[i] {
			continue
		}
		// a task that matches a record already claimed by another task is not pending
		if matchesAny(records, tasks[i], matches) {
			continue
		}
		item := placeholder(tasks[i])
		if identity != nil {
			key := identity(item)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
		}
		task := tasks[i]
		rows = append(rows, DisplayRow[T]{Item: item, Task: &task, Placeholder: true})
	}
	return rows
}

func matchesAny[T any](records []T, task api.ExecutingTask, matches MatchFunc[T]) bool {
	if matches == nil {
		return false
	}
	for _, record := range records {
		if matches(record, task) {
			return true
		}
	}
	return false
}
