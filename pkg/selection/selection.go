package selection

import (
	"errors"
	"sync"

	"github.com/hwameistor/poolconsole/pkg/tasklist"
)

// ErrEmptySelection is returned by First when nothing is selected
var ErrEmptySelection = errors.New("selection is empty")

// Tracker holds the rows currently selected in the list. A lone placeholder row is
// never kept: it has nothing to edit or show details for.
type Tracker[T any] struct {
	identity func(T) string

	lock     sync.RWMutex
	selected []tasklist.DisplayRow[T]
}

func NewTracker[T any](identity func(T) string) *Tracker[T] {
	return &Tracker[T]{identity: identity}
}

// Update replaces the selection
func (t *Tracker[T]) Update(rows []tasklist.DisplayRow[T]) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.selected = normalize(rows)
}

// Select replaces the selection with the rows of current whose identity is in keys,
// keeping the order of keys
func (t *Tracker[T]) Select(current []tasklist.DisplayRow[T], keys ...string) {
	index := t.index(current)
	rows := make([]tasklist.DisplayRow[T], 0, len(keys))
	for _, key := range keys {
		if row, ok := index[key]; ok {
			rows = append(rows, row)
		}
	}
	t.Update(rows)
}

// Sync drops selected rows that are no longer in current and refreshes the others
// with their current version
func (t *Tracker[T]) Sync(current []tasklist.DisplayRow[T]) {
	index := t.index(current)

	t.lock.Lock()
	defer t.lock.Unlock()
	rows := make([]tasklist.DisplayRow[T], 0, len(t.selected))
	for _, row := range t.selected {
		if fresh, ok := index[t.identity(row.Item)]; ok {
			rows = append(rows, fresh)
		}
	}
	t.selected = normalize(rows)
}

// Clear empties the selection
func (t *Tracker[T]) Clear() {
	t.Update(nil)
}

func (t *Tracker[T]) HasSelection() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.selected) > 0
}

func (t *Tracker[T]) HasSingleSelection() bool {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.selected) == 1
}

// First returns the first selected row
func (t *Tracker[T]) First() (tasklist.DisplayRow[T], error) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	if len(t.selected) == 0 {
		return tasklist.DisplayRow[T]{}, ErrEmptySelection
	}
	return t.selected[0], nil
}

// Selected returns a copy of the selection
func (t *Tracker[T]) Selected() []tasklist.DisplayRow[T] {
	t.lock.RLock()
	defer t.lock.RUnlock()
	rows := make([]tasklist.DisplayRow[T], len(t.selected))
	copy(rows, t.selected)
	return rows
}

// Identity returns the key of a row
func (t *Tracker[T]) Identity(row tasklist.DisplayRow[T]) string {
	return t.identity(row.Item)
}

func (t *Tracker[T]) index(rows []tasklist.DisplayRow[T]) map[string]tasklist.DisplayRow[T] {
	index := make(map[string]tasklist.DisplayRow[T], len(rows))
	for _, row := range rows {
		key := t.identity(row.Item)
		if _, exists := index[key]; !exists {
			index[key] = row
		}
	}
	return index
}

func normalize[T any](rows []tasklist.DisplayRow[T]) []tasklist.DisplayRow[T] {
	if len(rows) == 1 && rows[0].Placeholder {
		return nil
	}
	selected := make([]tasklist.DisplayRow[T], len(rows))
	copy(selected, rows)
	return selected
}
