package tasklist

import (
	"context"
	"fmt"
	"time"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

//go:generate mockgen -source=types.go -destination=mock_types.go -package=tasklist

// ViewState is the coarse status of the last fetch attempt
type ViewState int

const (
	ViewStateLoading ViewState = iota
	ViewStateLoaded
	ViewStateErrorDegraded
)

func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "Loading"
	case ViewStateLoaded:
		return "Loaded"
	case ViewStateErrorDegraded:
		return "ErrorDegraded"
	}
	return fmt.Sprintf("ViewState(%d)", int(s))
}

// FetchFunc returns the latest authoritative records, in display order
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// TaskSource provides the tasks currently executing in the backend
type TaskSource interface {
	Current(ctx context.Context) ([]api.ExecutingTask, error)
}

// Publisher receives every merged snapshot
type Publisher[T any] func(Snapshot[T])

// DisplayRow is a record merged with at most one executing task. Placeholder rows
// are synthesized from a task alone and only carry the identifying field.
type DisplayRow[T any] struct {
	Item        T
	Task        *api.ExecutingTask
	Placeholder bool
}

// Executing describes the attached task, empty when there is none
func (r DisplayRow[T]) Executing() string {
	if r.Task == nil {
		return ""
	}
	return Describe(r.Task.Task)
}

// Snapshot is what the presentation layer renders
type Snapshot[T any] struct {
	Rows      []DisplayRow[T]
	ViewState ViewState
	// Err is the last fetch error, set only in ViewStateErrorDegraded
	Err       error
	UpdatedAt time.Time
}

// FetchError wraps a failed fetch of the authoritative list
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch resources: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

var verbs = map[string]string{
	"create": "Creating",
	"edit":   "Updating",
	"update": "Updating",
	"delete": "Deleting",
}

// Describe turns a task into the word shown next to the row
func Describe(task api.Task) string {
	if v, ok := verbs[task.Verb()]; ok {
		return v
	}
	return "Executing"
}
