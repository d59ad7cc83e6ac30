package taskwrapper

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

//go:generate mockgen -source=wrapper.go -destination=mock_wrapper.go -package=taskwrapper

// CallFunc performs the mutation. accepted is true when the server took the request
// but the operation is still running in the background.
type CallFunc func(ctx context.Context) (accepted bool, err error)

// Envelope pairs a task identity with the call that performs it
type Envelope struct {
	Task api.FinishedTask
	Call CallFunc
}

// TaskWrapper runs envelopes so that their task shows up as executing
type TaskWrapper interface {
	Wrap(ctx context.Context, envelope Envelope) error
}

// SummarySource reports the tasks known to the server
type SummarySource interface {
	Summary(ctx context.Context) (*api.TaskSummary, error)
}

// MutationError is returned when the wrapped call fails
type MutationError struct {
	Task api.Task
	Err  error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("task %s failed: %v", describe(e.Task), e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

func describe(task api.Task) string {
	if name, ok := task.Metadata[api.TaskMetadataPoolName]; ok {
		return fmt.Sprintf("%s(%s)", task.Name, name)
	}
	return task.Name
}

// Wrapper is both the TaskWrapper and the TaskSource of the console. Tasks submitted
// through it are visible right away, before the server lists them.
type Wrapper struct {
	source SummarySource
	logger *log.Entry

	lock  sync.Mutex
	local map[string]api.ExecutingTask
}

func NewWrapper(source SummarySource) *Wrapper {
	return &Wrapper{
		source: source,
		logger: log.WithField("Module", "TaskWrapper"),
		local:  map[string]api.ExecutingTask{},
	}
}

// Wrap registers the task, performs the call and keeps the task while the server is
// still executing it
func (w *Wrapper) Wrap(ctx context.Context, envelope Envelope) error {
	task := api.NewTask(envelope.Task.Name, envelope.Task.Metadata)
	key := task.Key()
	logCtx := w.logger.WithFields(log.Fields{"task": task.Name, "metadata": task.Metadata})

	w.lock.Lock()
	w.local[key] = api.ExecutingTask{Task: task, BeginTime: time.Now()}
	w.lock.Unlock()

	accepted, err := envelope.Call(ctx)
	if err != nil || !accepted {
		w.lock.Lock()
		delete(w.local, key)
		w.lock.Unlock()
	}
	if err != nil {
		logCtx.WithError(err).Error("Task call failed")
		return &MutationError{Task: task, Err: err}
	}

	if accepted {
		logCtx.Info("Task accepted, running in background")
	} else {
		logCtx.Debug("Task finished")
	}
	return nil
}

// Current returns the executing tasks of the server plus the locally submitted tasks
// the server has not reported yet
func (w *Wrapper) Current(ctx context.Context) ([]api.ExecutingTask, error) {
	summary, err := w.source.Summary(ctx)
	if err != nil {
		return nil, err
	}

	executing := make(map[string]struct{}, len(summary.ExecutingTasks))
	tasks := make([]api.ExecutingTask, 0, len(summary.ExecutingTasks))
	for _, task := range summary.ExecutingTasks {
		executing[task.Key()] = struct{}{}
		tasks = append(tasks, task)
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	// once the server reports a task it owns it
	for _, task := range summary.FinishedTasks {
		if _, ok := w.local[task.Key()]; ok {
			w.logger.WithField("task", task.Name).Debug("Dropping local task finished on server")
			delete(w.local, task.Key())
		}
	}
	for key := range executing {
		delete(w.local, key)
	}

	pending := make([]api.ExecutingTask, 0, len(w.local))
	for _, task := range w.local {
		pending = append(pending, task)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].BeginTime.Equal(pending[j].BeginTime) {
			return pending[i].Key() < pending[j].Key()
		}
		return pending[i].BeginTime.Before(pending[j].BeginTime)
	})
	return append(tasks, pending...), nil
}
