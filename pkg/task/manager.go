package task

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

const (
	DefaultWorkers     = 4
	DefaultWaitTimeout = 2 * time.Second
	DefaultFinishedTTL = 60 * time.Second
	DefaultMaxFinished = 200
)

// Func is the body of a background task
type Func func(ctx context.Context) error

// Filter selects tasks, nil selects all
type Filter func(task api.Task) bool

type Options struct {
	Workers int
	// WaitTimeout is how long Run waits for a task before reporting it as executing
	WaitTimeout time.Duration
	// FinishedTTL is how long finished tasks are listed
	FinishedTTL time.Duration
	MaxFinished int
}

// Result of Run: Finished is nil while the task is still executing
type Result struct {
	Executing api.ExecutingTask
	Finished  *api.FinishedTask
	Err       error
}

// Done reports whether the task completed within the wait timeout
func (r *Result) Done() bool {
	return r.Finished != nil
}

// Counter is the number of finished tasks of one name and outcome
type Counter struct {
	Name    string
	Success bool
	Count   uint64
}

type entry struct {
	id       string
	task     api.Task
	begin    time.Time
	fn       Func
	progress int
	done     chan struct{}
	result   api.FinishedTask
	err      error
}

// Manager runs named background tasks and reports which are executing and which have
// finished recently
type Manager struct {
	opts   Options
	queue  *TaskQueue
	logger *log.Entry

	lock      sync.RWMutex
	executing map[string]*entry
	byKey     map[string]*entry
	finished  []api.FinishedTask
	counters  map[string]*Counter
}

func NewManager(opts Options) *Manager {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = DefaultWaitTimeout
	}
	if opts.FinishedTTL <= 0 {
		opts.FinishedTTL = DefaultFinishedTTL
	}
	if opts.MaxFinished <= 0 {
		opts.MaxFinished = DefaultMaxFinished
	}
	return &Manager{
		opts:      opts,
		queue:     NewTaskQueue("background-tasks"),
		logger:    log.WithField("Module", "TaskManager"),
		executing: map[string]*entry{},
		byKey:     map[string]*entry{},
		counters:  map[string]*Counter{},
	}
}

// Start runs the workers until ctx is done
func (m *Manager) Start(ctx context.Context) {
	m.logger.WithField("workers", m.opts.Workers).Info("Starting task workers")
	for i := 0; i < m.opts.Workers; i++ {
		go wait.UntilWithContext(ctx, m.runWorker, time.Second)
	}
	go wait.UntilWithContext(ctx, func(context.Context) { m.prune(time.Now()) }, m.opts.FinishedTTL/2)
	go func() {
		<-ctx.Done()
		m.queue.Shutdown()
	}()
}

// Run submits a task and waits up to the wait timeout for it. A task with the same
// name and metadata that is still executing is joined instead of started twice.
func (m *Manager) Run(ctx context.Context, name string, metadata map[string]string, fn Func) *Result {
	task := api.NewTask(name, metadata)
	key := task.Key()

	m.lock.Lock()
	e, exists := m.byKey[key]
	if !exists {
		e = &entry{
			id:    uuid.New().String(),
			task:  task,
			begin: time.Now(),
			fn:    fn,
			done:  make(chan struct{}),
		}
		m.executing[e.id] = e
		m.byKey[key] = e
	}
	m.lock.Unlock()

	logCtx := m.logger.WithFields(log.Fields{"task": name, "metadata": metadata, "id": e.id})
	if exists {
		logCtx.Debug("Task already executing, joining it")
	} else {
		logCtx.Info("Task submitted")
		m.queue.Add(e.id)
	}

	timer := time.NewTimer(m.opts.WaitTimeout)
	defer timer.Stop()
	select {
	case <-e.done:
		finished := e.result
		return &Result{Finished: &finished, Err: e.err}
	case <-timer.C:
	case <-ctx.Done():
	}
	return &Result{Executing: m.snapshot(e)}
}

// Executing lists the executing tasks ordered by begin time
func (m *Manager) Executing(filter Filter) []api.ExecutingTask {
	m.lock.RLock()
	defer m.lock.RUnlock()

	tasks := make([]api.ExecutingTask, 0, len(m.executing))
	for _, e := range m.executing {
		if filter == nil || filter(e.task) {
			tasks = append(tasks, api.ExecutingTask{Task: e.task, BeginTime: e.begin, Progress: e.progress})
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].BeginTime.Before(tasks[j].BeginTime)
	})
	return tasks
}

// Finished lists the recently finished tasks, most recent last
func (m *Manager) Finished(filter Filter) []api.FinishedTask {
	m.lock.RLock()
	defer m.lock.RUnlock()

	tasks := make([]api.FinishedTask, 0, len(m.finished))
	for _, t := range m.finished {
		if filter == nil || filter(t.Task) {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Counters returns the number of finished tasks per name and outcome since start
func (m *Manager) Counters() []Counter {
	m.lock.RLock()
	defer m.lock.RUnlock()

	counters := make([]Counter, 0, len(m.counters))
	for _, c := range m.counters {
		counters = append(counters, *c)
	}
	sort.Slice(counters, func(i, j int) bool {
		if counters[i].Name == counters[j].Name {
			return !counters[i].Success && counters[j].Success
		}
		return counters[i].Name < counters[j].Name
	})
	return counters
}

func (m *Manager) snapshot(e *entry) api.ExecutingTask {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return api.ExecutingTask{Task: e.task, BeginTime: e.begin, Progress: e.progress}
}

func (m *Manager) runWorker(ctx context.Context) {
	for m.processNextTask(ctx) {
	}
}

func (m *Manager) processNextTask(ctx context.Context) bool {
	id, shutdown := m.queue.Get()
	if shutdown {
		return false
	}
	defer m.queue.Done(id)

	m.lock.RLock()
	e, ok := m.executing[id]
	m.lock.RUnlock()
	if !ok {
		return true
	}

	err := m.execute(withProgress(ctx, m, e), e)
	m.complete(e, err)
	return true
}

func (m *Manager) execute(ctx context.Context, e *entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return e.fn(ctx)
}

func (m *Manager) complete(e *entry, err error) {
	end := time.Now()
	result := api.FinishedTask{
		Task:      e.task,
		BeginTime: e.begin,
		EndTime:   end,
		Duration:  end.Sub(e.begin),
		Success:   err == nil,
	}
	if err != nil {
		result.Exception = err.Error()
	}

	m.lock.Lock()
	delete(m.executing, e.id)
	if m.byKey[e.task.Key()] == e {
		delete(m.byKey, e.task.Key())
	}
	m.finished = append(m.finished, result)
	if over := len(m.finished) - m.opts.MaxFinished; over > 0 {
		m.finished = m.finished[over:]
	}
	counterKey := fmt.Sprintf("%s|%t", e.task.Name, result.Success)
	c, ok := m.counters[counterKey]
	if !ok {
		c = &Counter{Name: e.task.Name, Success: result.Success}
		m.counters[counterKey] = c
	}
	c.Count++
	e.result = result
	e.err = err
	m.lock.Unlock()
	close(e.done)

	logCtx := m.logger.WithFields(log.Fields{"task": e.task.Name, "metadata": e.task.Metadata, "duration": result.Duration})
	if err != nil {
		logCtx.WithError(err).Error("Task failed")
	} else {
		logCtx.Info("Task finished")
	}
}

func (m *Manager) prune(now time.Time) {
	m.lock.Lock()
	defer m.lock.Unlock()

	kept := m.finished[:0]
	for _, t := range m.finished {
		if now.Sub(t.EndTime) < m.opts.FinishedTTL {
			kept = append(kept, t)
		}
	}
	m.finished = kept
}

func (m *Manager) setProgress(e *entry, percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m.lock.Lock()
	e.progress = percent
	m.lock.Unlock()
}

type progressKey struct{}

type progressReporter struct {
	m *Manager
	e *entry
}

func withProgress(ctx context.Context, m *Manager, e *entry) context.Context {
	return context.WithValue(ctx, progressKey{}, progressReporter{m: m, e: e})
}

// SetProgress updates the progress of the task running with ctx, no-op outside a task
func SetProgress(ctx context.Context, percent int) {
	if r, ok := ctx.Value(progressKey{}).(progressReporter); ok {
		r.m.setProgress(r.e, percent)
	}
}
