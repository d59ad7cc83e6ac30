package tasklist

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

const (
	DefaultInterval     = 5 * time.Second
	DefaultFetchTimeout = 10 * time.Second

	refreshKey = "refresh"
)

// Config wires a Reconciler to one resource kind
type Config[T any] struct {
	// Name is only used for logging
	Name string

	Fetch       FetchFunc[T]
	Tasks       TaskSource
	TaskFilter  TaskFilterFunc
	Matches     MatchFunc[T]
	Placeholder PlaceholderFunc[T]
	Identity    func(T) string

	Interval     time.Duration
	FetchTimeout time.Duration
}

// Reconciler periodically merges the fetched resource list with the executing tasks
// and publishes the result. Cycles never overlap; a stopped reconciler publishes nothing.
type Reconciler[T any] struct {
	cfg     Config[T]
	publish Publisher[T]
	logger  *log.Entry

	flight singleflight.Group

	// publishLock serializes cycle commits so snapshots reach the publisher in order
	publishLock sync.Mutex

	lock    sync.Mutex
	base    []T
	tasks   []api.ExecutingTask
	last    Snapshot[T]
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewReconciler[T any](cfg Config[T], publish Publisher[T]) *Reconciler[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if publish == nil {
		publish = func(Snapshot[T]) {}
	}
	return &Reconciler[T]{
		cfg:     cfg,
		publish: publish,
		logger:  log.WithFields(log.Fields{"Module": "TaskListReconciler", "resource": cfg.Name}),
		last:    Snapshot[T]{ViewState: ViewStateLoading},
	}
}

// Start begins the refresh cycle, the first one runs immediately
func (r *Reconciler[T]) Start(ctx context.Context) error {
	if r.cfg.Fetch == nil {
		return fmt.Errorf("reconciler %q has no fetch function", r.cfg.Name)
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stopped {
		return fmt.Errorf("reconciler %q is stopped", r.cfg.Name)
	}
	if r.started {
		return nil
	}
	r.started = true

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	r.logger.WithField("interval", r.cfg.Interval).Debug("Starting the refresh cycle")
	go func() {
		defer close(r.done)
		wait.UntilWithContext(ctx, func(ctx context.Context) {
			r.Refresh(ctx)
		}, r.cfg.Interval)
		r.logger.Debug("Refresh cycle exits")
	}()
	return nil
}

// Stop cancels the refresh cycle. It is idempotent and nothing is published after it
// returns, including the result of a fetch that is still in flight. It waits for a
// publish in progress, so the publisher must not call Stop.
func (r *Reconciler[T]) Stop() {
	r.publishLock.Lock()
	defer r.publishLock.Unlock()

	r.lock.Lock()
	if r.stopped {
		r.lock.Unlock()
		return
	}
	r.stopped = true
	cancel := r.cancel
	r.lock.Unlock()

	if cancel != nil {
		cancel()
	}
	r.logger.Debug("Stopped")
}

// Done is closed when the refresh loop has exited, nil if never started
func (r *Reconciler[T]) Done() <-chan struct{} {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.done
}

// Snapshot returns the last published snapshot
func (r *Reconciler[T]) Snapshot() Snapshot[T] {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.last
}

// Refresh runs one cycle now, or joins the cycle already in flight. The publisher
// must not call Refresh itself.
func (r *Reconciler[T]) Refresh(ctx context.Context) Snapshot[T] {
	ch := r.flight.DoChan(refreshKey, func() (interface{}, error) {
		return r.cycle(ctx), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Snapshot[T])
	case <-ctx.Done():
		return r.Snapshot()
	}
}

func (r *Reconciler[T]) cycle(ctx context.Context) Snapshot[T] {
	if r.isStopped() {
		return r.Snapshot()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	records, fetchErr := r.cfg.Fetch(fetchCtx)

	var tasks []api.ExecutingTask
	var taskErr error
	if r.cfg.Tasks != nil {
		tasks, taskErr = r.cfg.Tasks.Current(fetchCtx)
	}

	r.publishLock.Lock()
	defer r.publishLock.Unlock()

	r.lock.Lock()
	if r.stopped {
		r.lock.Unlock()
		r.logger.Debug("Discarding the result of a cycle finished after stop")
		return r.Snapshot()
	}

	snapshot := Snapshot[T]{UpdatedAt: time.Now()}
	if fetchErr != nil {
		snapshot.ViewState = ViewStateErrorDegraded
		snapshot.Err = &FetchError{Err: fetchErr}
		r.logger.WithError(fetchErr).Warning("Failed to fetch resources, keeping the last list")
	} else {
		snapshot.ViewState = ViewStateLoaded
		r.base = records
	}

	if taskErr != nil {
		r.logger.WithError(taskErr).Warning("Failed to get executing tasks, keeping the last task set")
	} else if r.cfg.Tasks != nil {
		r.tasks = FilterTasks(tasks, r.cfg.TaskFilter)
	}

	snapshot.Rows = Merge(r.base, r.tasks, r.cfg.Matches, r.cfg.Placeholder, r.cfg.Identity)
	r.last = snapshot
	taskCount := len(r.tasks)
	r.lock.Unlock()

	r.logger.WithFields(log.Fields{
		"rows":      len(snapshot.Rows),
		"tasks":     taskCount,
		"viewState": snapshot.ViewState,
	}).Debug("Publishing merged list")
	r.publish(snapshot)

	return snapshot
}

func (r *Reconciler[T]) isStopped() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.stopped
}
