package poolview

import (
	"time"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/tasklist"
)

// TaskPattern selects every task whose name starts with "pool/"
const TaskPattern = "pool/**"

// Identity is the key of a pool row
func Identity(pool api.Pool) string {
	return pool.PoolName
}

// Placeholder builds the pending row of a pool known only from its task
func Placeholder(task api.ExecutingTask) api.Pool {
	return api.Pool{PoolName: task.Metadata[api.TaskMetadataPoolName]}
}

// NewConfig wires the reconciler for pools
func NewConfig(fetch tasklist.FetchFunc[api.Pool], tasks tasklist.TaskSource, interval time.Duration) (tasklist.Config[api.Pool], error) {
	filter, err := tasklist.NameGlob(TaskPattern)
	if err != nil {
		return tasklist.Config[api.Pool]{}, err
	}
	return tasklist.Config[api.Pool]{
		Name:        "pool",
		Fetch:       fetch,
		Tasks:       tasks,
		TaskFilter:  filter,
		Matches:     tasklist.MatchByKey(Identity, tasklist.MetadataKey(api.TaskMetadataPoolName)),
		Placeholder: Placeholder,
		Identity:    Identity,
		Interval:    interval,
	}, nil
}

// NewReconciler creates the pool list reconciler
func NewReconciler(fetch tasklist.FetchFunc[api.Pool], tasks tasklist.TaskSource, interval time.Duration,
	publish tasklist.Publisher[api.Pool]) (*tasklist.Reconciler[api.Pool], error) {
	cfg, err := NewConfig(fetch, tasks, interval)
	if err != nil {
		return nil, err
	}
	return tasklist.NewReconciler(cfg, publish), nil
}
