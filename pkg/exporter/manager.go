package exporter

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
	"github.com/hwameistor/poolconsole/pkg/task"
)

// PoolSource lists the pools to export
type PoolSource interface {
	StoragePoolList(queryPage api.QueryPage) (*api.StoragePoolList, error)
}

// TaskSource reports the background tasks to export
type TaskSource interface {
	Executing(filter task.Filter) []api.ExecutingTask
	Counters() []task.Counter
}

type CollectorManager struct {
	registry *prometheus.Registry
}

func NewCollectorManager(pools PoolSource, tasks TaskSource) *CollectorManager {
	registry := prometheus.NewRegistry()
	registry.MustRegister(newCollectorForPool(pools))
	registry.MustRegister(newCollectorForTask(tasks))
	return &CollectorManager{registry: registry}
}

// Handler serves the metrics in the prometheus text format
func (mc *CollectorManager) Handler() http.Handler {
	return promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
}
