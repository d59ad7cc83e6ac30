package exporter

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type TaskMetricsCollector struct {
	tasks TaskSource

	executingMetricsDesc *prometheus.Desc
	finishedMetricsDesc  *prometheus.Desc
}

func newCollectorForTask(tasks TaskSource) prometheus.Collector {
	return &TaskMetricsCollector{
		tasks: tasks,
		executingMetricsDesc: prometheus.NewDesc(
			"poolconsole_tasks_executing",
			"The number of executing background tasks.",
			[]string{"name"},
			nil,
		),
		finishedMetricsDesc: prometheus.NewDesc(
			"poolconsole_tasks_finished",
			"The number of finished background tasks since start.",
			[]string{"name", "success"},
			nil,
		),
	}
}

func (mc *TaskMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(mc, ch)
}

func (mc *TaskMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	log.Debug("Collecting metrics for Task ...")

	executingCount := map[string]int{}
	for _, t := range mc.tasks.Executing(nil) {
		executingCount[t.Name]++
	}
	for name, count := range executingCount {
		ch <- prometheus.MustNewConstMetric(mc.executingMetricsDesc, prometheus.GaugeValue, float64(count), name)
	}

	for _, c := range mc.tasks.Counters() {
		ch <- prometheus.MustNewConstMetric(mc.finishedMetricsDesc, prometheus.CounterValue, float64(c.Count), c.Name, strconv.FormatBool(c.Success))
	}
}
