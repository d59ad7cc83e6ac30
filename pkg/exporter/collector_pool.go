package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/hwameistor/poolconsole/pkg/apiserver/api"
)

type PoolMetricsCollector struct {
	pools PoolSource

	totalMetricsDesc *prometheus.Desc
	sizeMetricsDesc  *prometheus.Desc
	pgMetricsDesc    *prometheus.Desc
}

func newCollectorForPool(pools PoolSource) prometheus.Collector {
	return &PoolMetricsCollector{
		pools: pools,
		totalMetricsDesc: prometheus.NewDesc(
			"poolconsole_pools_total",
			"The number of storage pools.",
			nil,
			nil,
		),
		sizeMetricsDesc: prometheus.NewDesc(
			"poolconsole_pool_replica_size",
			"The replica size of the pool.",
			[]string{"poolName", "type"},
			nil,
		),
		pgMetricsDesc: prometheus.NewDesc(
			"poolconsole_pool_placement_groups",
			"The placement group count of the pool.",
			[]string{"poolName", "type"},
			nil,
		),
	}
}

func (mc *PoolMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(mc, ch)
}

func (mc *PoolMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	log.Debug("Collecting metrics for Pool ...")
	list, err := mc.pools.StoragePoolList(api.QueryPage{PageSize: -1})
	if err != nil {
		log.WithError(err).Error("Failed to list pools")
		return
	}

	ch <- prometheus.MustNewConstMetric(mc.totalMetricsDesc, prometheus.GaugeValue, float64(len(list.StoragePools)))
	for _, pool := range list.StoragePools {
		ch <- prometheus.MustNewConstMetric(mc.sizeMetricsDesc, prometheus.GaugeValue, float64(pool.Size), pool.PoolName, pool.Type)
		ch <- prometheus.MustNewConstMetric(mc.pgMetricsDesc, prometheus.GaugeValue, float64(pool.PgPlacementNum), pool.PoolName, pool.Type)
	}
}
