// Package metrics holds the Prometheus collectors shared across the app.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harnessapi",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method and status class",
	}, []string{"method", "status"})

	FetchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "harnessapi",
		Name:      "fetch_runs_total",
		Help:      "Data fetch runs, by outcome",
	}, []string{"status"})

	FetchRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "harnessapi",
		Name:      "fetch_records_total",
		Help:      "Race records stored from external sources",
	})

	SampleRacesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "harnessapi",
		Name:      "sample_races_total",
		Help:      "Races created by the sample data generator",
	})

	SampleEntriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "harnessapi",
		Name:      "sample_entries_total",
		Help:      "Race entries created by the sample data generator",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		FetchRunsTotal,
		FetchRecordsTotal,
		SampleRacesTotal,
		SampleEntriesTotal,
	)
}
