// Package metrics holds the Prometheus collectors updated by the indexes.
// Every collector is labeled by index kind ("hnsw" or "bruteforce").
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Inserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annindex_inserts_total",
			Help: "Total number of points added or overwritten",
		},
		[]string{"index"},
	)

	Deletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annindex_deletes_total",
			Help: "Total number of points removed or tombstoned",
		},
		[]string{"index"},
	)

	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annindex_searches_total",
			Help: "Total number of knn queries",
		},
		[]string{"index"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "annindex_search_duration_seconds",
			Help:    "Duration of knn queries in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"index"},
	)

	InsufficientResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annindex_insufficient_results_total",
			Help: "Number of knn queries that found fewer than k eligible points",
		},
		[]string{"index"},
	)

	Resizes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "annindex_resizes_total",
			Help: "Number of capacity changes",
		},
		[]string{"index"},
	)
)
