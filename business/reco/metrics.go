package reco

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_rank_requests_total",
			Help: "Count of ranking calls by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	RankEmptyResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reco_rank_empty_results_total",
			Help: "Ranking calls that legitimately produced zero products.",
		},
		[]string{"strategy"},
	)

	RankDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_rank_duration_seconds",
		Help:    "Time spent scoring and sorting one ranking call.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(RankRequestsTotal, RankEmptyResultsTotal, RankDuration)
}
