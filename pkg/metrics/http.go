package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Cache hits on the caller-side recommendation memo
	RecommendCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_recommend_cache_hits_total",
		Help: "Recommendation responses served from the redis memo",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		RecommendCacheHits,
	)
}
