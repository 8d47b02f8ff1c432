package behavior

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BehaviorEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_events_total",
			Help: "Count of processed behavior events by event_type.",
		},
		[]string{"event_type"},
	)
)

func init() {
	prometheus.MustRegister(BehaviorEventsTotal)
}
