package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var upstreamRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookshelf_upstream_requests_total",
		Help: "Calls to the books API, by operation and outcome",
	},
	[]string{"op", "outcome"},
)

func observe(op string, outcome Outcome) {
	upstreamRequests.WithLabelValues(op, outcome.String()).Inc()
}
