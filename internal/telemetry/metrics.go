package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookshelf_telemetry_events_total",
		Help: "Telemetry events recorded, by level",
	},
	[]string{"level"},
)
