package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var generationTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pitchcraft_generation_total",
		Help: "Generator results by task and source (generated or fallback).",
	},
	[]string{"task", "source"},
)
