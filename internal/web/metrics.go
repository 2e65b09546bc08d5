package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psychrometric_calculations_total",
			Help: "Number of calculations submitted through the web form",
		},
		[]string{"outcome"},
	)
)
