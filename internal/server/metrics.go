package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	steps       prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shunt_conversions_total",
				Help: "Conversions served, by mode and outcome (ok, cached, mismatch, error).",
			},
			[]string{"mode", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shunt_conversion_duration_seconds",
				Help:    "Time spent converting one expression.",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"mode"},
		),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shunt_steps",
			Help:    "Number of steps in a returned trace.",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
	}
	reg.MustRegister(m.conversions, m.duration, m.steps)
	return m
}
