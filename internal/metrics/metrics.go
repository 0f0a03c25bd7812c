// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics exposes Prometheus instrumentation for the publish
// pipeline. Side-effect outcomes are counted, not just logged, so
// degraded states stay queryable.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all application metrics. A nil *Metrics is a valid
// no-op recorder, which keeps tests free of registry setup.
type Metrics struct {
	ValidationsTotal *prometheus.CounterVec
	PublishesTotal   *prometheus.CounterVec
	SideEffectsTotal *prometheus.CounterVec
	PublishDuration  prometheus.Histogram
}

// New creates the metrics set and registers it with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "landingpress_validations_total",
			Help: "Content validations by outcome (valid, invalid).",
		}, []string{"outcome"}),

		PublishesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "landingpress_publishes_total",
			Help: "Publish attempts by outcome (published, noop, rejected).",
		}, []string{"outcome"}),

		SideEffectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "landingpress_side_effects_total",
			Help: "Best-effort side effects by effect and status.",
		}, []string{"effect", "status"}),

		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "landingpress_publish_duration_seconds",
			Help:    "End-to-end publish duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.ValidationsTotal, m.PublishesTotal, m.SideEffectsTotal, m.PublishDuration)
	return m
}

// Validation counts one validation outcome.
func (m *Metrics) Validation(outcome string) {
	if m == nil {
		return
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

// Publish counts one publish outcome.
func (m *Metrics) Publish(outcome string) {
	if m == nil {
		return
	}
	m.PublishesTotal.WithLabelValues(outcome).Inc()
}

// SideEffect counts one best-effort side effect result.
func (m *Metrics) SideEffect(effect, status string) {
	if m == nil {
		return
	}
	m.SideEffectsTotal.WithLabelValues(effect, status).Inc()
}

// ObservePublish records one publish duration.
func (m *Metrics) ObservePublish(seconds float64) {
	if m == nil {
		return
	}
	m.PublishDuration.Observe(seconds)
}
