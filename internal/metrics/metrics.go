// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus instruments for the identity core:
// password hashing latency, authentication outcomes, token issuance and
// revocation, optimistic-concurrency conflicts and HTTP traffic.
//
// All Record* methods are safe to call on a nil *Metrics, which turns them
// into no-ops. Tests and tools that do not care about metrics pass nil.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shelf_auth"

// Hash operation labels.
const (
	OpHash   = "hash"
	OpVerify = "verify"
)

// Authentication flow labels.
const (
	FlowRegister = "register"
	FlowLogin    = "login"
	FlowToken    = "token"
)

// Outcome labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Metrics groups the instruments on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	hashDuration     *prometheus.HistogramVec
	authAttempts     *prometheus.CounterVec
	tokensIssued     prometheus.Counter
	tokensRevoked    prometheus.Counter
	versionConflicts prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates the instruments and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		hashDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "password_hash_duration_seconds",
			Help:      "Time spent computing or verifying password hashes.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Registration, login and token authentication attempts by outcome.",
		}, []string{"flow", "result"}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Session tokens issued and recorded.",
		}),
		tokensRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_revoked_total",
			Help:      "Session tokens removed by logout.",
		}),
		versionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "version_conflicts_total",
			Help:      "Profile saves rejected by the optimistic version check.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.hashDuration,
		m.authAttempts,
		m.tokensIssued,
		m.tokensRevoked,
		m.versionConflicts,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordHash(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.hashDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) RecordAuth(flow, result string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(flow, result).Inc()
}

func (m *Metrics) RecordTokenIssued() {
	if m == nil {
		return
	}
	m.tokensIssued.Inc()
}

func (m *Metrics) RecordTokensRevoked(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tokensRevoked.Add(float64(n))
}

func (m *Metrics) RecordVersionConflict() {
	if m == nil {
		return
	}
	m.versionConflicts.Inc()
}

// RecordHTTP records one served request. route is the chi route pattern, not
// the raw path, to keep label cardinality bounded.
func (m *Metrics) RecordHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
