// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics provides opt-in Prometheus instrumentation for the
// server's request, cache, and SSI paths. Safe to call from hot paths:
// a nil *Metrics (the zero-configuration default) makes every method a
// no-op.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the full set of server counters, gauges, and histograms,
// registered on a dedicated registry rather than the global default so
// multiple instances (e.g. in tests) never collide on duplicate
// registration.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal  *prometheus.CounterVec
	laneDepth      *prometheus.GaugeVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	ssiExecTotal   *prometheus.CounterVec
	workerBusy     *prometheus.GaugeVec
	weightBucket   prometheus.Histogram
}

// New constructs and registers a fresh metric set.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zhttpto_requests_total",
			Help: "Total requests handled, by final status.",
		}, []string{"status"}),
		laneDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "zhttpto_lane_depth",
			Help: "Current number of queued requests per scheduler lane.",
		}, []string{"lane"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zhttpto_cache_hits_total",
			Help: "Total content cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zhttpto_cache_misses_total",
			Help: "Total content cache misses.",
		}),
		ssiExecTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zhttpto_ssi_exec_total",
			Help: "Total #exec directives evaluated, by outcome.",
		}, []string{"outcome"}),
		workerBusy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "zhttpto_worker_busy",
			Help: "Number of worker goroutines currently handling a request, per lane.",
		}, []string{"lane"}),
		weightBucket: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "zhttpto_weight_bucket",
			Help:    "Distribution of the weight assigned to scheduled requests.",
			Buckets: []float64{1, 2, 8, 32, 128, 512, 2048, 8192, 32768, 131072},
		}),
	}
	m.registry.MustRegister(
		m.requestsTotal, m.laneDepth, m.cacheHits, m.cacheMisses,
		m.ssiExecTotal, m.workerBusy, m.weightBucket,
	)
	return m
}

// ObserveRequest records the outcome of handling one request.
func (m *Metrics) ObserveRequest(status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(status).Inc()
}

// SetLaneDepth reports the current depth of lane.
func (m *Metrics) SetLaneDepth(lane string, depth int) {
	if m == nil {
		return
	}
	m.laneDepth.WithLabelValues(lane).Set(float64(depth))
}

// ObserveCacheHit records a content cache hit.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// ObserveCacheMiss records a content cache miss.
func (m *Metrics) ObserveCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

// ObserveSSIExec records a single #exec directive evaluation. outcome is
// typically "ok" or "error".
func (m *Metrics) ObserveSSIExec(outcome string) {
	if m == nil {
		return
	}
	m.ssiExecTotal.WithLabelValues(outcome).Inc()
}

// SetWorkerBusy reports how many workers on lane are currently handling a
// request.
func (m *Metrics) SetWorkerBusy(lane string, n int) {
	if m == nil {
		return
	}
	m.workerBusy.WithLabelValues(lane).Set(float64(n))
}

// ObserveWeight records a scheduled request's assigned weight.
func (m *Metrics) ObserveWeight(weight uint64) {
	if m == nil {
		return
	}
	m.weightBucket.Observe(float64(weight))
}

// ServeHTTP exposes the registered metrics on /metrics, mirroring the
// teacher's opt-in dedicated metrics endpoint.
func (m *Metrics) ServeHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
	return server
}
