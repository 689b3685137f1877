// Copyright 2025 walteh LLC
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

// Package metrics records invocation counters and durations and writes them
// in the Prometheus text format for a node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/walteh/opstep/pkg/operation"
	"github.com/walteh/opstep/pkg/record"
	"gitlab.com/tozd/go/errors"
)

// Namespace prefixes every metric name.
const Namespace = "opstep"

// default buckets for invocation duration, in seconds
var defaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

var _ operation.Observer = (*Recorder)(nil)

// 📈 Recorder collects metrics for one process
type Recorder struct {
	registry *prometheus.Registry

	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec
	lastInvocation     prometheus.Gauge
}

// 🏭 New creates a recorder with its own registry
func New(operationName string) *Recorder {
	constLabels := prometheus.Labels{"operation": operationName}

	r := &Recorder{
		registry: prometheus.NewRegistry(),

		invocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   Namespace,
				Name:        "invocations_total",
				Help:        "Total number of invocations by record shape and result",
				ConstLabels: constLabels,
			},
			[]string{"shape", "result"},
		),

		invocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   Namespace,
				Name:        "invocation_duration_seconds",
				Help:        "Time from decoding the payload to writing the output",
				ConstLabels: constLabels,
				Buckets:     defaultBuckets,
			},
			[]string{"shape"},
		),

		lastInvocation: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   Namespace,
				Name:        "last_invocation_timestamp_seconds",
				Help:        "Unix time of the last finished invocation",
				ConstLabels: constLabels,
			},
		),
	}

	r.registry.MustRegister(r.invocationsTotal, r.invocationDuration, r.lastInvocation)
	return r
}

// Observe implements operation.Observer
func (r *Recorder) Observe(shape record.Shape, result string, elapsed time.Duration) {
	s := shapeLabel(shape)
	r.invocationsTotal.WithLabelValues(s, result).Inc()
	r.invocationDuration.WithLabelValues(s).Observe(elapsed.Seconds())
	r.lastInvocation.SetToCurrentTime()
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// 💾 WriteFile writes the metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

func shapeLabel(shape record.Shape) string {
	if shape == record.ShapeUnknown {
		return "unknown"
	}
	return string(shape)
}
