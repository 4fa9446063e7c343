/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package metrics provides Prometheus metrics for the SysEx codec.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Encoding label values
const (
	EncodingUMP   = "ump"
	EncodingBytes = "bytes"
)

// Error kind label values
const (
	KindFraming  = "framing"
	KindOverflow = "overflow"
	KindInvalid  = "invalid"
)

// SysexMetrics holds counters of the reassembly engines.
// A nil *SysexMetrics is valid and records nothing.
type SysexMetrics struct {
	// FragmentsTotal counts accepted UMP fragments.
	// Labels: status (Complete, Start, Continue, End)
	FragmentsTotal *prometheus.CounterVec

	// MessagesTotal counts completed SysEx messages.
	// Labels: encoding (ump, bytes)
	MessagesTotal *prometheus.CounterVec

	// ErrorsTotal counts rejected input.
	// Labels: encoding, kind (framing, overflow, invalid)
	ErrorsTotal *prometheus.CounterVec

	// PayloadBytes tracks the payload size of completed messages.
	// Labels: encoding
	PayloadBytes *prometheus.HistogramVec
}

// DefaultPayloadBuckets spans single fragments up to bulk sample dumps
var DefaultPayloadBuckets = prometheus.ExponentialBuckets(6, 4, 8)

// NewSysexMetrics creates the metrics and registers them with the default registry
func NewSysexMetrics() *SysexMetrics {
	return NewSysexMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewSysexMetricsWithRegistry creates the metrics registered with reg.
// Useful for testing to avoid conflicts with the default registry.
func NewSysexMetricsWithRegistry(reg prometheus.Registerer) *SysexMetrics {
	factory := promauto.With(reg)
	return &SysexMetrics{
		FragmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ump",
				Subsystem: "sysex",
				Name:      "fragments_total",
				Help:      "Total number of accepted SysEx7 fragments, broken down by status.",
			},
			[]string{"status"},
		),
		MessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ump",
				Subsystem: "sysex",
				Name:      "messages_total",
				Help:      "Total number of reassembled SysEx messages, broken down by encoding.",
			},
			[]string{"encoding"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ump",
				Subsystem: "sysex",
				Name:      "errors_total",
				Help:      "Total number of rejected SysEx inputs, broken down by encoding and kind.",
			},
			[]string{"encoding", "kind"},
		),
		PayloadBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ump",
				Subsystem: "sysex",
				Name:      "payload_bytes",
				Help:      "Payload size of reassembled SysEx messages in bytes.",
				Buckets:   DefaultPayloadBuckets,
			},
			[]string{"encoding"},
		),
	}
}

// RecordFragment counts an accepted fragment
func (m *SysexMetrics) RecordFragment(status string) {
	if m == nil {
		return
	}
	m.FragmentsTotal.WithLabelValues(status).Inc()
}

// RecordMessage counts a completed message and observes its payload size
func (m *SysexMetrics) RecordMessage(encoding string, payloadLen int) {
	if m == nil {
		return
	}
	m.MessagesTotal.WithLabelValues(encoding).Inc()
	m.PayloadBytes.WithLabelValues(encoding).Observe(float64(payloadLen))
}

// RecordError counts a rejected input
func (m *SysexMetrics) RecordError(encoding, kind string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(encoding, kind).Inc()
}
