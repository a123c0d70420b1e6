//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package metrics implements Prometheus instrumentation for protocol
// kernels and party links.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fantastic4"

// KernelMetrics instruments kernel evaluations.
type KernelMetrics struct {
	// Calls counts kernel evaluations by kernel and status.
	Calls *prometheus.CounterVec

	// Latencies records kernel evaluation times.
	Latencies *prometheus.HistogramVec
}

// LinkMetrics instruments payload traffic between parties.
type LinkMetrics struct {
	// Bytes counts payload bytes by peer rank and direction.
	Bytes *prometheus.CounterVec

	// Messages counts payload messages by peer rank and direction.
	Messages *prometheus.CounterVec
}

// Metrics holds all instrumentation of one party.
type Metrics struct {
	Kernel KernelMetrics
	Link   LinkMetrics
}

// New creates the party metrics and registers them with reg. If reg
// is nil, the metrics are created but not registered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Kernel: KernelMetrics{
			Calls: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "kernel_calls_total",
					Help:      "How many kernel evaluations were made, partitioned by kernel and status.",
				},
				[]string{"kernel", "status"},
			),
			Latencies: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "kernel_latency_seconds",
					Help:      "How long kernel evaluations take, partitioned by kernel.",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
				},
				[]string{"kernel"},
			),
		},
		Link: LinkMetrics{
			Bytes: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "link_payload_bytes_total",
					Help:      "Payload bytes exchanged with peers, partitioned by peer and direction.",
				},
				[]string{"peer", "direction"},
			),
			Messages: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "link_messages_total",
					Help:      "Payload messages exchanged with peers, partitioned by peer and direction.",
				},
				[]string{"peer", "direction"},
			),
		},
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.Kernel.Calls, err = register(reg, m.Kernel.Calls); err != nil {
		return nil, err
	}
	if m.Kernel.Latencies, err = register(reg, m.Kernel.Latencies); err != nil {
		return nil, err
	}
	if m.Link.Bytes, err = register(reg, m.Link.Bytes); err != nil {
		return nil, err
	}
	if m.Link.Messages, err = register(reg, m.Link.Messages); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers the collector c with reg. If an identical
// collector is already registered, the existing one is returned.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Observe records one kernel evaluation.
func (m *KernelMetrics) Observe(kernel string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Calls.WithLabelValues(kernel, status).Inc()
	m.Latencies.WithLabelValues(kernel).Observe(time.Since(start).Seconds())
}

// Sent records a payload sent to peer.
func (m *LinkMetrics) Sent(peer, bytes int) {
	p := strconv.Itoa(peer)
	m.Bytes.WithLabelValues(p, "sent").Add(float64(bytes))
	m.Messages.WithLabelValues(p, "sent").Inc()
}

// Received records a payload received from peer.
func (m *LinkMetrics) Received(peer, bytes int) {
	p := strconv.Itoa(peer)
	m.Bytes.WithLabelValues(p, "received").Add(float64(bytes))
	m.Messages.WithLabelValues(p, "received").Inc()
}
