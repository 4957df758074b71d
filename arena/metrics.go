// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arena

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is an [Allocator] that exports allocation statistics as
// Prometheus metrics.
type Metrics struct {
	upstream Allocator

	allocatedBytes  prometheus.Counter
	allocatedBlocks prometheus.Counter
	inUseBytes      prometheus.Gauge
	inUseBlocks     prometheus.Gauge
	failures        prometheus.Counter
}

var (
	_ Allocator            = (*Metrics)(nil)
	_ prometheus.Collector = (*Metrics)(nil)
)

// NewMetrics wraps upstream. The metric names are prefixed with namespace,
// which may be empty. The returned value is a [prometheus.Collector] and
// must be registered by the caller.
//
// If upstream is nil, [Heap] is used.
func NewMetrics(upstream Allocator, namespace string) *Metrics {
	if upstream == nil {
		upstream = Heap{}
	}
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace: namespace,
			Subsystem: "arena",
			Name:      name,
			Help:      help,
		}
	}
	return &Metrics{
		upstream: upstream,
		allocatedBytes: prometheus.NewCounter(prometheus.CounterOpts(
			opts("allocated_bytes_total", "Total bytes of storage allocated."))),
		allocatedBlocks: prometheus.NewCounter(prometheus.CounterOpts(
			opts("allocated_blocks_total", "Total blocks of storage allocated."))),
		inUseBytes: prometheus.NewGauge(prometheus.GaugeOpts(
			opts("in_use_bytes", "Bytes of storage currently allocated."))),
		inUseBlocks: prometheus.NewGauge(prometheus.GaugeOpts(
			opts("in_use_blocks", "Blocks of storage currently allocated."))),
		failures: prometheus.NewCounter(prometheus.CounterOpts(
			opts("allocation_failures_total", "Allocation requests that were refused."))),
	}
}

// Allocate implements [Allocator].
func (m *Metrics) Allocate(size, align int, backing func() unsafe.Pointer) (unsafe.Pointer, error) {
	ptr, err := m.upstream.Allocate(size, align, backing)
	if err != nil {
		m.failures.Inc()
		return nil, err
	}
	m.allocatedBytes.Add(float64(size))
	m.allocatedBlocks.Inc()
	m.inUseBytes.Add(float64(size))
	m.inUseBlocks.Inc()
	return ptr, nil
}

// Release implements [Allocator].
func (m *Metrics) Release(ptr unsafe.Pointer, size int) {
	m.upstream.Release(ptr, size)
	m.inUseBytes.Sub(float64(size))
	m.inUseBlocks.Dec()
}

// Describe implements [prometheus.Collector].
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements [prometheus.Collector].
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.allocatedBytes, m.allocatedBlocks,
		m.inUseBytes, m.inUseBlocks,
		m.failures,
	}
}
