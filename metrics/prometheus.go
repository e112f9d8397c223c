// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vechain/mvm/log"
)

const namespace = "mvm"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the provider to prometheus. Meters
// are registered with the default registry. Calling it again is a no-op.
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = &prometheusMetrics{registerer: prometheus.DefaultRegisterer}
	}
}

// WriteText writes every registered metric in the prometheus text format.
func WriteText(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

type meterKey struct {
	kind string
	name string
}

type prometheusMetrics struct {
	registerer prometheus.Registerer
	meters     sync.Map // meterKey -> meter
}

// load returns the meter registered under kind and name, creating and
// registering it on first use.
func load[T any](p *prometheusMetrics, kind, name string, create func() (prometheus.Collector, T)) T {
	key := meterKey{kind, name}
	if m, ok := p.meters.Load(key); ok {
		return m.(T)
	}
	collector, meter := create()
	if actual, loaded := p.meters.LoadOrStore(key, meter); loaded {
		return actual.(T)
	}
	if err := p.registerer.Register(collector); err != nil {
		logger.Warn("unable to register metric", "kind", kind, "name", name, "err", err)
	}
	return meter
}

func floatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = float64(b)
	}
	return out
}

func (p *prometheusMetrics) counter(name string) CountMeter {
	return load(p, "counter", name, func() (prometheus.Collector, CountMeter) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, counterMeter{c}
	})
}

func (p *prometheusMetrics) counterVec(name string, labels []string) CountVecMeter {
	return load(p, "counterVec", name, func() (prometheus.Collector, CountVecMeter) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return c, counterVecMeter{c}
	})
}

func (p *prometheusMetrics) gauge(name string) GaugeMeter {
	return load(p, "gauge", name, func() (prometheus.Collector, GaugeMeter) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		return g, gaugeMeter{g}
	})
}

func (p *prometheusMetrics) gaugeVec(name string, labels []string) GaugeVecMeter {
	return load(p, "gaugeVec", name, func() (prometheus.Collector, GaugeVecMeter) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		return g, gaugeVecMeter{g}
	})
}

func (p *prometheusMetrics) histogram(name string, buckets []int64) HistogramMeter {
	return load(p, "histogram", name, func() (prometheus.Collector, HistogramMeter) {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		})
		return h, histogramMeter{h}
	})
}

func (p *prometheusMetrics) histogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return load(p, "histogramVec", name, func() (prometheus.Collector, HistogramVecMeter) {
		h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets(buckets),
		}, labels)
		return h, histogramVecMeter{h}
	})
}

type counterMeter struct{ c prometheus.Counter }

func (m counterMeter) Add(i int64) { m.c.Add(float64(i)) }

type counterVecMeter struct{ c *prometheus.CounterVec }

func (m counterVecMeter) AddWithLabel(i int64, labels map[string]string) {
	m.c.With(labels).Add(float64(i))
}

type gaugeMeter struct{ g prometheus.Gauge }

func (m gaugeMeter) Add(i int64) { m.g.Add(float64(i)) }
func (m gaugeMeter) Set(i int64) { m.g.Set(float64(i)) }

type gaugeVecMeter struct{ g *prometheus.GaugeVec }

func (m gaugeVecMeter) AddWithLabel(i int64, labels map[string]string) {
	m.g.With(labels).Add(float64(i))
}

func (m gaugeVecMeter) SetWithLabel(i int64, labels map[string]string) {
	m.g.With(labels).Set(float64(i))
}

type histogramMeter struct{ h prometheus.Histogram }

func (m histogramMeter) Observe(i int64) { m.h.Observe(float64(i)) }

type histogramVecMeter struct{ h *prometheus.HistogramVec }

func (m histogramVecMeter) ObserveWithLabels(i int64, labels map[string]string) {
	m.h.With(labels).Observe(float64(i))
}
