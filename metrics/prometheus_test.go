// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	calls := CounterVec("test_calls_count", []string{"status"})
	for i := range 6 {
		status := "EXECUTED"
		if i%3 == 0 {
			status = "OUT_OF_GAS"
		}
		calls.AddWithLabel(1, map[string]string{"status": status})
	}
	Counter("test_records_count").Add(2)
	Counter("test_records_count").Add(3)

	Gauge("test_staged_keys").Set(7)
	Gauge("test_staged_keys").Add(-2)
	cache := GaugeVec("test_cache", []string{"stat"})
	cache.SetWithLabel(12, map[string]string{"stat": "entries"})
	cache.SetWithLabel(75, map[string]string{"stat": "hit_rate"})

	gasUsed := HistogramVec("test_gas_used", []string{"op"}, BucketGas)
	gasUsed.ObserveWithLabels(40, map[string]string{"op": "script"})
	gasUsed.ObserveWithLabels(60, map[string]string{"op": "script"})
	Histogram("test_published_bytes", nil).Observe(1000)

	families := gather(t)

	var executed, oog float64
	for _, m := range families["mvm_test_calls_count"].Metric {
		switch m.GetLabel()[0].GetValue() {
		case "EXECUTED":
			executed = m.GetCounter().GetValue()
		case "OUT_OF_GAS":
			oog = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(4), executed)
	assert.Equal(t, float64(2), oog)

	assert.Equal(t, float64(5), families["mvm_test_records_count"].Metric[0].GetCounter().GetValue())
	assert.Equal(t, float64(5), families["mvm_test_staged_keys"].Metric[0].GetGauge().GetValue())
	assert.Len(t, families["mvm_test_cache"].Metric, 2)

	hist := families["mvm_test_gas_used"].Metric[0].GetHistogram()
	assert.Equal(t, uint64(2), hist.GetSampleCount())
	assert.Equal(t, float64(100), hist.GetSampleSum())
	assert.Len(t, hist.GetBucket(), len(BucketGas))
	assert.Equal(t, float64(1000), families["mvm_test_published_bytes"].Metric[0].GetHistogram().GetSampleSum())
}

func TestMeterKindsDoNotCollide(t *testing.T) {
	InitializePrometheusMetrics()

	assert.IsType(t, counterMeter{}, Counter("test_shared_name"))
	// registration of the second collector fails, the meter is still usable
	g := Gauge("test_shared_name")
	assert.IsType(t, gaugeMeter{}, g)
	assert.NotPanics(t, func() { g.Set(1) })
}

func TestLazyLoading(t *testing.T) {
	metrics = noopMetrics{}

	lazyGauge := LazyLoadGauge("test_lazy_gauge")
	lazyGaugeVec := LazyLoadGaugeVec("test_lazy_gauge_vec", []string{"l"})
	lazyCounter := LazyLoadCounter("test_lazy_counter")
	lazyCounterVec := LazyLoadCounterVec("test_lazy_counter_vec", []string{"l"})
	lazyHistogram := LazyLoadHistogram("test_lazy_histogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("test_lazy_histogram_vec", []string{"l"}, nil)

	// meters resolve on first use, after the provider switch
	InitializePrometheusMetrics()

	require.IsType(t, gaugeMeter{}, lazyGauge())
	require.IsType(t, gaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, counterMeter{}, lazyCounter())
	require.IsType(t, counterVecMeter{}, lazyCounterVec())
	require.IsType(t, histogramMeter{}, lazyHistogram())
	require.IsType(t, histogramVecMeter{}, lazyHistogramVec())
}

func TestWriteText(t *testing.T) {
	InitializePrometheusMetrics()
	Counter("test_written").Add(3)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	assert.Contains(t, buf.String(), "mvm_test_written 3")
}
