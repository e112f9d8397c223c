// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

// noopMetrics hands out meters that discard every sample.
type noopMetrics struct{}

func (noopMetrics) counter(string) CountMeter                 { return noopMeter{} }
func (noopMetrics) counterVec(string, []string) CountVecMeter { return noopMeter{} }
func (noopMetrics) gauge(string) GaugeMeter                   { return noopMeter{} }
func (noopMetrics) gaugeVec(string, []string) GaugeVecMeter   { return noopMeter{} }
func (noopMetrics) histogram(string, []int64) HistogramMeter  { return noopMeter{} }
func (noopMetrics) histogramVec(string, []string, []int64) HistogramVecMeter {
	return noopMeter{}
}

type noopMeter struct{}

func (noopMeter) Add(int64)                                  {}
func (noopMeter) Set(int64)                                  {}
func (noopMeter) Observe(int64)                              {}
func (noopMeter) AddWithLabel(int64, map[string]string)      {}
func (noopMeter) SetWithLabel(int64, map[string]string)      {}
func (noopMeter) ObserveWithLabels(int64, map[string]string) {}
