// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/mvm/metrics"

var (
	metricCallCount      = metrics.LazyLoadCounterVec("runtime_calls_count", []string{"op", "status"})
	metricGasUsed        = metrics.LazyLoadHistogramVec("runtime_gas_used", []string{"op"}, metrics.BucketGas)
	metricPublishedBytes = metrics.LazyLoadHistogram("runtime_published_bytes", metrics.BucketBytes)
	metricAdmissionCache = metrics.LazyLoadCounterVec("runtime_admission_cache_count", []string{"event"})
	metricAdmissionStats = metrics.LazyLoadGaugeVec("runtime_admission_cache", []string{"stat"})
)
