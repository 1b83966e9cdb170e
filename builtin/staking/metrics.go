// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/xxnetwork/staking/metrics"

var (
	metricCalls     = metrics.LazyLoadCounterVec("staking_calls_count", []string{"call", "result"})
	metricActiveEra = metrics.LazyLoadGauge("staking_active_era")
	metricElected   = metrics.LazyLoadGauge("staking_elected_validators")
	metricPayouts   = metrics.LazyLoadCounter("staking_payouts_count")
	metricSlashes   = metrics.LazyLoadCounterVec("staking_slashes_count", []string{"outcome"})
)
