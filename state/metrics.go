// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/xxnetwork/staking/log"
	"github.com/xxnetwork/staking/metrics"
)

var (
	logger             = log.WithContext("pkg", "state")
	metricCacheCounter = metrics.LazyLoadCounterVec("state_cache_count", []string{"event"})
)

// logCacheStats logs the read cache counters when the hit rate moved since
// the last commit.
func (s *State) logCacheStats() {
	if s.cache == nil {
		return
	}
	if changed, hit, miss := s.cache.Stats().Stats(); changed {
		logger.Debug("read cache stats", "hit", hit, "miss", miss)
	}
}
