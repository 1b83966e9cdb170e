// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xxnetwork/staking/thor"
)

// DefaultBlockPoints is credited to the author of each block.
const DefaultBlockPoints = 20

// StaticPoints credits a fixed number of points per block.
type StaticPoints uint32

func (p StaticPoints) BlockPoints() uint32 {
	return uint32(p)
}

const millisPerYear = 1000 * 3600 * 24 * 36525 / 100

// InflationPayout mints a yearly fraction of the issuance, pro rata to the
// era duration.
type InflationPayout struct {
	Rate thor.Perbill
}

// DefaultInflation is the payout used when none is given.
var DefaultInflation = InflationPayout{Rate: thor.PerbillFromPercent(10)}

func (p InflationPayout) EraPayout(_, totalIssuance thor.Balance, eraMillis uint64) (thor.Balance, thor.Balance) {
	yearly := p.Rate.MulBalance(totalIssuance)
	return yearly.MulUint64(eraMillis).DivUint64(millisPerYear), thor.Balance{}
}

// FixedPayout pays the same amount every era.
type FixedPayout struct {
	PerEra thor.Balance
}

func (p FixedPayout) EraPayout(thor.Balance, thor.Balance, uint64) (thor.Balance, thor.Balance) {
	return p.PerEra, thor.Balance{}
}
