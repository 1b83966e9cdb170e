// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"sort"

	"github.com/xxnetwork/staking/thor"
)

// IndividualExposure is the part of a nominator's stake backing one validator.
type IndividualExposure struct {
	Who   thor.Address
	Value thor.Balance
}

// Exposure is the stake backing a validator in an era.
// Custody stake helped the election but is neither rewarded nor slashed,
// so it is kept out of Total, Own and Others.
type Exposure struct {
	Total   thor.Balance
	Custody thor.Balance
	Own     thor.Balance
	Others  []IndividualExposure
}

// LegacyExposure is the layout stored before V7_5_0.
type LegacyExposure struct {
	Total  thor.Balance
	Own    thor.Balance
	Others []IndividualExposure
}

// Upgrade converts to the current layout with no custody stake.
func (e LegacyExposure) Upgrade() Exposure {
	return Exposure{
		Total:  e.Total,
		Own:    e.Own,
		Others: e.Others,
	}
}

// Clipped keeps the max largest nominators. Total is unchanged, so the
// dropped nominators' share of the reward is not paid to anyone.
func (e *Exposure) Clipped(max int) Exposure {
	clipped := *e
	if len(e.Others) <= max {
		clipped.Others = append([]IndividualExposure(nil), e.Others...)
		return clipped
	}
	others := append([]IndividualExposure(nil), e.Others...)
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Value.Gt(others[j].Value)
	})
	clipped.Others = others[:max]
	return clipped
}
