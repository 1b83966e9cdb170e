// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package exposure

import (
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// Build turns the backers an election assigned to validator into an exposure.
// The validator's own backing is Own. Custody backing is set aside.
func Build(validator thor.Address, backers []types.IndividualExposure, isCustody func(thor.Address) bool) types.Exposure {
	var e types.Exposure
	for _, b := range backers {
		switch {
		case b.Who == validator:
			e.Own = e.Own.Add(b.Value)
		case isCustody(b.Who):
			e.Custody = e.Custody.Add(b.Value)
		default:
			e.Others = append(e.Others, b)
		}
	}
	e.Total = e.Own
	for _, o := range e.Others {
		e.Total = e.Total.Add(o.Value)
	}
	return e
}

// Split divides the payout of one validator. Commission is taken first and
// the rest is shared by stake. It returns the validator's part and the part
// of each nominator, in the order of e.Others.
func Split(e *types.Exposure, commission thor.Perbill, payout thor.Balance) (thor.Balance, []thor.Balance) {
	fee := commission.MulBalance(payout)
	leftover := payout.Sub(fee)

	// an empty exposure leaves everything to the validator
	own := thor.PerbillFromRational(e.Own, e.Total).MulBalance(leftover)
	parts := make([]thor.Balance, len(e.Others))
	for i, o := range e.Others {
		parts[i] = thor.PerbillFromRational(o.Value, e.Total).MulBalance(leftover)
	}
	return fee.Add(own), parts
}
