// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"github.com/xxnetwork/staking/thor"
)

// UnappliedSlash is a slash waiting for its application era.
type UnappliedSlash struct {
	Validator thor.Address
	Own       thor.Balance
	Others    []IndividualExposure
	Reporters []thor.Address
	Payout    thor.Balance
}
