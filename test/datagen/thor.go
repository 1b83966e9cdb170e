// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/xxnetwork/staking/thor"
)

func RandAddress() (a thor.Address) {
	rand.Read(a[:])
	return
}

// RandCmixID returns a random cmix node token.
func RandCmixID() *thor.Bytes32 {
	var b thor.Bytes32
	rand.Read(b[:])
	return &b
}

func RandBytes32() (b thor.Bytes32) {
	rand.Read(b[:])
	return
}

// RandBalance returns a balance in [min, min+spread).
func RandBalance(min, spread uint64) thor.Balance {
	if spread == 0 {
		return thor.NewBalance(min)
	}
	return thor.NewBalance(min + RandUint64N(spread))
}

// RandPerbill returns a fraction not above max.
func RandPerbill(max thor.Perbill) thor.Perbill {
	return thor.Perbill(RandUint32N(max.Parts() + 1))
}
