// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand/v2"
)

func RandUint32N(n uint32) uint32 {
	return mathrand.Uint32N(n) //#nosec G404
}

func RandUint64N(n uint64) uint64 {
	return mathrand.Uint64N(n) //#nosec G404
}

func RandIntN(n int) int {
	return mathrand.N(n) //#nosec G404
}
