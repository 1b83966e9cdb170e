// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"github.com/xxnetwork/staking/thor"
)

// ActiveEraInfo describes the era whose exposures are used for rewards and slashing.
type ActiveEraInfo struct {
	Index uint32
	Start *uint64 `rlp:"nil"` // unix millis, set by the first session of the era
}

// Forcing controls how eras are triggered.
type Forcing uint8

const (
	NotForcing  Forcing = iota // new era at the end of every SessionsPerEra sessions
	ForceNew                   // new era at the next session, then back to NotForcing
	ForceNone                  // never plan a new era
	ForceAlways                // new era at every session
)

func (f Forcing) String() string {
	switch f {
	case NotForcing:
		return "NotForcing"
	case ForceNew:
		return "ForceNew"
	case ForceNone:
		return "ForceNone"
	case ForceAlways:
		return "ForceAlways"
	}
	return "Forcing(?)"
}

// ValidatorPrefs is the intent to validate.
type ValidatorPrefs struct {
	Commission thor.Perbill
	Blocked    bool // reject new nominations
}

// Nominations is the intent to nominate.
type Nominations struct {
	Targets     []thor.Address
	SubmittedIn uint32
	Suppressed  bool
}

// Voter is a node of the sorted voter list.
type Voter struct {
	Stash thor.Address
	Score uint64
}
