// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"

	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/thor"
)

// DevAccount is a stash and controller pair of the dev network.
type DevAccount struct {
	Stash      thor.Address
	Controller thor.Address
	CmixID     thor.Bytes32
}

func devAddress(kind string, i int) thor.Address {
	return thor.BytesToAddress(thor.Blake2b([]byte(fmt.Sprintf("devnet/%s/%d", kind, i))).Bytes())
}

// DevAccounts returns the pre-alloced accounts of the dev network.
func DevAccounts() []DevAccount {
	accs := make([]DevAccount, 0, 8)
	for i := range 8 {
		accs = append(accs, DevAccount{
			Stash:      devAddress("stash", i),
			Controller: devAddress("controller", i),
			CmixID:     thor.Blake2b([]byte(fmt.Sprintf("devnet/cmix/%d", i))),
		})
	}
	return accs
}

// NewDevnet returns the definition of the dev network: five validators
// competing for four seats, one idle stash and two nominators, the last
// of them a custody account.
func NewDevnet() *CustomGenesis {
	config := staking.DefaultConfig()
	config.SessionsPerEra = 3
	config.BondingDuration = 4
	config.SlashDeferDuration = 2
	config.HistoryDepth = 16
	config.ValidatorCount = 4
	config.MinimumValidatorCount = 1
	config.MinNominatorBond = thor.NewBalance(1_000)
	config.MinValidatorBond = thor.NewBalance(10_000)

	gen := &CustomGenesis{
		LaunchTime:         1_700_000_000_000,
		SessionMillis:      defaultSessionMillis,
		ExistentialDeposit: thor.NewBalance(1),
		BlockPoints:        staking.DefaultBlockPoints,
		Staking:            config,
	}

	accs := DevAccounts()
	for i, acc := range accs {
		gen.Accounts = append(gen.Accounts,
			Account{Address: acc.Stash, Balance: thor.NewBalance(10_000_000)},
			Account{Address: acc.Controller, Balance: thor.NewBalance(1_000)},
		)
		staker := Staker{
			Stash:      acc.Stash,
			Controller: acc.Controller,
			Amount:     thor.NewBalance(uint64(1_000_000 + 100_000*i)),
		}
		switch {
		case i < 5:
			id := acc.CmixID
			staker.Role = RoleValidator
			staker.CmixID = &id
			staker.Commission = thor.PerbillFromPercent(uint32(5 + i))
		case i == 5:
			staker.Role = RoleIdle
		default:
			staker.Role = RoleNominator
			staker.Targets = []thor.Address{accs[0].Stash, accs[1].Stash, accs[2].Stash}
		}
		gen.Stakers = append(gen.Stakers, staker)
	}
	gen.Custody = []thor.Address{accs[7].Stash}
	return gen
}
