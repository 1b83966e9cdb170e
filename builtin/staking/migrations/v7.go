// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package migrations

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/intent"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/weight"
)

// V7 seeds the validator and nominator counters.
func V7() *Migration {
	return &Migration{
		Name: "v7",
		From: types.V6_0_0,
		To:   types.V7_0_0,
		pre: func(env *Env) error {
			validators, nominators, err := intent.New(env.Ctx).Counters()
			if err != nil {
				return err
			}
			if validators != 0 {
				return errors.New("CounterForValidators already set")
			}
			if nominators != 0 {
				return errors.New("CounterForNominators already set")
			}
			return nil
		},
		run: func(env *Env) (weight.Weight, error) {
			intents := intent.New(env.Ctx)
			validators, nominators, err := intents.Count()
			if err != nil {
				return 0, err
			}
			if err := intents.SetCounters(validators, nominators); err != nil {
				return 0, err
			}
			logger.Debug("counters seeded", "validators", validators, "nominators", nominators)
			return env.DB.ReadsWrites(uint64(validators)+uint64(nominators), 2), nil
		},
	}
}
