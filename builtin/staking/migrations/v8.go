// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package migrations

import (
	"github.com/xxnetwork/staking/builtin/staking/intent"
	"github.com/xxnetwork/staking/builtin/staking/ledger"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/staking/voters"
	"github.com/xxnetwork/staking/builtin/weight"
	"github.com/xxnetwork/staking/thor"
)

// V8 builds the sorted voter list from the nominators.
func V8() *Migration {
	return &Migration{
		Name: "v8",
		From: types.V7_5_0,
		To:   types.V8_0_0,
		run: func(env *Env) (weight.Weight, error) {
			var ids []thor.Address
			if err := intent.New(env.Ctx).IterateNominators(func(stash thor.Address, _ types.Nominations) error {
				ids = append(ids, stash)
				return nil
			}); err != nil {
				return 0, err
			}

			ledgers := ledger.New(env.Ctx)
			migrated, err := voters.New(env.Ctx).Regenerate(ids, func(stash thor.Address) (uint64, error) {
				_, l, err := ledgers.GetByStash(stash)
				if err != nil || l == nil {
					return 0, err
				}
				return voters.Score(l.Active), nil
			})
			if err != nil {
				return 0, err
			}
			logger.Debug("voter list regenerated", "voters", migrated)
			return env.MaxBlock, nil
		},
		post: func(env *Env) error {
			return voters.New(env.Ctx).SanityCheck()
		},
	}
}
