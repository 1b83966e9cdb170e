// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package migrations

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/exposure"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/builtin/weight"
	"github.com/xxnetwork/staking/thor"
)

// V7_5 adds the custody stake to every stored exposure.
func V7_5() *Migration {
	return &Migration{
		Name: "v7.5",
		From: types.V7_0_0,
		To:   types.V7_5_0,
		run: func(env *Env) (weight.Weight, error) {
			exposures := exposure.New(env.Ctx)
			upgrade := func(_ uint32, _ thor.Address, old types.LegacyExposure) (types.Exposure, bool) {
				return old.Upgrade(), true
			}

			var n uint64
			for _, m := range []*storage.DoubleMap[uint32, thor.Address, types.Exposure]{
				exposures.Stakers(),
				exposures.ClippedStakers(),
			} {
				visited, err := storage.TranslateDoubleMap(m, upgrade)
				if err != nil {
					return 0, errors.Wrap(err, "failed to translate exposures")
				}
				n += visited
			}
			logger.Debug("exposures upgraded", "count", n)
			return env.DB.ReadsWrites(1+n, 1+n), nil
		},
		post: func(env *Env) error {
			exposures := exposure.New(env.Ctx)
			for _, m := range []*storage.DoubleMap[uint32, thor.Address, types.Exposure]{
				exposures.Stakers(),
				exposures.ClippedStakers(),
			} {
				if err := m.Iterate(func(era uint32, v thor.Address, e types.Exposure) error {
					if !e.Custody.IsZero() {
						return errors.Errorf("custody value is not zero: era %d validator %v", era, v)
					}
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
