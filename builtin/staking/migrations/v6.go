// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package migrations

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/builtin/weight"
)

// items of the offchain election, dropped in V6_0_0
var legacyElectionItems = []string{
	"SnapshotValidators",
	"SnapshotNominators",
	"QueuedElected",
	"QueuedScore",
	"EraElectionStatus",
	"IsCurrentSessionFinal",
}

func legacyItem(sctx *storage.Context, name string) *storage.Value[rlp.RawValue] {
	return storage.NewValue[rlp.RawValue](sctx, "Staking", name)
}

// V6 removes the storage of the offchain election.
func V6() *Migration {
	return &Migration{
		Name: "v6",
		From: types.V5_0_0,
		To:   types.V6_0_0,
		pre: func(env *Env) error {
			for _, name := range legacyElectionItems {
				exists, err := legacyItem(env.Ctx, name).Exists()
				if err != nil {
					return err
				}
				logger.Debug("legacy election item", "name", name, "exists", exists)
				if !exists && (name == "IsCurrentSessionFinal" || name == "EraElectionStatus") {
					return errors.Errorf("%s storage item not found", name)
				}
			}
			return nil
		},
		run: func(env *Env) (weight.Weight, error) {
			for _, name := range legacyElectionItems {
				legacyItem(env.Ctx, name).Kill()
			}
			return env.DB.Writes(uint64(len(legacyElectionItems)) + 1), nil
		},
	}
}
