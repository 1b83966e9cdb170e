// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cmix maps cmix node tokens to the stash holding them.
// It is the inverse of StakingLedger.CmixID.
package cmix

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

type Registry struct {
	ids *storage.Map[thor.Bytes32, thor.Address]
}

func New(sctx *storage.Context) *Registry {
	return &Registry{
		ids: storage.NewMap[thor.Bytes32, thor.Address](sctx, module, "CmixIds", storage.Bytes32Key),
	}
}

// Owner returns the stash holding token.
func (r *Registry) Owner(token thor.Bytes32) (thor.Address, bool, error) {
	stash, ok, err := r.ids.Get(token)
	if err != nil {
		return thor.Address{}, false, errors.Wrap(err, "failed to get cmix id owner")
	}
	return stash, ok, nil
}

// Contains reports whether token is held by any stash.
func (r *Registry) Contains(token thor.Bytes32) (bool, error) {
	ok, err := r.ids.Has(token)
	if err != nil {
		return false, errors.Wrap(err, "failed to get cmix id")
	}
	return ok, nil
}

// Register assigns token to stash, replacing any previous holder.
func (r *Registry) Register(token thor.Bytes32, stash thor.Address) error {
	if err := r.ids.Set(token, stash); err != nil {
		return errors.Wrap(err, "failed to set cmix id")
	}
	return nil
}

// Release frees token.
func (r *Registry) Release(token thor.Bytes32) {
	r.ids.Remove(token)
}

func (r *Registry) Iterate(fn func(token thor.Bytes32, stash thor.Address) error) error {
	return r.ids.Iterate(fn)
}
