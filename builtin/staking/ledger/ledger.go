// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

// Service keeps the stash to controller pairing and the ledgers.
type Service struct {
	bonded  *storage.Map[thor.Address, thor.Address]
	ledgers *storage.Map[thor.Address, types.StakingLedger]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		bonded:  storage.NewMap[thor.Address, thor.Address](sctx, module, "Bonded", storage.AddressKey),
		ledgers: storage.NewMap[thor.Address, types.StakingLedger](sctx, module, "Ledger", storage.AddressKey),
	}
}

// Controller returns the controller bonded to stash.
func (s *Service) Controller(stash thor.Address) (thor.Address, bool, error) {
	controller, ok, err := s.bonded.Get(stash)
	if err != nil {
		return thor.Address{}, false, errors.Wrap(err, "failed to get controller")
	}
	return controller, ok, nil
}

// IsStash reports whether who is bonded as a stash.
func (s *Service) IsStash(who thor.Address) (bool, error) {
	ok, err := s.bonded.Has(who)
	if err != nil {
		return false, errors.Wrap(err, "failed to get bonded")
	}
	return ok, nil
}

// Get returns the ledger controlled by controller, nil if none.
func (s *Service) Get(controller thor.Address) (*types.StakingLedger, error) {
	l, ok, err := s.ledgers.Get(controller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ledger")
	}
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// GetByStash resolves the controller of stash and returns its ledger.
func (s *Service) GetByStash(stash thor.Address) (thor.Address, *types.StakingLedger, error) {
	controller, ok, err := s.Controller(stash)
	if err != nil || !ok {
		return thor.Address{}, nil, err
	}
	l, err := s.Get(controller)
	if err != nil {
		return thor.Address{}, nil, err
	}
	return controller, l, nil
}

// Bond pairs stash with controller.
func (s *Service) Bond(stash, controller thor.Address) error {
	if err := s.bonded.Set(stash, controller); err != nil {
		return errors.Wrap(err, "failed to set bonded")
	}
	return nil
}

// Update writes the ledger of controller.
func (s *Service) Update(controller thor.Address, l *types.StakingLedger) error {
	if err := s.ledgers.Set(controller, *l); err != nil {
		return errors.Wrap(err, "failed to set ledger")
	}
	return nil
}

// Kill removes the pairing and the ledger.
func (s *Service) Kill(stash, controller thor.Address) {
	s.bonded.Remove(stash)
	s.ledgers.Remove(controller)
}

// Iterate visits every ledger by controller.
func (s *Service) Iterate(fn func(controller thor.Address, l *types.StakingLedger) error) error {
	return s.ledgers.Iterate(func(controller thor.Address, l types.StakingLedger) error {
		return fn(controller, &l)
	})
}
