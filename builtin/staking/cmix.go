// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// stashLedger loads the ledger of stash or fails with NotStash.
func (s *Staking) stashLedger(stash thor.Address) (thor.Address, *types.StakingLedger, error) {
	controller, l, err := s.ledgers.GetByStash(stash)
	if err != nil {
		return thor.Address{}, nil, err
	}
	if l == nil {
		return thor.Address{}, nil, ErrNotStash
	}
	return controller, l, nil
}

// SetCmixID attaches token to a stash that has none.
func (s *Staking) SetCmixID(stash thor.Address, token thor.Bytes32) error {
	logger.Debug("setting cmix id", "stash", stash, "cmixId", token)

	err := s.atomic("set_cmix_id", func() error {
		controller, l, err := s.stashLedger(stash)
		if err != nil {
			return err
		}
		if l.CmixID != nil {
			return ErrStashAlreadyHasCmixID
		}
		if taken, err := s.registry.Contains(token); err != nil {
			return err
		} else if taken {
			return ErrValidatorCmixIDNotUnique
		}

		if err := s.registry.Register(token, stash); err != nil {
			return err
		}
		l.CmixID = &token
		if err := s.ledgers.Update(controller, l); err != nil {
			return err
		}
		ev := s.callEvent(EventCmixIDSet, stash, thor.Balance{})
		ev.CmixID = &token
		s.emit(ev)
		return nil
	})
	if err != nil {
		logger.Info("set cmix id failed", "stash", stash, "error", err)
		return err
	}

	logger.Info("cmix id set", "stash", stash, "cmixId", token)
	return nil
}

// TransferCmixID moves the token of origin to destination. A token stays put
// while it may take part in consensus: while the origin validates, while an
// election runs, and while the origin sits in the active or the planned
// validator set.
func (s *Staking) TransferCmixID(origin, destination thor.Address) error {
	logger.Debug("transferring cmix id", "origin", origin, "destination", destination)

	err := s.atomic("transfer_cmix_id", func() error {
		fromController, from, err := s.stashLedger(origin)
		if err != nil {
			return err
		}
		toController, to, err := s.stashLedger(destination)
		if err != nil {
			return err
		}
		if from.CmixID == nil {
			return ErrStashNoCmixID
		}
		if to.CmixID != nil {
			return ErrStashAlreadyHasCmixID
		}
		if prefs, err := s.intents.Validator(origin); err != nil {
			return err
		} else if prefs != nil {
			return ErrStashValidating
		}
		if ongoing, err := s.election.Ongoing(); err != nil {
			return err
		} else if ongoing {
			return ErrElectionOngoing
		}
		if active, err := s.globals.ActiveEra(); err != nil {
			return err
		} else if active != nil {
			exposed, err := s.exposures.IsExposed(active.Index, origin)
			if err != nil {
				return err
			}
			if exposed {
				return ErrStashActiveValidator
			}
		}
		if current, ok, err := s.globals.CurrentEra(); err != nil {
			return err
		} else if ok {
			exposed, err := s.exposures.IsExposed(current, origin)
			if err != nil {
				return err
			}
			if exposed {
				return ErrStashElectedValidator
			}
		}

		token := *from.CmixID
		if err := s.registry.Register(token, destination); err != nil {
			return err
		}
		from.CmixID = nil
		to.CmixID = &token
		if err := s.ledgers.Update(fromController, from); err != nil {
			return err
		}
		if err := s.ledgers.Update(toController, to); err != nil {
			return err
		}
		ev := s.callEvent(EventCmixIDTransferred, origin, thor.Balance{})
		ev.Other = &destination
		ev.CmixID = &token
		s.emit(ev)
		return nil
	})
	if err != nil {
		logger.Info("transfer cmix id failed", "origin", origin, "error", err)
		return err
	}

	logger.Info("cmix id transferred", "origin", origin, "destination", destination)
	return nil
}
