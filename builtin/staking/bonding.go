// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/staking/voters"
	"github.com/xxnetwork/staking/thor"
)

func (s *Staking) currentEra() (uint32, error) {
	era, _, err := s.globals.CurrentEra()
	return era, err
}

// controllerLedger loads the ledger of controller or fails with NotController.
func (s *Staking) controllerLedger(controller thor.Address) (*types.StakingLedger, error) {
	l, err := s.ledgers.Get(controller)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotController
	}
	return l, nil
}

// updateLedger writes the ledger, locks its total and refreshes the voter score.
func (s *Staking) updateLedger(controller thor.Address, l *types.StakingLedger) error {
	if err := s.currency.SetLock(LockID, l.Stash, l.Total); err != nil {
		return errors.Wrap(err, "failed to lock bonded funds")
	}
	if err := s.ledgers.Update(controller, l); err != nil {
		return err
	}
	listed, err := s.voters.Contains(l.Stash)
	if err != nil {
		return err
	}
	if listed {
		return s.voters.Update(l.Stash, voters.Score(l.Active))
	}
	return nil
}

// killStash removes every trace of stash: pairing, ledger, intents, cmix id and lock.
func (s *Staking) killStash(stash, controller thor.Address, l *types.StakingLedger) error {
	if err := s.chillStash(stash); err != nil {
		return err
	}
	if l.CmixID != nil {
		s.registry.Release(*l.CmixID)
	}
	s.ledgers.Kill(stash, controller)
	return s.currency.RemoveLock(LockID, stash)
}

// Bond locks value of stash under controller, optionally registering a cmix id.
func (s *Staking) Bond(stash, controller thor.Address, value thor.Balance, cmixID *thor.Bytes32) error {
	logger.Debug("bonding", "stash", stash, "controller", controller, "value", value)

	err := s.atomic("bond", func() error {
		if ok, err := s.ledgers.IsStash(stash); err != nil {
			return err
		} else if ok {
			return ErrAlreadyBonded
		}
		if l, err := s.ledgers.Get(controller); err != nil {
			return err
		} else if l != nil {
			return ErrAlreadyPaired
		}
		if value.Lt(s.currency.MinimumBalance()) {
			return ErrInsufficientBond
		}
		if cmixID != nil {
			if taken, err := s.registry.Contains(*cmixID); err != nil {
				return err
			} else if taken {
				return ErrValidatorCmixIDNotUnique
			}
		}

		free, err := s.currency.FreeBalance(stash)
		if err != nil {
			return err
		}
		value = value.Min(free)

		era, err := s.currentEra()
		if err != nil {
			return err
		}
		// eras before bonding are unclaimable
		var claimed []uint32
		for e := era - min(era, s.config.HistoryDepth); e < era; e++ {
			claimed = append(claimed, e)
		}

		if err := s.ledgers.Bond(stash, controller); err != nil {
			return err
		}
		if cmixID != nil {
			if err := s.registry.Register(*cmixID, stash); err != nil {
				return err
			}
		}
		if err := s.updateLedger(controller, types.NewLedger(stash, value, claimed, cmixID)); err != nil {
			return err
		}
		ev := s.callEvent(EventBonded, stash, value)
		ev.CmixID = cmixID
		s.emit(ev)
		return nil
	})
	if err != nil {
		logger.Info("bond failed", "stash", stash, "error", err)
		return err
	}

	logger.Info("bonded", "stash", stash, "controller", controller, "value", value)
	return nil
}

// BondExtra adds up to maxAdditional of the stash's free balance to the bond.
func (s *Staking) BondExtra(controller thor.Address, maxAdditional thor.Balance) error {
	logger.Debug("bonding extra", "controller", controller, "value", maxAdditional)

	err := s.atomic("bond_extra", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		free, err := s.currency.FreeBalance(l.Stash)
		if err != nil {
			return err
		}
		extra := free.Sub(l.Total).Min(maxAdditional)
		l.Bond(extra)
		if l.Active.Lt(s.currency.MinimumBalance()) {
			return ErrInsufficientBond
		}
		if err := s.updateLedger(controller, l); err != nil {
			return err
		}
		s.emit(s.callEvent(EventBonded, l.Stash, extra))
		return nil
	})
	if err != nil {
		logger.Info("bond extra failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("bonded extra", "controller", controller)
	return nil
}

// Unbond schedules value of the active bond for withdrawal after the bonding duration.
func (s *Staking) Unbond(controller thor.Address, value thor.Balance) error {
	logger.Debug("unbonding", "controller", controller, "value", value)

	err := s.atomic("unbond", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		if uint32(len(l.Unlocking)) >= s.config.MaxUnlockingChunks {
			return ErrNoMoreChunks
		}
		era, err := s.currentEra()
		if err != nil {
			return err
		}
		unbonded := l.Unbond(value, era+s.config.BondingDuration, s.currency.MinimumBalance())
		if unbonded.IsZero() {
			return nil
		}

		minActive, err := s.minActiveBond(l.Stash)
		if err != nil {
			return err
		}
		if l.Active.Lt(minActive) {
			return ErrInsufficientBond
		}
		if err := s.updateLedger(controller, l); err != nil {
			return err
		}
		s.emit(s.callEvent(EventUnbonded, l.Stash, unbonded))
		return nil
	})
	if err != nil {
		logger.Info("unbond failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("unbonded", "controller", controller)
	return nil
}

// minActiveBond is the bond the current intent of stash requires.
func (s *Staking) minActiveBond(stash thor.Address) (thor.Balance, error) {
	prefs, err := s.intents.Validator(stash)
	if err != nil {
		return thor.Balance{}, err
	}
	if prefs != nil {
		return s.config.MinValidatorBond, nil
	}
	noms, err := s.intents.Nominations(stash)
	if err != nil {
		return thor.Balance{}, err
	}
	if noms != nil {
		return s.config.MinNominatorBond, nil
	}
	return thor.Balance{}, nil
}

// WithdrawUnbonded releases matured chunks. A ledger left with nothing is
// removed together with its cmix id.
func (s *Staking) WithdrawUnbonded(controller thor.Address, numSlashingSpans uint32) error {
	logger.Debug("withdrawing unbonded", "controller", controller, "spans", numSlashingSpans)

	err := s.atomic("withdraw_unbonded", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		era, err := s.currentEra()
		if err != nil {
			return err
		}
		before := l.Total
		l.ConsolidateUnlocked(era)

		if l.Total.IsZero() || (len(l.Unlocking) == 0 && l.Active.Lt(s.currency.MinimumBalance())) {
			if err := s.killStash(l.Stash, controller, l); err != nil {
				return err
			}
			s.emit(s.callEvent(EventWithdrawn, l.Stash, before))
			return nil
		}
		if err := s.updateLedger(controller, l); err != nil {
			return err
		}
		if released := before.Sub(l.Total); !released.IsZero() {
			s.emit(s.callEvent(EventWithdrawn, l.Stash, released))
		}
		return nil
	})
	if err != nil {
		logger.Info("withdraw unbonded failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("withdrew unbonded", "controller", controller)
	return nil
}

// Rebond moves up to value of the unlocking funds back into the active bond.
func (s *Staking) Rebond(controller thor.Address, value thor.Balance) error {
	logger.Debug("rebonding", "controller", controller, "value", value)

	err := s.atomic("rebond", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		if len(l.Unlocking) == 0 {
			return ErrNoUnlockChunk
		}
		rebonded := l.Rebond(value)
		if l.Active.Lt(s.currency.MinimumBalance()) {
			return ErrInsufficientBond
		}
		if err := s.updateLedger(controller, l); err != nil {
			return err
		}
		s.emit(s.callEvent(EventBonded, l.Stash, rebonded))
		return nil
	})
	if err != nil {
		logger.Info("rebond failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("rebonded", "controller", controller)
	return nil
}
