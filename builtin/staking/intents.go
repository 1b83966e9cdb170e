// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/staking/voters"
	"github.com/xxnetwork/staking/thor"
)

// chillStash drops both intents of stash and takes it off the voter list.
func (s *Staking) chillStash(stash thor.Address) error {
	wasValidator, err := s.intents.RemoveValidator(stash)
	if err != nil {
		return err
	}
	wasNominator, err := s.intents.RemoveNominator(stash)
	if err != nil {
		return err
	}
	if err := s.voters.Remove(stash); err != nil {
		return err
	}
	if wasValidator || wasNominator {
		s.emit(s.callEvent(EventChilled, stash, thor.Balance{}))
	}
	return nil
}

// Validate declares the intent of the controller's stash to validate.
func (s *Staking) Validate(controller thor.Address, prefs types.ValidatorPrefs) error {
	logger.Debug("validating", "controller", controller, "commission", prefs.Commission)

	err := s.atomic("validate", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		if l.Active.Lt(s.config.MinValidatorBond) {
			return ErrInsufficientBond
		}
		if l.CmixID == nil {
			return ErrValidatorMustHaveCmixID
		}
		floor, err := s.globals.MinValidatorCommission()
		if err != nil {
			return err
		}
		if prefs.Commission < floor {
			return ErrValidatorCommissionTooLow
		}

		wasNominator, err := s.intents.SetValidator(l.Stash, prefs)
		if err != nil {
			return err
		}
		if wasNominator {
			return s.voters.Remove(l.Stash)
		}
		return nil
	})
	if err != nil {
		logger.Info("validate failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("validating", "controller", controller)
	return nil
}

// Nominate declares the intent of the controller's stash to back targets.
func (s *Staking) Nominate(controller thor.Address, targets []thor.Address) error {
	logger.Debug("nominating", "controller", controller, "targets", len(targets))

	err := s.atomic("nominate", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		if l.Active.Lt(s.config.MinNominatorBond) {
			return ErrInsufficientBond
		}
		if len(targets) == 0 {
			return ErrEmptyTargets
		}
		if uint32(len(targets)) > s.config.MaxNominations {
			return ErrTooManyTargets
		}

		old, err := s.intents.Nominations(l.Stash)
		if err != nil {
			return err
		}
		previously := make(map[thor.Address]bool)
		if old != nil {
			for _, t := range old.Targets {
				previously[t] = true
			}
		}

		seen := make(map[thor.Address]bool, len(targets))
		unique := make([]thor.Address, 0, len(targets))
		for _, t := range targets {
			if seen[t] {
				continue
			}
			seen[t] = true
			prefs, err := s.intents.Validator(t)
			if err != nil {
				return err
			}
			if prefs == nil || (prefs.Blocked && !previously[t]) {
				return ErrBadTarget
			}
			unique = append(unique, t)
		}

		era, err := s.currentEra()
		if err != nil {
			return err
		}
		if _, err := s.intents.SetNominator(l.Stash, types.Nominations{Targets: unique, SubmittedIn: era}); err != nil {
			return err
		}
		listed, err := s.voters.Contains(l.Stash)
		if err != nil {
			return err
		}
		if listed {
			return s.voters.Update(l.Stash, voters.Score(l.Active))
		}
		return s.voters.Insert(l.Stash, voters.Score(l.Active))
	})
	if err != nil {
		logger.Info("nominate failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("nominating", "controller", controller, "targets", len(targets))
	return nil
}

// Chill drops any validate or nominate intent of the controller's stash.
func (s *Staking) Chill(controller thor.Address) error {
	logger.Debug("chilling", "controller", controller)

	err := s.atomic("chill", func() error {
		l, err := s.controllerLedger(controller)
		if err != nil {
			return err
		}
		return s.chillStash(l.Stash)
	})
	if err != nil {
		logger.Info("chill failed", "controller", controller, "error", err)
		return err
	}

	logger.Info("chilled", "controller", controller)
	return nil
}
