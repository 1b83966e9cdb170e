// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/currency"
	"github.com/xxnetwork/staking/builtin/staking/exposure"
	"github.com/xxnetwork/staking/builtin/staking/points"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// RewardByIDs credits era points to validators of the active era. Nothing is
// credited before the first era starts.
func (s *Staking) RewardByIDs(credits []types.IndividualPoints) error {
	active, err := s.globals.ActiveEra()
	if err != nil || active == nil {
		return err
	}
	return s.points.RewardByIDs(active.Index, credits)
}

// DeductByIDs removes era points from validators of the active era.
func (s *Staking) DeductByIDs(debits []types.IndividualPoints) error {
	active, err := s.globals.ActiveEra()
	if err != nil || active == nil {
		return err
	}
	return s.points.DeductByIDs(active.Index, debits)
}

// NoteAuthor credits the block points to the author of a block.
func (s *Staking) NoteAuthor(author thor.Address) error {
	return s.RewardByIDs([]types.IndividualPoints{{Who: author, Points: s.cmixes.BlockPoints()}})
}

// PayoutStakers pays the era reward of validator to itself and its rewarded
// nominators. Every (validator, era) pays out once.
func (s *Staking) PayoutStakers(validator thor.Address, era uint32) error {
	logger.Debug("paying out stakers", "validator", validator, "era", era)

	err := s.atomic("payout_stakers", func() error {
		active, err := s.globals.ActiveEra()
		if err != nil {
			return err
		}
		current, err := s.currentEra()
		if err != nil {
			return err
		}
		if active == nil || era >= active.Index || era+s.config.HistoryDepth < current {
			return ErrInvalidEraToReward
		}
		reward, ok, err := s.exposures.ValidatorReward(era)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidEraToReward
		}

		controller, l, err := s.stashLedger(validator)
		if err != nil {
			return err
		}
		if !l.Claim(era, current-min(current, s.config.HistoryDepth)) {
			return ErrAlreadyClaimed
		}
		if err := s.ledgers.Update(controller, l); err != nil {
			return err
		}

		e, err := s.exposures.GetClipped(era, validator)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		eraPoints, err := s.points.Get(era)
		if err != nil {
			return err
		}
		payout := points.Share(eraPoints, validator, reward)
		if payout.IsZero() {
			return nil
		}
		prefs, err := s.exposures.Prefs(era, validator)
		if err != nil {
			return err
		}

		s.emit(Event{Kind: EventPayoutStarted, Era: era, Stash: validator, Amount: payout})

		own, parts := exposure.Split(e, prefs.Commission, payout)
		if err := s.reward(era, validator, own); err != nil {
			return err
		}
		for i, o := range e.Others {
			if err := s.reward(era, o.Who, parts[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Info("payout stakers failed", "validator", validator, "era", era, "error", err)
		return err
	}

	metricPayouts().Add(1)
	logger.Info("paid out stakers", "validator", validator, "era", era)
	return nil
}

// reward mints amount to stash. Amounts too small to open an account are dropped.
func (s *Staking) reward(era uint32, stash thor.Address, amount thor.Balance) error {
	if amount.IsZero() {
		return nil
	}
	if err := s.currency.Deposit(stash, amount); err != nil {
		if errors.Is(err, currency.ErrExistentialDeposit) {
			return nil
		}
		return errors.Wrap(err, "failed to deposit reward")
	}
	s.emit(Event{Kind: EventRewarded, Era: era, Stash: stash, Amount: amount})
	return nil
}
