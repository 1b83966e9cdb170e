// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/currency"
	"github.com/xxnetwork/staking/builtin/staking/slashing"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// ReportOffence slashes fraction of the stake exposed behind validator in era.
// The offender is chilled. The slash applies at once, or after the slash
// defer duration counted from the active era.
func (s *Staking) ReportOffence(validator thor.Address, era uint32, fraction thor.Perbill, reporters []thor.Address) error {
	logger.Debug("reporting offence", "validator", validator, "era", era, "fraction", fraction)

	err := s.atomic("report_offence", func() error {
		e, err := s.exposures.Get(era, validator)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		slash := slashing.Compute(validator, e, fraction, reporters, s.config.SlashRewardFraction)

		if err := s.chillStash(validator); err != nil {
			return err
		}

		if s.config.SlashDeferDuration == 0 {
			return s.applySlash(&slash)
		}
		var apply uint32
		if active, err := s.globals.ActiveEra(); err != nil {
			return err
		} else if active != nil {
			apply = active.Index
		}
		apply += s.config.SlashDeferDuration
		if err := s.slashes.Queue(apply, slash); err != nil {
			return err
		}
		s.emit(Event{Kind: EventSlashDeferred, Era: apply, Stash: validator, Amount: slash.Own})
		metricSlashes().AddWithLabel(1, map[string]string{"outcome": "deferred"})
		return nil
	})
	if err != nil {
		logger.Info("report offence failed", "validator", validator, "error", err)
		return err
	}

	logger.Info("offence reported", "validator", validator, "era", era)
	return nil
}

// CancelDeferredSlash drops the slashes at indices from the queue of era.
// Indices must be strictly increasing.
func (s *Staking) CancelDeferredSlash(era uint32, indices []uint32) error {
	logger.Debug("cancelling deferred slash", "era", era, "count", len(indices))

	err := s.atomic("cancel_deferred_slash", func() error {
		if len(indices) == 0 {
			return ErrEmptyTargets
		}
		for i := 1; i < len(indices); i++ {
			if indices[i] <= indices[i-1] {
				return ErrNotSortedAndUnique
			}
		}
		unapplied, err := s.slashes.Unapplied(era)
		if err != nil {
			return err
		}
		if int(indices[len(indices)-1]) >= len(unapplied) {
			return ErrInvalidSlashIndex
		}
		for i := len(indices) - 1; i >= 0; i-- {
			at := indices[i]
			cancelled := unapplied[at]
			unapplied = append(unapplied[:at], unapplied[at+1:]...)
			s.emit(Event{Kind: EventSlashCancelled, Era: era, Stash: cancelled.Validator, Amount: cancelled.Own})
		}
		return s.slashes.Set(era, unapplied)
	})
	if err != nil {
		logger.Info("cancel deferred slash failed", "era", era, "error", err)
		return err
	}

	logger.Info("deferred slash cancelled", "era", era, "count", len(indices))
	return nil
}

// applySlash burns the slash from every non custody stash involved and pays
// the reporters out of what was burnt.
func (s *Staking) applySlash(slash *types.UnappliedSlash) error {
	var burnt thor.Balance
	charge := func(stash thor.Address, value thor.Balance) error {
		if s.isCustody(stash) {
			metricSlashes().AddWithLabel(1, map[string]string{"outcome": "exempt"})
			return nil
		}
		amount, err := s.slashStash(stash, value)
		if err != nil {
			return err
		}
		burnt = burnt.Add(amount)
		return nil
	}

	if err := charge(slash.Validator, slash.Own); err != nil {
		return err
	}
	for _, o := range slash.Others {
		if err := charge(o.Who, o.Value); err != nil {
			return err
		}
	}

	payout := slash.Payout.Min(burnt)
	if len(slash.Reporters) == 0 || payout.IsZero() {
		return nil
	}
	share := payout.DivUint64(uint64(len(slash.Reporters)))
	for _, r := range slash.Reporters {
		if share.IsZero() {
			break
		}
		if err := s.currency.Deposit(r, share); err != nil && !errors.Is(err, currency.ErrExistentialDeposit) {
			return errors.Wrap(err, "failed to pay reporter")
		}
	}
	return nil
}

// slashStash takes value out of the bond of stash and burns it.
func (s *Staking) slashStash(stash thor.Address, value thor.Balance) (thor.Balance, error) {
	if value.IsZero() {
		return thor.Balance{}, nil
	}
	controller, l, err := s.ledgers.GetByStash(stash)
	if err != nil || l == nil {
		return thor.Balance{}, err
	}
	amount := l.Slash(value, s.currency.MinimumBalance())
	if amount.IsZero() {
		return thor.Balance{}, nil
	}
	if err := s.updateLedger(controller, l); err != nil {
		return thor.Balance{}, err
	}
	burnt, err := s.currency.Slash(stash, amount)
	if err != nil {
		return thor.Balance{}, errors.Wrap(err, "failed to slash balance")
	}

	s.emit(s.callEvent(EventSlashed, stash, burnt))
	metricSlashes().AddWithLabel(1, map[string]string{"outcome": "applied"})
	return burnt, nil
}
