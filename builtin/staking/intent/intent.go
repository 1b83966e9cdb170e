// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package intent keeps what each stash wants to do in the next election:
// validate, nominate, or nothing. A stash has at most one intent.
package intent

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

type Service struct {
	validators       *storage.Map[thor.Address, types.ValidatorPrefs]
	nominators       *storage.Map[thor.Address, types.Nominations]
	validatorCounter *storage.Value[uint32]
	nominatorCounter *storage.Value[uint32]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		validators:       storage.NewMap[thor.Address, types.ValidatorPrefs](sctx, module, "Validators", storage.AddressKey),
		nominators:       storage.NewMap[thor.Address, types.Nominations](sctx, module, "Nominators", storage.AddressKey),
		validatorCounter: storage.NewValue[uint32](sctx, module, "CounterForValidators"),
		nominatorCounter: storage.NewValue[uint32](sctx, module, "CounterForNominators"),
	}
}

// Validator returns the prefs of stash, nil when it does not validate.
func (s *Service) Validator(stash thor.Address) (*types.ValidatorPrefs, error) {
	prefs, ok, err := s.validators.Get(stash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validator")
	}
	if !ok {
		return nil, nil
	}
	return &prefs, nil
}

// Nominations returns the nominations of stash, nil when it does not nominate.
func (s *Service) Nominations(stash thor.Address) (*types.Nominations, error) {
	noms, ok, err := s.nominators.Get(stash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nominations")
	}
	if !ok {
		return nil, nil
	}
	return &noms, nil
}

// SetValidator stores prefs, dropping any nomination of stash.
// It returns whether stash was a nominator before.
func (s *Service) SetValidator(stash thor.Address, prefs types.ValidatorPrefs) (bool, error) {
	wasNominator, err := s.RemoveNominator(stash)
	if err != nil {
		return false, err
	}
	existed, err := s.validators.Has(stash)
	if err != nil {
		return false, errors.Wrap(err, "failed to get validator")
	}
	if !existed {
		if err := s.bump(s.validatorCounter, true); err != nil {
			return false, err
		}
	}
	if err := s.validators.Set(stash, prefs); err != nil {
		return false, errors.Wrap(err, "failed to set validator")
	}
	return wasNominator, nil
}

// SetNominator stores noms, dropping any validate intent of stash.
// It returns whether stash was a nominator before.
func (s *Service) SetNominator(stash thor.Address, noms types.Nominations) (bool, error) {
	if _, err := s.RemoveValidator(stash); err != nil {
		return false, err
	}
	existed, err := s.nominators.Has(stash)
	if err != nil {
		return false, errors.Wrap(err, "failed to get nominations")
	}
	if !existed {
		if err := s.bump(s.nominatorCounter, true); err != nil {
			return false, err
		}
	}
	if err := s.nominators.Set(stash, noms); err != nil {
		return false, errors.Wrap(err, "failed to set nominations")
	}
	return existed, nil
}

// RemoveValidator drops the validate intent and reports whether there was one.
func (s *Service) RemoveValidator(stash thor.Address) (bool, error) {
	existed, err := s.validators.Has(stash)
	if err != nil || !existed {
		return false, err
	}
	s.validators.Remove(stash)
	return true, s.bump(s.validatorCounter, false)
}

// RemoveNominator drops the nominations and reports whether there were any.
func (s *Service) RemoveNominator(stash thor.Address) (bool, error) {
	existed, err := s.nominators.Has(stash)
	if err != nil || !existed {
		return false, err
	}
	s.nominators.Remove(stash)
	return true, s.bump(s.nominatorCounter, false)
}

func (s *Service) bump(counter *storage.Value[uint32], up bool) error {
	n, err := counter.GetOrDefault(0)
	if err != nil {
		return errors.Wrap(err, "failed to get counter")
	}
	switch {
	case up:
		n++
	case n > 0:
		n--
	}
	return counter.Set(n)
}

// Counters returns the number of validators and nominators.
func (s *Service) Counters() (validators, nominators uint32, err error) {
	if validators, err = s.validatorCounter.GetOrDefault(0); err != nil {
		return 0, 0, errors.Wrap(err, "failed to get validator counter")
	}
	if nominators, err = s.nominatorCounter.GetOrDefault(0); err != nil {
		return 0, 0, errors.Wrap(err, "failed to get nominator counter")
	}
	return
}

// SetCounters overwrites both counters.
func (s *Service) SetCounters(validators, nominators uint32) error {
	if err := s.validatorCounter.Set(validators); err != nil {
		return err
	}
	return s.nominatorCounter.Set(nominators)
}

// Count counts the stored intents, ignoring the counters.
func (s *Service) Count() (validators, nominators uint32, err error) {
	if validators, err = s.validators.Count(); err != nil {
		return 0, 0, errors.Wrap(err, "failed to count validators")
	}
	if nominators, err = s.nominators.Count(); err != nil {
		return 0, 0, errors.Wrap(err, "failed to count nominators")
	}
	return
}

func (s *Service) IterateValidators(fn func(stash thor.Address, prefs types.ValidatorPrefs) error) error {
	return s.validators.Iterate(fn)
}

func (s *Service) IterateNominators(fn func(stash thor.Address, noms types.Nominations) error) error {
	return s.nominators.Iterate(fn)
}
