// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package exposure keeps the per era snapshot of the stake backing each
// elected validator and splits era rewards over it.
package exposure

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

type Service struct {
	stakers    *storage.DoubleMap[uint32, thor.Address, types.Exposure]
	clipped    *storage.DoubleMap[uint32, thor.Address, types.Exposure]
	prefs      *storage.DoubleMap[uint32, thor.Address, types.ValidatorPrefs]
	totalStake *storage.Map[uint32, thor.Balance]
	rewards    *storage.Map[uint32, thor.Balance]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		stakers: storage.NewDoubleMap[uint32, thor.Address, types.Exposure](
			sctx, module, "ErasStakers", storage.Uint32Key, storage.AddressKey),
		clipped: storage.NewDoubleMap[uint32, thor.Address, types.Exposure](
			sctx, module, "ErasStakersClipped", storage.Uint32Key, storage.AddressKey),
		prefs: storage.NewDoubleMap[uint32, thor.Address, types.ValidatorPrefs](
			sctx, module, "ErasValidatorPrefs", storage.Uint32Key, storage.AddressKey),
		totalStake: storage.NewMap[uint32, thor.Balance](sctx, module, "ErasTotalStake", storage.Uint32Key),
		rewards:    storage.NewMap[uint32, thor.Balance](sctx, module, "ErasValidatorReward", storage.Uint32Key),
	}
}

// Stakers is the full exposure item.
func (s *Service) Stakers() *storage.DoubleMap[uint32, thor.Address, types.Exposure] {
	return s.stakers
}

// ClippedStakers is the exposure item limited to the rewarded nominators.
func (s *Service) ClippedStakers() *storage.DoubleMap[uint32, thor.Address, types.Exposure] {
	return s.clipped
}

// Store saves the snapshot of one elected validator.
func (s *Service) Store(era uint32, validator thor.Address, e types.Exposure, maxRewarded int, prefs types.ValidatorPrefs) error {
	if err := s.stakers.Set(era, validator, e); err != nil {
		return errors.Wrap(err, "failed to set exposure")
	}
	if err := s.clipped.Set(era, validator, e.Clipped(maxRewarded)); err != nil {
		return errors.Wrap(err, "failed to set clipped exposure")
	}
	if err := s.prefs.Set(era, validator, prefs); err != nil {
		return errors.Wrap(err, "failed to set era validator prefs")
	}
	return nil
}

// Get returns the full exposure, nil when validator was not elected in era.
func (s *Service) Get(era uint32, validator thor.Address) (*types.Exposure, error) {
	return get(s.stakers, era, validator)
}

// GetClipped returns the clipped exposure, nil when validator was not elected in era.
func (s *Service) GetClipped(era uint32, validator thor.Address) (*types.Exposure, error) {
	return get(s.clipped, era, validator)
}

func get(m *storage.DoubleMap[uint32, thor.Address, types.Exposure], era uint32, validator thor.Address) (*types.Exposure, error) {
	e, ok, err := m.Get(era, validator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get exposure")
	}
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// IsExposed reports whether validator was elected in era.
func (s *Service) IsExposed(era uint32, validator thor.Address) (bool, error) {
	ok, err := s.stakers.Has(era, validator)
	if err != nil {
		return false, errors.Wrap(err, "failed to get exposure")
	}
	return ok, nil
}

func (s *Service) Prefs(era uint32, validator thor.Address) (types.ValidatorPrefs, error) {
	prefs, _, err := s.prefs.Get(era, validator)
	if err != nil {
		return prefs, errors.Wrap(err, "failed to get era validator prefs")
	}
	return prefs, nil
}

// IterateEra visits every elected validator of era.
func (s *Service) IterateEra(era uint32, fn func(validator thor.Address, e types.Exposure) error) error {
	return s.stakers.IterPrefix(era, fn)
}

func (s *Service) SetTotalStake(era uint32, total thor.Balance) error {
	return s.totalStake.Set(era, total)
}

func (s *Service) TotalStake(era uint32) (thor.Balance, error) {
	total, _, err := s.totalStake.Get(era)
	return total, err
}

func (s *Service) SetValidatorReward(era uint32, payout thor.Balance) error {
	return s.rewards.Set(era, payout)
}

// ValidatorReward returns the payout of a finished era.
func (s *Service) ValidatorReward(era uint32) (thor.Balance, bool, error) {
	payout, ok, err := s.rewards.Get(era)
	if err != nil {
		return payout, false, errors.Wrap(err, "failed to get era validator reward")
	}
	return payout, ok, nil
}

// Clear removes everything kept for era.
func (s *Service) Clear(era uint32) error {
	if _, err := s.stakers.RemovePrefix(era); err != nil {
		return err
	}
	if _, err := s.clipped.RemovePrefix(era); err != nil {
		return err
	}
	if _, err := s.prefs.RemovePrefix(era); err != nil {
		return err
	}
	s.totalStake.Remove(era)
	s.rewards.Remove(era)
	return nil
}
