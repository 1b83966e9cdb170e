// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// StashInfo is everything known about one stash.
type StashInfo struct {
	Stash       thor.Address
	Controller  thor.Address
	Ledger      *types.StakingLedger
	Validator   *types.ValidatorPrefs
	Nominations *types.Nominations
}

// Ledger returns the ledger of controller, nil when not bonded.
func (s *Staking) Ledger(controller thor.Address) (*types.StakingLedger, error) {
	return s.ledgers.Get(controller)
}

// Stash returns the bonding state of stash, nil when not bonded.
func (s *Staking) Stash(stash thor.Address) (*StashInfo, error) {
	controller, l, err := s.ledgers.GetByStash(stash)
	if err != nil || l == nil {
		return nil, err
	}
	info := &StashInfo{Stash: stash, Controller: controller, Ledger: l}
	if info.Validator, err = s.intents.Validator(stash); err != nil {
		return nil, err
	}
	if info.Nominations, err = s.intents.Nominations(stash); err != nil {
		return nil, err
	}
	return info, nil
}

// CmixOwner returns the stash holding token.
func (s *Staking) CmixOwner(token thor.Bytes32) (thor.Address, bool, error) {
	return s.registry.Owner(token)
}

func (s *Staking) ActiveEra() (*types.ActiveEraInfo, error) {
	return s.globals.ActiveEra()
}

func (s *Staking) CurrentEra() (uint32, bool, error) {
	return s.globals.CurrentEra()
}

func (s *Staking) EraPoints(era uint32) (*types.EraRewardPoints, error) {
	return s.points.Get(era)
}

// Exposure returns the full exposure of validator in era, nil when not elected.
func (s *Staking) Exposure(era uint32, validator thor.Address) (*types.Exposure, error) {
	return s.exposures.Get(era, validator)
}

// ClippedExposure is the exposure rewards are paid from.
func (s *Staking) ClippedExposure(era uint32, validator thor.Address) (*types.Exposure, error) {
	return s.exposures.GetClipped(era, validator)
}

func (s *Staking) Version() (types.Release, error) {
	return s.globals.Version()
}

func (s *Staking) ForceEra() (types.Forcing, error) {
	return s.globals.ForceEra()
}

func (s *Staking) MinValidatorCommission() (thor.Perbill, error) {
	return s.globals.MinValidatorCommission()
}

// Validators returns the stashes with validate intent.
func (s *Staking) Validators() ([]thor.Address, error) {
	var stashes []thor.Address
	err := s.intents.IterateValidators(func(stash thor.Address, _ types.ValidatorPrefs) error {
		stashes = append(stashes, stash)
		return nil
	})
	return stashes, err
}

// ElectedValidators returns the validators exposed in era.
func (s *Staking) ElectedValidators(era uint32) ([]thor.Address, error) {
	var stashes []thor.Address
	err := s.exposures.IterateEra(era, func(v thor.Address, _ types.Exposure) error {
		stashes = append(stashes, v)
		return nil
	})
	return stashes, err
}

// ValidatorReward returns the reward of a finished era.
func (s *Staking) ValidatorReward(era uint32) (thor.Balance, bool, error) {
	return s.exposures.ValidatorReward(era)
}

// Counters returns the number of validators and nominators.
func (s *Staking) Counters() (uint32, uint32, error) {
	return s.intents.Counters()
}

// VoterList returns the nominators by descending score.
func (s *Staking) VoterList() ([]types.Voter, error) {
	return s.voters.Voters()
}
