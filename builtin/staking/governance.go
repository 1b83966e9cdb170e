// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// SetMinValidatorCommission changes the commission floor of later validate calls.
func (s *Staking) SetMinValidatorCommission(p thor.Perbill) error {
	err := s.atomic("set_min_validator_commission", func() error {
		return s.globals.SetMinValidatorCommission(p)
	})
	if err != nil {
		logger.Info("set min validator commission failed", "error", err)
		return err
	}
	logger.Info("min validator commission set", "commission", p)
	return nil
}

// SetValidatorCount changes the number of seats of the next election.
func (s *Staking) SetValidatorCount(n uint32) error {
	err := s.atomic("set_validator_count", func() error {
		return s.globals.SetValidatorCount(n)
	})
	if err != nil {
		logger.Info("set validator count failed", "error", err)
		return err
	}
	logger.Info("validator count set", "count", n)
	return nil
}

// ForceNewEra plans a new era at the next session.
func (s *Staking) ForceNewEra() error {
	return s.setForcing(types.ForceNew)
}

// ForceNoEras stops planning eras until forced otherwise.
func (s *Staking) ForceNoEras() error {
	return s.setForcing(types.ForceNone)
}

// ForceNewEraAlways plans a new era at every session.
func (s *Staking) ForceNewEraAlways() error {
	return s.setForcing(types.ForceAlways)
}

func (s *Staking) setForcing(f types.Forcing) error {
	err := s.atomic("force_era", func() error {
		return s.globals.SetForceEra(f)
	})
	if err != nil {
		logger.Info("force era failed", "forcing", f, "error", err)
		return err
	}
	logger.Info("era forcing set", "forcing", f)
	return nil
}
