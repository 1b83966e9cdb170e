// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/thor"
)

// Config holds the runtime constants of staking.
type Config struct {
	SessionsPerEra                   uint32       `yaml:"sessionsPerEra"`
	BondingDuration                  uint32       `yaml:"bondingDuration"`    // eras before unbonded funds unlock
	SlashDeferDuration               uint32       `yaml:"slashDeferDuration"` // eras before a reported slash applies
	HistoryDepth                     uint32       `yaml:"historyDepth"`       // eras kept for payouts
	MaxNominations                   uint32       `yaml:"maxNominations"`
	MaxUnlockingChunks               uint32       `yaml:"maxUnlockingChunks"`
	MaxNominatorRewardedPerValidator uint32       `yaml:"maxNominatorRewardedPerValidator"`
	ValidatorCount                   uint32       `yaml:"validatorCount"`
	MinimumValidatorCount            uint32       `yaml:"minimumValidatorCount"`
	MinNominatorBond                 thor.Balance `yaml:"minNominatorBond"`
	MinValidatorBond                 thor.Balance `yaml:"minValidatorBond"`
	MinValidatorCommission           thor.Perbill `yaml:"minValidatorCommission"` // initial on-chain floor
	SlashRewardFraction              thor.Perbill `yaml:"slashRewardFraction"`    // part of a slash paid to reporters
}

// DefaultConfig returns the mainnet constants.
func DefaultConfig() Config {
	return Config{
		SessionsPerEra:                   6,
		BondingDuration:                  28,
		SlashDeferDuration:               27,
		HistoryDepth:                     84,
		MaxNominations:                   16,
		MaxUnlockingChunks:               32,
		MaxNominatorRewardedPerValidator: 256,
		ValidatorCount:                   350,
		MinimumValidatorCount:            4,
		MinValidatorCommission:           thor.PerbillFromPercent(2),
		SlashRewardFraction:              thor.PerbillFromPercent(10),
	}
}

// Validate rejects configurations the era logic cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.SessionsPerEra == 0:
		return errors.New("sessionsPerEra must be positive")
	case c.HistoryDepth == 0:
		return errors.New("historyDepth must be positive")
	case c.MaxNominations == 0:
		return errors.New("maxNominations must be positive")
	case c.MaxUnlockingChunks == 0:
		return errors.New("maxUnlockingChunks must be positive")
	case c.SlashDeferDuration > c.BondingDuration:
		return errors.New("slashDeferDuration must not exceed bondingDuration")
	}
	return nil
}
