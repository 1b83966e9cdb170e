// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/thor"
)

// Role is what a genesis staker does after bonding.
type Role string

const (
	RoleValidator Role = "validator"
	RoleNominator Role = "nominator"
	RoleIdle      Role = "idle"
)

// Account is an initial free balance.
type Account struct {
	Address thor.Address `yaml:"address"`
	Balance thor.Balance `yaml:"balance"`
}

// Staker is a stash bonded at genesis.
type Staker struct {
	Stash      thor.Address   `yaml:"stash"`
	Controller thor.Address   `yaml:"controller"`
	Amount     thor.Balance   `yaml:"amount"`
	Role       Role           `yaml:"role"`
	CmixID     *thor.Bytes32  `yaml:"cmixId,omitempty"`
	Commission thor.Perbill   `yaml:"commission,omitempty"`
	Blocked    bool           `yaml:"blocked,omitempty"`
	Targets    []thor.Address `yaml:"targets,omitempty"`
}

// Payout selects the era payout. At most one field may be set, none means
// the default inflation.
type Payout struct {
	Inflation *thor.Perbill `yaml:"inflation,omitempty"`
	Fixed     *thor.Balance `yaml:"fixed,omitempty"`
}

func (p Payout) eraPayout() (staking.EraPayout, error) {
	switch {
	case p.Inflation != nil && p.Fixed != nil:
		return nil, errors.New("payout: inflation and fixed are exclusive")
	case p.Inflation != nil:
		return staking.InflationPayout{Rate: *p.Inflation}, nil
	case p.Fixed != nil:
		return staking.FixedPayout{PerEra: *p.Fixed}, nil
	}
	return staking.DefaultInflation, nil
}

// CustomGenesis is user customized genesis.
type CustomGenesis struct {
	LaunchTime         uint64         `yaml:"launchTime"` // unix millis
	SessionMillis      uint64         `yaml:"sessionMillis"`
	ExistentialDeposit thor.Balance   `yaml:"existentialDeposit"`
	BlockPoints        uint32         `yaml:"blockPoints"`
	Payout             Payout         `yaml:"payout"`
	Staking            staking.Config `yaml:"staking"`
	Accounts           []Account      `yaml:"accounts"`
	Custody            []thor.Address `yaml:"custody,omitempty"`
	Stakers            []Staker       `yaml:"stakers"`
}

// Load decodes a yaml genesis. Absent fields keep their defaults and
// unknown fields are rejected.
func Load(r io.Reader) (*CustomGenesis, error) {
	gen := &CustomGenesis{
		SessionMillis:      defaultSessionMillis,
		ExistentialDeposit: thor.NewBalance(1),
		BlockPoints:        staking.DefaultBlockPoints,
		Staking:            staking.DefaultConfig(),
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return gen, nil
}

// LoadFile decodes the yaml genesis at path.
func LoadFile(path string) (*CustomGenesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis file")
	}
	defer f.Close()
	return Load(f)
}

// Encode renders gen as yaml.
func (gen *CustomGenesis) Encode() ([]byte, error) {
	return yaml.Marshal(gen)
}

func (gen *CustomGenesis) validate() error {
	if gen.SessionMillis == 0 {
		return errors.New("sessionMillis must be positive")
	}
	if gen.ExistentialDeposit.IsZero() {
		return errors.New("existentialDeposit must be positive")
	}
	if err := gen.Staking.Validate(); err != nil {
		return errors.WithMessage(err, "staking")
	}
	seen := make(map[thor.Address]bool, len(gen.Accounts))
	for _, a := range gen.Accounts {
		if a.Balance.IsZero() {
			return fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
		if seen[a.Address] {
			return fmt.Errorf("%s: duplicated account", a.Address)
		}
		seen[a.Address] = true
	}
	for _, s := range gen.Stakers {
		switch s.Role {
		case RoleValidator:
			if s.CmixID == nil {
				return fmt.Errorf("%s: validator must have a cmix id", s.Stash)
			}
		case RoleNominator:
			if len(s.Targets) == 0 {
				return fmt.Errorf("%s: nominator must have targets", s.Stash)
			}
		case RoleIdle:
		default:
			return fmt.Errorf("%s: unknown role %q", s.Stash, s.Role)
		}
	}
	return nil
}
