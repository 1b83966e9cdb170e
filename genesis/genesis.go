// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial staking state of a network.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/currency"
	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/builtin/staking/custody"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/lvldb"
	"github.com/xxnetwork/staking/state"
	"github.com/xxnetwork/staking/thor"
)

const defaultSessionMillis = 60_000

// Genesis is a validated network definition.
type Genesis struct {
	gen    *CustomGenesis
	payout staking.EraPayout
	id     thor.Bytes32
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if err := gen.validate(); err != nil {
		return nil, err
	}
	payout, err := gen.Payout.eraPayout()
	if err != nil {
		return nil, err
	}
	g := &Genesis{gen: gen, payout: payout}

	// the id is the digest of the state written at genesis
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	st := state.New(db)
	if _, err := g.Build(st); err != nil {
		return nil, err
	}
	g.id = st.Stage().Hash()
	return g, nil
}

// ID returns the digest identifying the network.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

func (g *Genesis) Custom() *CustomGenesis {
	return g.gen
}

func (g *Genesis) Config() staking.Config {
	return g.gen.Staking
}

func (g *Genesis) LaunchTime() uint64 {
	return g.gen.LaunchTime
}

func (g *Genesis) SessionMillis() uint64 {
	return g.gen.SessionMillis
}

// NewStaking wires staking and its currency over sctx with the network's
// collaborators.
func (g *Genesis) NewStaking(sctx *storage.Context) (*staking.Staking, *currency.Currency) {
	cur := currency.New(sctx, g.gen.ExistentialDeposit)
	return staking.New(sctx, g.gen.Staking, staking.Deps{
		Currency: cur,
		Custody:  custody.NewStatic(g.gen.Custody...),
		Cmix:     staking.StaticPoints(g.gen.BlockPoints),
		Payout:   g.payout,
	}), cur
}

// Build writes the genesis state into st, elects era 0 and starts it.
// The writes are left pending in st.
func (g *Genesis) Build(st *state.State) ([]staking.Event, error) {
	s, cur := g.NewStaking(storage.NewContext(st, nil))

	for _, a := range g.gen.Accounts {
		if err := cur.MakeFreeBalanceBe(a.Address, a.Balance); err != nil {
			return nil, errors.WithMessagef(err, "account %v", a.Address)
		}
	}
	if err := s.InitGenesis(); err != nil {
		return nil, err
	}

	// validators first, so that nominations find their targets
	for _, staker := range g.gen.Stakers {
		if err := s.Bond(staker.Stash, staker.Controller, staker.Amount, staker.CmixID); err != nil {
			return nil, errors.WithMessagef(err, "bond %v", staker.Stash)
		}
		if staker.Role != RoleValidator {
			continue
		}
		prefs := types.ValidatorPrefs{Commission: staker.Commission, Blocked: staker.Blocked}
		if err := s.Validate(staker.Controller, prefs); err != nil {
			return nil, errors.WithMessagef(err, "validate %v", staker.Stash)
		}
	}
	for _, staker := range g.gen.Stakers {
		if staker.Role != RoleNominator {
			continue
		}
		if err := s.Nominate(staker.Controller, staker.Targets); err != nil {
			return nil, errors.WithMessagef(err, "nominate %v", staker.Stash)
		}
	}

	if err := s.Genesis(g.gen.LaunchTime); err != nil {
		return nil, err
	}
	return s.TakeEvents(), nil
}
