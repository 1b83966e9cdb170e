// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the staking module: bonding, validator and
// nominator intents, cmix identities, era rewards, slashing and the
// era lifecycle driven by session rotation.
package staking

import (
	"github.com/xxnetwork/staking/builtin/election"
	"github.com/xxnetwork/staking/builtin/staking/cmix"
	"github.com/xxnetwork/staking/builtin/staking/custody"
	"github.com/xxnetwork/staking/builtin/staking/exposure"
	"github.com/xxnetwork/staking/builtin/staking/globals"
	"github.com/xxnetwork/staking/builtin/staking/intent"
	"github.com/xxnetwork/staking/builtin/staking/ledger"
	"github.com/xxnetwork/staking/builtin/staking/points"
	"github.com/xxnetwork/staking/builtin/staking/slashing"
	"github.com/xxnetwork/staking/builtin/staking/voters"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/log"
	"github.com/xxnetwork/staking/thor"
)

var logger = log.WithContext("pkg", "staking")

func SetLogger(l log.Logger) {
	logger = l
}

// LockID tags the currency lock holding bonded funds.
var LockID = [8]byte{'s', 't', 'a', 'k', 'i', 'n', 'g', ' '}

// Currency is the balance ledger staking moves funds through.
type Currency interface {
	FreeBalance(who thor.Address) (thor.Balance, error)
	MinimumBalance() thor.Balance
	TotalIssuance() (thor.Balance, error)
	SetLock(id [8]byte, who thor.Address, amount thor.Balance) error
	RemoveLock(id [8]byte, who thor.Address) error
	Deposit(who thor.Address, amount thor.Balance) error
	Slash(who thor.Address, amount thor.Balance) (thor.Balance, error)
}

// CmixHandler reports the points credited per authored block.
type CmixHandler interface {
	BlockPoints() uint32
}

// EraPayout computes the reward of a finished era.
type EraPayout interface {
	EraPayout(totalStaked, totalIssuance thor.Balance, eraMillis uint64) (validators, remainder thor.Balance)
}

// Deps are the collaborators of staking. Only Currency is required.
type Deps struct {
	Currency Currency
	Election election.Provider
	Custody  custody.Handler
	Cmix     CmixHandler
	Payout   EraPayout
}

// Staking implements the staking calls over the storage context.
type Staking struct {
	sctx   *storage.Context
	config Config

	currency Currency
	election election.Provider
	custody  custody.Handler
	cmixes   CmixHandler
	payout   EraPayout

	globals   *globals.Service
	ledgers   *ledger.Service
	registry  *cmix.Registry
	intents   *intent.Service
	voters    *voters.List
	points    *points.Service
	exposures *exposure.Service
	slashes   *slashing.Service

	events []Event
}

// New creates a staking instance.
func New(sctx *storage.Context, config Config, deps Deps) *Staking {
	if deps.Election == nil {
		deps.Election = election.NewApproval(sctx)
	}
	if deps.Custody == nil {
		deps.Custody = custody.None{}
	}
	if deps.Cmix == nil {
		deps.Cmix = StaticPoints(DefaultBlockPoints)
	}
	if deps.Payout == nil {
		deps.Payout = DefaultInflation
	}
	return &Staking{
		sctx:      sctx,
		config:    config,
		currency:  deps.Currency,
		election:  deps.Election,
		custody:   deps.Custody,
		cmixes:    deps.Cmix,
		payout:    deps.Payout,
		globals:   globals.New(sctx),
		ledgers:   ledger.New(sctx),
		registry:  cmix.New(sctx),
		intents:   intent.New(sctx),
		voters:    voters.New(sctx),
		points:    points.New(sctx),
		exposures: exposure.New(sctx),
		slashes:   slashing.New(sctx),
	}
}

func (s *Staking) Config() Config {
	return s.config
}

// atomic runs fn inside a state checkpoint. When fn fails every write and
// event of the call is dropped.
func (s *Staking) atomic(call string, fn func() error) error {
	st := s.sctx.State()
	revision := st.NewCheckpoint()
	mark := len(s.events)

	err := fn()

	result := "ok"
	if err != nil {
		st.RevertTo(revision)
		s.events = s.events[:mark]
		result = "error"
	}
	metricCalls().AddWithLabel(1, map[string]string{"call": call, "result": result})
	return err
}

func (s *Staking) isCustody(who thor.Address) bool {
	return s.custody.IsCustodyAccount(who)
}
