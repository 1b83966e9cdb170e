// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxnetwork/staking/builtin/currency"
	"github.com/xxnetwork/staking/builtin/election"
	"github.com/xxnetwork/staking/builtin/staking/custody"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/lvldb"
	"github.com/xxnetwork/staking/state"
	"github.com/xxnetwork/staking/thor"
)

const sessionMillis = 60_000

func acc(n byte) thor.Address {
	return thor.BytesToAddress([]byte{n})
}

func token(n byte) *thor.Bytes32 {
	t := thor.BytesToBytes32([]byte{0xc0, n})
	return &t
}

// builder sets up the default staking scene:
//
//	stash 11, controller 10: validator, 1000 bonded, elected
//	stash 21, controller 20: validator, 1000 bonded, elected
//	stash 31, controller 30: validator, 500 bonded, not elected
//	stash 41, controller 40: bonded, idle, no cmix id
//	stash 101, controller 100: nominates 11 and 21 with 500
type builder struct {
	config        Config
	custody       []thor.Address
	blockPoints   uint32
	minCommission thor.Perbill
	payout        EraPayout
	targets       []thor.Address
	nominatorBond uint64
	existential   uint64
}

func newBuilder() *builder {
	config := DefaultConfig()
	config.SessionsPerEra = 3
	config.BondingDuration = 3
	config.SlashDeferDuration = 0
	config.ValidatorCount = 2
	config.MinimumValidatorCount = 1
	config.MaxNominatorRewardedPerValidator = 64
	config.MinValidatorCommission = 0
	return &builder{
		config:        config,
		blockPoints:   DefaultBlockPoints,
		payout:        FixedPayout{PerEra: thor.NewBalance(3000)},
		targets:       []thor.Address{acc(11), acc(21)},
		nominatorBond: 500,
		existential:   1,
	}
}

func (b *builder) withCustody(accounts ...thor.Address) *builder {
	b.custody = accounts
	return b
}

func (b *builder) withExistentialDeposit(amount uint64) *builder {
	b.existential = amount
	return b
}

func (b *builder) withBlockPoints(points uint32) *builder {
	b.blockPoints = points
	return b
}

func (b *builder) withMinCommission(p thor.Perbill) *builder {
	b.config.MinValidatorCommission = p
	b.minCommission = p
	return b
}

func (b *builder) withSlashDefer(eras uint32) *builder {
	b.config.SlashDeferDuration = eras
	return b
}

func (b *builder) withNominations(bond uint64, targets ...thor.Address) *builder {
	b.nominatorBond = bond
	b.targets = targets
	return b
}

type testEnv struct {
	t        *testing.T
	sctx     *storage.Context
	staking  *Staking
	currency *currency.Currency
	election *election.Approval
	session  uint32
}

func (b *builder) build(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sctx := storage.NewContext(state.New(db), nil)
	cur := currency.New(sctx, thor.NewBalance(b.existential))
	approval := election.NewApproval(sctx)
	st := New(sctx, b.config, Deps{
		Currency: cur,
		Election: approval,
		Custody:  custody.NewStatic(b.custody...),
		Cmix:     StaticPoints(b.blockPoints),
		Payout:   b.payout,
	})

	for n, free := range map[byte]uint64{
		10: 1, 20: 1, 30: 1, 40: 1, 100: 1,
		11: 1000, 21: 2000, 31: 2000, 41: 2000, 101: 2000,
	} {
		require.NoError(t, cur.MakeFreeBalanceBe(acc(n), thor.NewBalance(free)))
	}

	require.NoError(t, st.InitGenesis())
	prefs := types.ValidatorPrefs{Commission: b.minCommission}
	for _, v := range []struct {
		stash, controller byte
		bond              uint64
	}{{11, 10, 1000}, {21, 20, 1000}, {31, 30, 500}} {
		require.NoError(t, st.Bond(acc(v.stash), acc(v.controller), thor.NewBalance(v.bond), token(v.stash)))
		require.NoError(t, st.Validate(acc(v.controller), prefs))
	}
	require.NoError(t, st.Bond(acc(41), acc(40), thor.NewBalance(1000), nil))
	require.NoError(t, st.Bond(acc(101), acc(100), thor.NewBalance(b.nominatorBond), nil))
	require.NoError(t, st.Nominate(acc(100), b.targets))
	require.NoError(t, st.Genesis(0))
	st.TakeEvents()

	return &testEnv{t: t, sctx: sctx, staking: st, currency: cur, election: approval}
}

func (e *testEnv) free(n byte) thor.Balance {
	free, err := e.currency.FreeBalance(acc(n))
	require.NoError(e.t, err)
	return free
}

func (e *testEnv) ledger(controller byte) *types.StakingLedger {
	l, err := e.staking.Ledger(acc(controller))
	require.NoError(e.t, err)
	return l
}

func (e *testEnv) ongoing() bool {
	ongoing, err := e.election.Ongoing()
	require.NoError(e.t, err)
	return ongoing
}

// rotateTo rotates sessions up to and including index.
func (e *testEnv) rotateTo(index uint32) {
	for e.session < index {
		e.session++
		require.NoError(e.t, e.staking.RotateSession(e.session, uint64(e.session)*sessionMillis))
	}
}

func (e *testEnv) kinds() []EventKind {
	var kinds []EventKind
	for _, ev := range e.staking.TakeEvents() {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}
