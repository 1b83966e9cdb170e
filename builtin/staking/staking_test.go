// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxnetwork/staking/builtin/reverts"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

func TestGenesis(t *testing.T) {
	e := newBuilder().build(t)

	active, err := e.staking.ActiveEra()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, uint32(0), active.Index)

	elected, err := e.staking.ElectedValidators(0)
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{acc(11), acc(21)}, elected)

	exp, err := e.staking.Exposure(0, acc(11))
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, thor.NewBalance(1000), exp.Own)
	assert.Equal(t, thor.NewBalance(1250), exp.Total)
	assert.Equal(t, []types.IndividualExposure{{Who: acc(101), Value: thor.NewBalance(250)}}, exp.Others)

	version, err := e.staking.Version()
	require.NoError(t, err)
	assert.Equal(t, types.LatestRelease, version)

	validators, nominators, err := e.staking.Counters()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), validators)
	assert.Equal(t, uint32(1), nominators)

	voters, err := e.staking.VoterList()
	require.NoError(t, err)
	assert.Equal(t, []types.Voter{{Stash: acc(101), Score: 500}}, voters)
}

func TestBondErrors(t *testing.T) {
	e := newBuilder().build(t)
	require.NoError(t, e.currency.MakeFreeBalanceBe(acc(51), thor.NewBalance(1000)))

	assert.ErrorIs(t, e.staking.Bond(acc(11), acc(50), thor.NewBalance(100), nil), ErrAlreadyBonded)
	assert.ErrorIs(t, e.staking.Bond(acc(51), acc(10), thor.NewBalance(100), nil), ErrAlreadyPaired)
	assert.ErrorIs(t, e.staking.Bond(acc(51), acc(50), thor.NewBalance(0), nil), ErrInsufficientBond)

	// capped at the free balance
	require.NoError(t, e.staking.Bond(acc(51), acc(50), thor.NewBalance(5000), nil))
	l := e.ledger(50)
	require.NotNil(t, l)
	assert.Equal(t, thor.NewBalance(1000), l.Total)
	assert.Equal(t, []EventKind{EventBonded}, e.kinds())
}

func TestCmixIDUnique(t *testing.T) {
	e := newBuilder().build(t)
	require.NoError(t, e.currency.MakeFreeBalanceBe(acc(51), thor.NewBalance(1000)))

	err := e.staking.Bond(acc(51), acc(50), thor.NewBalance(100), token(11))
	assert.ErrorIs(t, err, ErrValidatorCmixIDNotUnique)
	assert.True(t, reverts.IsRevertErr(err))

	assert.ErrorIs(t, e.staking.SetCmixID(acc(41), *token(21)), ErrValidatorCmixIDNotUnique)

	owner, ok, err := e.staking.CmixOwner(*token(11))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, acc(11), owner)
}

func TestValidateRequiresCmixID(t *testing.T) {
	e := newBuilder().build(t)

	assert.ErrorIs(t, e.staking.Validate(acc(40), types.ValidatorPrefs{}), ErrValidatorMustHaveCmixID)
	assert.ErrorIs(t, e.staking.Validate(acc(41), types.ValidatorPrefs{}), ErrNotController)

	require.NoError(t, e.staking.SetCmixID(acc(41), *token(41)))
	require.NoError(t, e.staking.Validate(acc(40), types.ValidatorPrefs{}))
}

func TestWithdrawKillsEmptyLedgerWithoutExistentialDeposit(t *testing.T) {
	e := newBuilder().withExistentialDeposit(0).build(t)

	require.NoError(t, e.staking.Chill(acc(30)))
	require.NoError(t, e.staking.Unbond(acc(30), thor.NewBalance(500)))
	e.rotateTo(8)

	require.NoError(t, e.staking.WithdrawUnbonded(acc(30), 0))
	assert.Nil(t, e.ledger(30))
	_, ok, err := e.staking.CmixOwner(*token(31))
	require.NoError(t, err)
	assert.False(t, ok)
	info, err := e.staking.Stash(acc(31))
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestWithdrawReleasesCmixID(t *testing.T) {
	e := newBuilder().build(t)

	require.NoError(t, e.staking.Chill(acc(30)))
	require.NoError(t, e.staking.Unbond(acc(30), thor.NewBalance(500)))
	l := e.ledger(30)
	require.NotNil(t, l)
	assert.True(t, l.Active.IsZero())
	assert.Equal(t, []types.UnlockChunk{{Value: thor.NewBalance(500), Era: 3}}, l.Unlocking)

	// still locked
	require.NoError(t, e.staking.WithdrawUnbonded(acc(30), 0))
	assert.NotNil(t, e.ledger(30))

	e.rotateTo(8)
	current, _, err := e.staking.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), current)

	e.staking.TakeEvents()
	require.NoError(t, e.staking.WithdrawUnbonded(acc(30), 0))
	assert.Nil(t, e.ledger(30))
	assert.Equal(t, []EventKind{EventWithdrawn}, e.kinds())

	_, ok, err := e.staking.CmixOwner(*token(31))
	require.NoError(t, err)
	assert.False(t, ok)

	info, err := e.staking.Stash(acc(31))
	require.NoError(t, err)
	assert.Nil(t, info)

	locked, err := e.currency.Locked(acc(31))
	require.NoError(t, err)
	assert.True(t, locked.IsZero())

	// the token can be used again
	require.NoError(t, e.staking.SetCmixID(acc(41), *token(31)))
}

func TestSetCmixIDErrors(t *testing.T) {
	e := newBuilder().build(t)

	assert.ErrorIs(t, e.staking.SetCmixID(acc(40), *token(99)), ErrNotStash)
	assert.ErrorIs(t, e.staking.SetCmixID(acc(11), *token(99)), ErrStashAlreadyHasCmixID)
	assert.ErrorIs(t, e.staking.SetCmixID(acc(41), *token(11)), ErrValidatorCmixIDNotUnique)

	require.NoError(t, e.staking.SetCmixID(acc(41), *token(41)))
	assert.Equal(t, token(41), e.ledger(40).CmixID)

	events := e.staking.TakeEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCmixIDSet, events[0].Kind)
	assert.Equal(t, token(41), events[0].CmixID)
}

func TestTransferCmixID(t *testing.T) {
	e := newBuilder().build(t)
	require.NoError(t, e.currency.MakeFreeBalanceBe(acc(51), thor.NewBalance(1000)))
	require.NoError(t, e.staking.Bond(acc(51), acc(50), thor.NewBalance(100), token(51)))
	e.staking.TakeEvents()

	require.NoError(t, e.staking.TransferCmixID(acc(51), acc(41)))

	assert.Nil(t, e.ledger(50).CmixID)
	assert.Equal(t, token(51), e.ledger(40).CmixID)
	owner, ok, err := e.staking.CmixOwner(*token(51))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, acc(41), owner)

	events := e.staking.TakeEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCmixIDTransferred, events[0].Kind)
	assert.Equal(t, acc(51), events[0].Stash)
	assert.Equal(t, acc(41), *events[0].Other)
}

func TestTransferCmixIDErrors(t *testing.T) {
	e := newBuilder().build(t)

	assert.ErrorIs(t, e.staking.TransferCmixID(acc(10), acc(41)), ErrNotStash)
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(11), acc(40)), ErrNotStash)
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(41), acc(11)), ErrStashNoCmixID)
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(11), acc(21)), ErrStashAlreadyHasCmixID)
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(11), acc(41)), ErrStashValidating)

	require.NoError(t, e.staking.Chill(acc(10)))
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(11), acc(41)), ErrStashActiveValidator)

	// nothing moved
	assert.Equal(t, token(11), e.ledger(10).CmixID)
	assert.Nil(t, e.ledger(40).CmixID)
}

func TestTransferCmixIDElectionOngoing(t *testing.T) {
	e := newBuilder().build(t)

	require.NoError(t, e.staking.Chill(acc(10)))
	require.NoError(t, e.election.Signal())
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(11), acc(41)), ErrElectionOngoing)
}

func TestElectionOngoingKeptInState(t *testing.T) {
	e := newBuilder().build(t)
	require.NoError(t, e.staking.Chill(acc(30)))

	// session 1 is the last one before era 1 is planned
	e.rotateTo(1)
	require.True(t, e.ongoing())

	// an instance rebuilt over the same state with the default provider
	restarted := New(e.sctx, e.staking.Config(), Deps{Currency: e.currency})
	assert.ErrorIs(t, restarted.TransferCmixID(acc(31), acc(41)), ErrElectionOngoing)
	owner, ok, err := restarted.CmixOwner(*token(31))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, acc(31), owner)

	require.NoError(t, restarted.RotateSession(2, 2*sessionMillis))
	assert.False(t, e.ongoing())
}

func TestElectionSignalRevertedWithCall(t *testing.T) {
	e := newBuilder().build(t)

	st := e.sctx.State()
	revision := st.NewCheckpoint()
	require.NoError(t, e.election.Signal())
	require.True(t, e.ongoing())
	st.RevertTo(revision)
	assert.False(t, e.ongoing())
}

func TestTransferCmixIDElectedValidator(t *testing.T) {
	e := newBuilder().build(t)

	// enough to get 31 elected next era
	require.NoError(t, e.staking.BondExtra(acc(30), thor.NewBalance(1000)))
	assert.Equal(t, thor.NewBalance(1500), e.ledger(30).Active)

	e.rotateTo(2)
	current, _, err := e.staking.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), current)
	elected, err := e.staking.ElectedValidators(1)
	require.NoError(t, err)
	assert.Contains(t, elected, acc(31))

	require.NoError(t, e.staking.Chill(acc(30)))
	assert.ErrorIs(t, e.staking.TransferCmixID(acc(31), acc(41)), ErrStashElectedValidator)
}

func TestRewardPoints(t *testing.T) {
	e := newBuilder().build(t)
	v, w := acc(11), acc(21)

	require.NoError(t, e.staking.RewardByIDs([]types.IndividualPoints{{Who: v}, {Who: v}}))
	p, err := e.staking.EraPoints(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Get(v))
	assert.Equal(t, uint32(1), p.Total)

	require.NoError(t, e.staking.RewardByIDs([]types.IndividualPoints{{Who: v, Points: 5}, {Who: w, Points: 7}}))
	p, err = e.staking.EraPoints(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), p.Get(v))
	assert.Equal(t, uint32(8), p.Get(w))
	assert.Equal(t, uint32(14), p.Total)

	require.NoError(t, e.staking.DeductByIDs([]types.IndividualPoints{{Who: v, Points: 10}, {Who: acc(31), Points: 3}}))
	p, err = e.staking.EraPoints(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Get(v))
	assert.Equal(t, uint32(0), p.Get(acc(31)))
	assert.Equal(t, uint32(9), p.Total)
}

func TestNoteAuthor(t *testing.T) {
	e := newBuilder().withBlockPoints(10).build(t)

	require.NoError(t, e.staking.NoteAuthor(acc(11)))
	require.NoError(t, e.staking.NoteAuthor(acc(11)))
	p, err := e.staking.EraPoints(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(21), p.Get(acc(11)))
	assert.Equal(t, uint32(21), p.Total)
}

func TestPayoutStakers(t *testing.T) {
	e := newBuilder().build(t)

	require.NoError(t, e.staking.NoteAuthor(acc(11)))
	require.NoError(t, e.staking.NoteAuthor(acc(21)))

	assert.ErrorIs(t, e.staking.PayoutStakers(acc(11), 0), ErrInvalidEraToReward)

	e.rotateTo(3)
	active, err := e.staking.ActiveEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), active.Index)
	reward, ok, err := e.staking.ValidatorReward(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, thor.NewBalance(3000), reward)
	e.staking.TakeEvents()

	assert.ErrorIs(t, e.staking.PayoutStakers(acc(10), 0), ErrNotStash)
	assert.ErrorIs(t, e.staking.PayoutStakers(acc(11), 1), ErrInvalidEraToReward)

	// 1500 each: 1200 to the validator and 300 to the nominator
	require.NoError(t, e.staking.PayoutStakers(acc(11), 0))
	assert.Equal(t, thor.NewBalance(2200), e.free(11))
	assert.Equal(t, thor.NewBalance(2300), e.free(101))
	assert.Equal(t, []EventKind{EventPayoutStarted, EventRewarded, EventRewarded}, e.kinds())

	require.NoError(t, e.staking.PayoutStakers(acc(21), 0))
	assert.Equal(t, thor.NewBalance(3200), e.free(21))
	assert.Equal(t, thor.NewBalance(2600), e.free(101))

	assert.ErrorIs(t, e.staking.PayoutStakers(acc(11), 0), ErrAlreadyClaimed)
	assert.Equal(t, thor.NewBalance(2200), e.free(11))
	assert.Equal(t, []uint32{0}, e.ledger(10).ClaimedRewards)
}

func TestPayoutCommission(t *testing.T) {
	e := newBuilder().withMinCommission(thor.PerbillFromPercent(10)).build(t)

	require.NoError(t, e.staking.NoteAuthor(acc(11)))
	e.rotateTo(3)

	// all 3000 to 11: 300 fee, then 2160 own and 540 to 101
	require.NoError(t, e.staking.PayoutStakers(acc(11), 0))
	assert.Equal(t, thor.NewBalance(1000+300+2160), e.free(11))
	assert.Equal(t, thor.NewBalance(2000+540), e.free(101))

	// 21 authored nothing
	require.NoError(t, e.staking.PayoutStakers(acc(21), 0))
	assert.Equal(t, thor.NewBalance(2000), e.free(21))
}

func TestCommissionFloor(t *testing.T) {
	e := newBuilder().withMinCommission(thor.PerbillFromPercent(2)).build(t)
	require.NoError(t, e.currency.MakeFreeBalanceBe(acc(51), thor.NewBalance(1000)))
	require.NoError(t, e.staking.Bond(acc(51), acc(50), thor.NewBalance(500), token(51)))

	err := e.staking.Validate(acc(50), types.ValidatorPrefs{Commission: thor.PerbillFromPercent(1)})
	assert.ErrorIs(t, err, ErrValidatorCommissionTooLow)
	require.NoError(t, e.staking.Validate(acc(50), types.ValidatorPrefs{Commission: thor.PerbillFromPercent(2)}))
	require.NoError(t, e.staking.Validate(acc(50), types.ValidatorPrefs{Commission: thor.PerbillFromPercent(3)}))

	// raising the floor leaves existing validators alone
	require.NoError(t, e.staking.SetMinValidatorCommission(thor.PerbillFromPercent(5)))
	assert.ErrorIs(t, e.staking.Validate(acc(50), types.ValidatorPrefs{Commission: thor.PerbillFromPercent(3)}), ErrValidatorCommissionTooLow)
	info, err := e.staking.Stash(acc(51))
	require.NoError(t, err)
	require.NotNil(t, info.Validator)
	assert.Equal(t, thor.PerbillFromPercent(3), info.Validator.Commission)
}

func TestCustodyExposure(t *testing.T) {
	e := newBuilder().withCustody(acc(101)).withNominations(2000, acc(11), acc(31)).build(t)

	elected, err := e.staking.ElectedValidators(0)
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{acc(11), acc(31)}, elected)

	for _, v := range elected {
		exp, err := e.staking.Exposure(0, v)
		require.NoError(t, err)
		require.NotNil(t, exp)
		assert.Empty(t, exp.Others)
		assert.Equal(t, thor.NewBalance(1000), exp.Custody)
		assert.Equal(t, exp.Own, exp.Total)
	}
}

func TestSlashCustodyExempt(t *testing.T) {
	for _, tt := range []struct {
		name      string
		custody   []thor.Address
		nominator uint64
		bonded    uint64
	}{
		{"custody", []thor.Address{acc(101)}, 2000, 500},
		{"regular", nil, 1950, 450},
	} {
		t.Run(tt.name, func(t *testing.T) {
			e := newBuilder().withCustody(tt.custody...).build(t)

			require.NoError(t, e.staking.ReportOffence(acc(11), 0, thor.PerbillFromPercent(10), nil))
			require.NoError(t, e.staking.ReportOffence(acc(21), 0, thor.PerbillFromPercent(10), nil))

			assert.Equal(t, thor.NewBalance(tt.nominator), e.free(101))
			assert.Equal(t, thor.NewBalance(tt.bonded), e.ledger(100).Active)
			assert.Equal(t, thor.NewBalance(900), e.free(11))
			assert.Equal(t, thor.NewBalance(900), e.ledger(10).Total)

			locked, err := e.currency.Locked(acc(11))
			require.NoError(t, err)
			assert.Equal(t, thor.NewBalance(900), locked)

			info, err := e.staking.Stash(acc(11))
			require.NoError(t, err)
			assert.Nil(t, info.Validator)
		})
	}
}

func TestSlashCustodyValidatorExempt(t *testing.T) {
	for _, tt := range []struct {
		name    string
		custody []thor.Address
		bonded  uint64
	}{
		{"custody", []thor.Address{acc(11)}, 1000},
		{"regular", nil, 900},
	} {
		t.Run(tt.name, func(t *testing.T) {
			e := newBuilder().withCustody(tt.custody...).build(t)
			require.Equal(t, thor.NewBalance(1000), e.free(11))

			require.NoError(t, e.staking.ReportOffence(acc(11), 0, thor.PerbillFromPercent(10), nil))

			assert.Equal(t, thor.NewBalance(tt.bonded), e.free(11))
			assert.Equal(t, thor.NewBalance(tt.bonded), e.ledger(10).Total)
			assert.Equal(t, thor.NewBalance(tt.bonded), e.ledger(10).Active)
			locked, err := e.currency.Locked(acc(11))
			require.NoError(t, err)
			assert.Equal(t, thor.NewBalance(tt.bonded), locked)
		})
	}
}

func TestDeferredSlash(t *testing.T) {
	e := newBuilder().withSlashDefer(1).build(t)

	require.NoError(t, e.staking.ReportOffence(acc(11), 0, thor.PerbillFromPercent(10), []thor.Address{acc(41)}))
	assert.Equal(t, thor.NewBalance(1000), e.free(11))
	assert.Equal(t, []EventKind{EventChilled, EventSlashDeferred}, e.kinds())

	assert.ErrorIs(t, e.staking.CancelDeferredSlash(1, []uint32{1}), ErrInvalidSlashIndex)
	assert.ErrorIs(t, e.staking.CancelDeferredSlash(1, []uint32{0, 0}), ErrNotSortedAndUnique)

	e.rotateTo(3)
	assert.Equal(t, thor.NewBalance(900), e.free(11))
	assert.Equal(t, thor.NewBalance(1975), e.free(101))
	// 10% of 125, rounded down
	assert.Equal(t, thor.NewBalance(2012), e.free(41))
}

func TestCancelDeferredSlash(t *testing.T) {
	e := newBuilder().withSlashDefer(1).build(t)

	require.NoError(t, e.staking.ReportOffence(acc(11), 0, thor.PerbillFromPercent(10), nil))
	require.NoError(t, e.staking.ReportOffence(acc(21), 0, thor.PerbillFromPercent(10), nil))
	e.staking.TakeEvents()

	require.NoError(t, e.staking.CancelDeferredSlash(1, []uint32{0}))
	assert.Equal(t, []EventKind{EventSlashCancelled}, e.kinds())

	e.rotateTo(3)
	assert.Equal(t, thor.NewBalance(1000), e.free(11))
	assert.Equal(t, thor.NewBalance(1900), e.free(21))
}

func TestUnbondRebond(t *testing.T) {
	e := newBuilder().build(t)

	assert.ErrorIs(t, e.staking.Unbond(acc(41), thor.NewBalance(10)), ErrNotController)
	assert.ErrorIs(t, e.staking.Rebond(acc(40), thor.NewBalance(10)), ErrNoUnlockChunk)

	require.NoError(t, e.staking.Unbond(acc(100), thor.NewBalance(200)))
	require.NoError(t, e.staking.Unbond(acc(100), thor.NewBalance(100)))
	l := e.ledger(100)
	assert.Equal(t, thor.NewBalance(200), l.Active)
	assert.Equal(t, thor.NewBalance(500), l.Total)
	assert.Equal(t, []types.UnlockChunk{{Value: thor.NewBalance(300), Era: 3}}, l.Unlocking)

	voters, err := e.staking.VoterList()
	require.NoError(t, err)
	assert.Equal(t, uint64(200), voters[0].Score)

	require.NoError(t, e.staking.Rebond(acc(100), thor.NewBalance(50)))
	l = e.ledger(100)
	assert.Equal(t, thor.NewBalance(250), l.Active)
	assert.Equal(t, []types.UnlockChunk{{Value: thor.NewBalance(250), Era: 3}}, l.Unlocking)
}

func TestMinimumBonds(t *testing.T) {
	b := newBuilder()
	b.config.MinNominatorBond = thor.NewBalance(400)
	e := b.build(t)

	assert.ErrorIs(t, e.staking.Unbond(acc(100), thor.NewBalance(200)), ErrInsufficientBond)
	require.NoError(t, e.staking.Unbond(acc(100), thor.NewBalance(100)))

	require.NoError(t, e.staking.Chill(acc(100)))
	require.NoError(t, e.staking.Unbond(acc(100), thor.NewBalance(400)))
	assert.True(t, e.ledger(100).Active.IsZero())
}

func TestNominate(t *testing.T) {
	e := newBuilder().build(t)

	assert.ErrorIs(t, e.staking.Nominate(acc(40), nil), ErrEmptyTargets)
	assert.ErrorIs(t, e.staking.Nominate(acc(40), []thor.Address{acc(41)}), ErrBadTarget)

	many := make([]thor.Address, e.staking.Config().MaxNominations+1)
	for i := range many {
		many[i] = acc(11)
	}
	assert.ErrorIs(t, e.staking.Nominate(acc(40), many), ErrTooManyTargets)

	require.NoError(t, e.staking.Nominate(acc(40), []thor.Address{acc(31), acc(31), acc(11)}))
	info, err := e.staking.Stash(acc(41))
	require.NoError(t, err)
	require.NotNil(t, info.Nominations)
	assert.Equal(t, []thor.Address{acc(31), acc(11)}, info.Nominations.Targets)

	// blocked validators keep their existing nominators only
	require.NoError(t, e.staking.Validate(acc(30), types.ValidatorPrefs{Blocked: true}))
	assert.ErrorIs(t, e.staking.Nominate(acc(100), []thor.Address{acc(31)}), ErrBadTarget)
	require.NoError(t, e.staking.Nominate(acc(40), []thor.Address{acc(31)}))

	voters, err := e.staking.VoterList()
	require.NoError(t, err)
	assert.Equal(t, []types.Voter{{Stash: acc(41), Score: 1000}, {Stash: acc(101), Score: 500}}, voters)

	// a nominator turning validator leaves the voter list
	require.NoError(t, e.staking.SetCmixID(acc(41), *token(41)))
	require.NoError(t, e.staking.Validate(acc(40), types.ValidatorPrefs{}))
	voters, err = e.staking.VoterList()
	require.NoError(t, err)
	assert.Equal(t, []types.Voter{{Stash: acc(101), Score: 500}}, voters)

	validators, nominators, err := e.staking.Counters()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), validators)
	assert.Equal(t, uint32(1), nominators)
}

func TestChill(t *testing.T) {
	e := newBuilder().build(t)

	require.NoError(t, e.staking.Chill(acc(100)))
	assert.Equal(t, []EventKind{EventChilled}, e.kinds())

	voters, err := e.staking.VoterList()
	require.NoError(t, err)
	assert.Empty(t, voters)

	// chilling twice is silent
	require.NoError(t, e.staking.Chill(acc(100)))
	assert.Empty(t, e.kinds())
}

func TestFailedCallIsAtomic(t *testing.T) {
	e := newBuilder().build(t)

	assert.ErrorIs(t, e.staking.Nominate(acc(100), []thor.Address{acc(11), acc(41)}), ErrBadTarget)
	info, err := e.staking.Stash(acc(101))
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{acc(11), acc(21)}, info.Nominations.Targets)

	// writes and events made before the failure are dropped
	err = e.staking.atomic("test", func() error {
		require.NoError(t, e.staking.globals.SetValidatorCount(9))
		require.NoError(t, e.currency.Deposit(acc(41), thor.NewBalance(100)))
		e.staking.emit(Event{Kind: EventBonded, Stash: acc(41)})
		return ErrBadTarget
	})
	assert.ErrorIs(t, err, ErrBadTarget)

	count, err := e.staking.globals.ValidatorCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count)
	assert.Equal(t, thor.NewBalance(2000), e.free(41))
	assert.Empty(t, e.staking.Events())
}

func TestSessionLifecycle(t *testing.T) {
	e := newBuilder().build(t)

	e.rotateTo(2)
	assert.Equal(t, []EventKind{EventStakersElected}, e.kinds())

	e.rotateTo(3)
	assert.Equal(t, []EventKind{EventEraPaid}, e.kinds())
	active, err := e.staking.ActiveEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), active.Index)
	assert.Equal(t, uint64(3*sessionMillis), *active.Start)

	// forced era at the next planning
	require.NoError(t, e.staking.ForceNewEra())
	e.rotateTo(4)
	current, _, err := e.staking.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), current)
	force, err := e.staking.ForceEra()
	require.NoError(t, err)
	assert.Equal(t, types.NotForcing, force)

	require.NoError(t, e.staking.ForceNoEras())
	e.rotateTo(20)
	current, _, err = e.staking.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), current)
	active, err = e.staking.ActiveEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), active.Index)

	require.NoError(t, e.staking.ForceNewEraAlways())
	e.rotateTo(22)
	current, _, err = e.staking.CurrentEra()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), current)
}

func TestElectionSignal(t *testing.T) {
	e := newBuilder().build(t)

	e.rotateTo(1)
	assert.True(t, e.ongoing())
	e.rotateTo(2)
	assert.False(t, e.ongoing())
}

func TestSetValidatorCount(t *testing.T) {
	e := newBuilder().build(t)

	require.NoError(t, e.staking.SetValidatorCount(3))
	e.rotateTo(2)
	elected, err := e.staking.ElectedValidators(1)
	require.NoError(t, err)
	assert.Len(t, elected, 3)
}
