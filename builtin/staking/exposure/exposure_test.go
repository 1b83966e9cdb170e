// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package exposure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/lvldb"
	"github.com/xxnetwork/staking/state"
	"github.com/xxnetwork/staking/thor"
)

func newContext(t *testing.T) *storage.Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewContext(state.New(db), nil)
}

var (
	validator = thor.BytesToAddress([]byte("validator"))
	alice     = thor.BytesToAddress([]byte("alice"))
	bob       = thor.BytesToAddress([]byte("bob"))
	vault     = thor.BytesToAddress([]byte("vault"))
)

func bal(x uint64) thor.Balance { return thor.NewBalance(x) }

func TestBuildKeepsCustodyApart(t *testing.T) {
	isCustody := func(who thor.Address) bool { return who == vault }
	e := Build(validator, []types.IndividualExposure{
		{Who: validator, Value: bal(1000)},
		{Who: alice, Value: bal(250)},
		{Who: vault, Value: bal(2000)},
	}, isCustody)

	assert.Equal(t, bal(1000), e.Own)
	assert.Equal(t, bal(2000), e.Custody)
	assert.Equal(t, bal(1250), e.Total)
	assert.Equal(t, []types.IndividualExposure{{Who: alice, Value: bal(250)}}, e.Others)
}

func TestSplit(t *testing.T) {
	e := types.Exposure{
		Total:  bal(1000),
		Own:    bal(500),
		Others: []types.IndividualExposure{{Who: alice, Value: bal(300)}, {Who: bob, Value: bal(200)}},
	}

	own, parts := Split(&e, thor.PerbillFromPercent(10), bal(10_000))
	// 1000 commission, 9000 shared 50/30/20
	assert.Equal(t, bal(5500), own)
	assert.Equal(t, []thor.Balance{bal(2700), bal(1800)}, parts)

	empty := types.Exposure{}
	own, parts = Split(&empty, 0, bal(77))
	assert.Equal(t, bal(77), own)
	assert.Empty(t, parts)
}

func TestService(t *testing.T) {
	svc := New(newContext(t))
	e := types.Exposure{
		Total:  bal(1500),
		Own:    bal(1000),
		Others: []types.IndividualExposure{{Who: alice, Value: bal(100)}, {Who: bob, Value: bal(400)}},
	}
	prefs := types.ValidatorPrefs{Commission: thor.PerbillFromPercent(3)}
	require.NoError(t, svc.Store(2, validator, e, 1, prefs))
	require.NoError(t, svc.SetTotalStake(2, bal(1500)))
	require.NoError(t, svc.SetValidatorReward(2, bal(42)))

	got, err := svc.Get(2, validator)
	require.NoError(t, err)
	assert.Equal(t, e, *got)

	clipped, err := svc.GetClipped(2, validator)
	require.NoError(t, err)
	assert.Equal(t, []types.IndividualExposure{{Who: bob, Value: bal(400)}}, clipped.Others)
	assert.Equal(t, e.Total, clipped.Total)

	p, err := svc.Prefs(2, validator)
	require.NoError(t, err)
	assert.Equal(t, prefs, p)

	ok, err := svc.IsExposed(3, validator)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Clear(2))
	got, err = svc.Get(2, validator)
	require.NoError(t, err)
	assert.Nil(t, got)
	_, ok, err = svc.ValidatorReward(2)
	require.NoError(t, err)
	assert.False(t, ok)
}
