// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package points

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

func TestRewardAndDeduct(t *testing.T) {
	svc := New(newContext(t))
	a := thor.BytesToAddress([]byte("a"))
	b := thor.BytesToAddress([]byte("b"))

	require.NoError(t, svc.RewardByIDs(3, []types.IndividualPoints{{Who: a, Points: 5}, {Who: b, Points: 7}}))
	p, err := svc.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(14), p.Total)

	require.NoError(t, svc.DeductByIDs(3, []types.IndividualPoints{{Who: a, Points: 2}, {Who: b, Points: 3}}))
	p, err = svc.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), p.Total)
	assert.Equal(t, uint32(4), p.Get(a))
	assert.Equal(t, uint32(5), p.Get(b))

	// other eras are untouched
	p, err = svc.Get(4)
	require.NoError(t, err)
	assert.Zero(t, p.Total)

	svc.Remove(3)
	p, err = svc.Get(3)
	require.NoError(t, err)
	assert.Empty(t, p.Individual)
}

func TestShare(t *testing.T) {
	a := thor.BytesToAddress([]byte("a"))
	b := thor.BytesToAddress([]byte("b"))
	var p types.EraRewardPoints
	p.Reward(a, 2)
	p.Reward(b, 0)

	assert.Equal(t, thor.NewBalance(750), Share(&p, a, thor.NewBalance(1000)))
	assert.Equal(t, thor.NewBalance(250), Share(&p, b, thor.NewBalance(1000)))
	assert.True(t, Share(&p, thor.BytesToAddress([]byte("c")), thor.NewBalance(1000)).IsZero())
	assert.True(t, Share(&types.EraRewardPoints{}, a, thor.NewBalance(1000)).IsZero())
}
