// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voters

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

func TestList(t *testing.T) {
	l := New(newContext(t))
	a := thor.BytesToAddress([]byte("a"))
	b := thor.BytesToAddress([]byte("b"))
	c := thor.BytesToAddress([]byte("c"))

	require.NoError(t, l.Insert(a, 10))
	require.NoError(t, l.Insert(b, 30))
	require.NoError(t, l.Insert(c, 10))
	assert.ErrorIs(t, l.Insert(a, 1), ErrDuplicate)

	all, err := l.Voters()
	require.NoError(t, err)
	assert.Equal(t, []types.Voter{{Stash: b, Score: 30}, {Stash: a, Score: 10}, {Stash: c, Score: 10}}, all)

	require.NoError(t, l.Update(c, 50))
	assert.ErrorIs(t, l.Update(thor.BytesToAddress([]byte("d")), 1), ErrNotFound)
	all, err = l.Voters()
	require.NoError(t, err)
	assert.Equal(t, c, all[0].Stash)

	require.NoError(t, l.Remove(b))
	require.NoError(t, l.Remove(b))
	n, err := l.Count()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)
	require.NoError(t, l.SanityCheck())
}

func TestRegenerate(t *testing.T) {
	l := New(newContext(t))
	stale := thor.BytesToAddress([]byte("stale"))
	require.NoError(t, l.Insert(stale, 1))

	ids := []thor.Address{thor.BytesToAddress([]byte("x")), thor.BytesToAddress([]byte("y"))}
	n, err := l.Regenerate(ids, func(who thor.Address) (uint64, error) {
		return uint64(who[31]), nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	ok, err := l.Contains(stale)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, l.SanityCheck())

	all, err := l.Voters()
	require.NoError(t, err)
	assert.Equal(t, ids[1], all[0].Stash)
}
