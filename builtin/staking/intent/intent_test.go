// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package intent

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

func TestIntentsAreExclusive(t *testing.T) {
	svc := New(newContext(t))
	a := thor.BytesToAddress([]byte("a"))
	b := thor.BytesToAddress([]byte("b"))

	_, err := svc.SetValidator(a, types.ValidatorPrefs{Commission: thor.PerbillFromPercent(5)})
	require.NoError(t, err)
	existed, err := svc.SetNominator(b, types.Nominations{Targets: []thor.Address{a}})
	require.NoError(t, err)
	assert.False(t, existed)

	v, n, err := svc.Counters()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
	assert.Equal(t, uint32(1), n)

	// b switches to validating
	wasNominator, err := svc.SetValidator(b, types.ValidatorPrefs{})
	require.NoError(t, err)
	assert.True(t, wasNominator)
	noms, err := svc.Nominations(b)
	require.NoError(t, err)
	assert.Nil(t, noms)

	v, n, err = svc.Counters()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)
	assert.Equal(t, uint32(0), n)

	// updating prefs does not count twice
	_, err = svc.SetValidator(b, types.ValidatorPrefs{Blocked: true})
	require.NoError(t, err)
	prefs, err := svc.Validator(b)
	require.NoError(t, err)
	assert.True(t, prefs.Blocked)

	removed, err := svc.RemoveValidator(a)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = svc.RemoveValidator(a)
	require.NoError(t, err)
	assert.False(t, removed)

	v, n, err = svc.Counters()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
	assert.Equal(t, uint32(0), n)

	cv, cn, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, v, cv)
	assert.Equal(t, n, cn)
}
