// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xxnetwork/staking/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := make(map[string]string)
	src["foo"] = "bar"

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, r := src[key]
		return v, r, nil
	})

	tests := []struct {
		f         func()
		depth     int
		putKey    string
		putValue  string
		getKey    string
		getReturn []any
	}{
		{func() {}, 1, "", "", "foo", []any{"bar", true, nil}},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", []any{"baz", true, nil}},
		{func() {}, 2, "foo", "baz1", "foo", []any{"baz1", true, nil}},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", []any{"qux", true, nil}},
		{func() { sm.Pop() }, 2, "", "", "foo", []any{"baz1", true, nil}},
		{func() { sm.Pop() }, 1, "", "", "foo", []any{"bar", true, nil}},

		{func() { sm.Push(); sm.Push() }, 3, "", "", "", nil},
		{func() { sm.PopTo(0) }, 0, "", "", "", nil},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		if test.getKey != "" {
			v, ok, err := sm.Get(test.getKey)
			assert.Equal(test.getReturn, M(v, ok, err))
		}
	}
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(key string) (int, bool, error) {
		return 0, false, nil
	})

	sm.Put("a", 1)
	rev := sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)

	assert.Len(t, sm.Journal(), 3)
	v, ok, _ := sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	sm.PopTo(rev)
	assert.Len(t, sm.Journal(), 1)
	v, ok, _ = sm.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok, _ = sm.Get("b")
	assert.False(t, ok)
}

func TestStackedMapSourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := stackedmap.New(func(key string) (int, bool, error) {
		return 0, false, boom
	})
	_, _, err := sm.Get("x")
	assert.Equal(t, boom, err)

	sm.Put("x", 1)
	v, ok, err := sm.Get("x")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
