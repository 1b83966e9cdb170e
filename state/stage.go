// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xxnetwork/staking/thor"
)

type change struct {
	key   []byte
	value []byte // nil for deletion
}

// Stage abstracts the pending changes of a state.
type Stage struct {
	state   *State
	changes []change
}

// Len returns the number of changed keys.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of the changeset.
// Equal changesets produce equal digests regardless of write order.
func (s *Stage) Hash() thor.Bytes32 {
	h := thor.NewBlake2b()
	for _, c := range s.changes {
		deleted := c.value == nil
		_ = rlp.Encode(h, []any{c.key, deleted, c.value})
	}
	var b32 thor.Bytes32
	h.Sum(b32[:0])
	return b32
}

// Commit writes all changes atomically, then resets the journal of the state.
func (s *Stage) Commit() error {
	batch := s.state.db.NewBatch()
	for _, c := range s.changes {
		var err error
		if c.value == nil {
			err = batch.Delete(c.key)
		} else {
			err = batch.Put(c.key, c.value)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	if s.state.cache != nil {
		for _, c := range s.changes {
			s.state.cache.Add(string(c.key), c.value)
		}
	}
	s.state.logCacheStats()
	s.state.reset()
	return nil
}
