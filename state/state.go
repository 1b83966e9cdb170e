// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xxnetwork/staking/cache"
	"github.com/xxnetwork/staking/kv"
	"github.com/xxnetwork/staking/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State is a journaled view of the runtime storage.
// Writes stay in memory until staged and committed.
type State struct {
	db    kv.Store
	cache *cache.LRU[string, []byte] // committed values, nil entries cache absence
	sm    *stackedmap.StackedMap[string, []byte]
}

// New create state object over db.
func New(db kv.Store) *State {
	return NewWithCache(db, 0)
}

// NewWithCache create state object with a read cache of committed values.
func NewWithCache(db kv.Store, cacheSize int) *State {
	s := &State{db: db}
	if cacheSize > 0 {
		s.cache, _ = cache.NewLRU[string, []byte](cacheSize)
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(func(key string) ([]byte, bool, error) {
		v, err := s.committed(key)
		if err != nil {
			return nil, false, err
		}
		return v, v != nil, nil
	})
}

// committed loads the committed value of key. A nil value means absent.
func (s *State) committed(key string) ([]byte, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			metricCacheCounter().AddWithLabel(1, map[string]string{"event": "hit"})
			return v, nil
		}
		metricCacheCounter().AddWithLabel(1, map[string]string{"event": "miss"})
	}
	v, err := s.db.Get([]byte(key))
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, err
		}
		v = nil
	} else if v == nil {
		v = []byte{}
	}
	if s.cache != nil {
		s.cache.Add(key, v)
	}
	return v, nil
}

// Get returns the current value of key, or nil if absent.
func (s *State) Get(key []byte) ([]byte, error) {
	v, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// Has returns whether key currently has a value.
func (s *State) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// Set sets the value of key.
func (s *State) Set(key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	s.sm.Put(string(key), v)
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), nil)
}

// Iterate calls fn for every live key with the given prefix, in key order.
// Pending writes are merged over committed values. Keys are collected before
// fn is called, so fn may write the state.
func (s *State) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	keys := make(map[string]struct{})

	iter := s.db.Iterate(kv.PrefixRange(prefix))
	for iter.Next() {
		keys[string(iter.Key())] = struct{}{}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return &Error{err}
	}
	for _, entry := range s.sm.Journal() {
		if len(entry.Key) >= len(prefix) && entry.Key[:len(prefix)] == string(prefix) {
			keys[entry.Key] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	for _, k := range sorted {
		v, err := s.Get([]byte(k))
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage collects all pending writes into a stage, to compute the changeset
// digest or commit.
func (s *State) Stage() *Stage {
	latest := make(map[string][]byte)
	for _, entry := range s.sm.Journal() {
		latest[entry.Key] = entry.Value
	}

	changes := make([]change, 0, len(latest))
	for k, v := range latest {
		changes = append(changes, change{key: []byte(k), value: v})
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].key, changes[j].key) < 0
	})
	return &Stage{state: s, changes: changes}
}
