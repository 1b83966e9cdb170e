// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package voters keeps the nominators ordered by score, from which the
// election snapshot takes its voters.
package voters

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "VoterList"

var (
	ErrDuplicate = errors.New("voter already in list")
	ErrNotFound  = errors.New("voter not in list")
)

type List struct {
	nodes   *storage.Map[thor.Address, uint64]
	counter *storage.Value[uint32]
}

func New(sctx *storage.Context) *List {
	return &List{
		nodes:   storage.NewMap[thor.Address, uint64](sctx, module, "ListNodes", storage.AddressKey),
		counter: storage.NewValue[uint32](sctx, module, "CounterForListNodes"),
	}
}

func (l *List) Count() (uint32, error) {
	return l.counter.GetOrDefault(0)
}

func (l *List) Contains(stash thor.Address) (bool, error) {
	return l.nodes.Has(stash)
}

// Score converts an active bond into a list score, saturating at the uint64 range.
func Score(active thor.Balance) uint64 {
	return active.Uint64()
}

// Insert adds stash with score.
func (l *List) Insert(stash thor.Address, score uint64) error {
	ok, err := l.nodes.Has(stash)
	if err != nil {
		return err
	}
	if ok {
		return ErrDuplicate
	}
	n, err := l.Count()
	if err != nil {
		return err
	}
	if err := l.nodes.Set(stash, score); err != nil {
		return err
	}
	return l.counter.Set(n + 1)
}

// Update changes the score of stash.
func (l *List) Update(stash thor.Address, score uint64) error {
	ok, err := l.nodes.Has(stash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return l.nodes.Set(stash, score)
}

// Remove drops stash, if present.
func (l *List) Remove(stash thor.Address) error {
	ok, err := l.nodes.Has(stash)
	if err != nil || !ok {
		return err
	}
	n, err := l.Count()
	if err != nil {
		return err
	}
	l.nodes.Remove(stash)
	if n > 0 {
		n--
	}
	return l.counter.Set(n)
}

// Voters returns the list by descending score. Ties keep the stash order.
func (l *List) Voters() ([]types.Voter, error) {
	var all []types.Voter
	if err := l.nodes.Iterate(func(stash thor.Address, score uint64) error {
		all = append(all, types.Voter{Stash: stash, Score: score})
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to iterate voters")
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	return all, nil
}

// Regenerate rebuilds the list from ids and returns the number inserted.
func (l *List) Regenerate(ids []thor.Address, scoreOf func(thor.Address) (uint64, error)) (uint32, error) {
	if _, err := l.nodes.Clear(); err != nil {
		return 0, errors.Wrap(err, "failed to clear voters")
	}
	if err := l.counter.Set(0); err != nil {
		return 0, err
	}
	var n uint32
	for _, id := range ids {
		score, err := scoreOf(id)
		if err != nil {
			return n, err
		}
		if err := l.Insert(id, score); err != nil {
			return n, errors.Wrapf(err, "failed to insert %v", id)
		}
		n++
	}
	return n, nil
}

// SanityCheck verifies the counter matches the stored nodes.
func (l *List) SanityCheck() error {
	stored, err := l.nodes.Count()
	if err != nil {
		return err
	}
	counted, err := l.Count()
	if err != nil {
		return err
	}
	if stored != counted {
		return errors.Errorf("voter list counter is %d but %d nodes are stored", counted, stored)
	}
	return nil
}
