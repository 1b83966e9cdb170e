// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package election picks the validator set of an era from a stake snapshot.
package election

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/log"
	"github.com/xxnetwork/staking/thor"
)

const module = "ElectionProvider"

var logger = log.WithContext("pkg", "election")

var ErrNoCandidates = errors.New("no candidates to elect")

// Voter is one stash with the candidates it backs. Validators vote for
// themselves.
type Voter struct {
	Who     thor.Address
	Stake   thor.Balance
	Targets []thor.Address
}

// Snapshot is the input of an election.
type Snapshot struct {
	Targets []thor.Address
	Voters  []Voter
	Desired uint32
}

// Backing is the stake one voter puts behind a winner.
type Backing struct {
	Who   thor.Address
	Stake thor.Balance
}

// Winner is an elected candidate and its backing.
type Winner struct {
	Who     thor.Address
	Total   thor.Balance
	Backers []Backing
}

// Provider runs elections.
type Provider interface {
	Elect(snapshot *Snapshot) ([]Winner, error)
	// Ongoing reports whether an election has been requested and not yet
	// concluded.
	Ongoing() (bool, error)
}

// Signaler is implemented by providers that want to know one session ahead
// that an election is coming.
type Signaler interface {
	Signal() error
}

// Approval elects the candidates with the most approval stake. Every voter
// splits its stake evenly, first over its valid targets to rank candidates,
// then over its elected targets to back winners.
//
// The pending-election flag lives in state, so it is reverted with the call
// that raised it and seen by every instance over the same state.
type Approval struct {
	ongoing *storage.Value[bool]
}

func NewApproval(sctx *storage.Context) *Approval {
	return &Approval{ongoing: storage.NewValue[bool](sctx, module, "Ongoing")}
}

func (a *Approval) Ongoing() (bool, error) {
	return a.ongoing.GetOrDefault(false)
}

func (a *Approval) Signal() error {
	return a.ongoing.Set(true)
}

func (a *Approval) Elect(snapshot *Snapshot) ([]Winner, error) {
	a.ongoing.Kill()

	approvals := make(map[thor.Address]thor.Balance, len(snapshot.Targets))
	for _, t := range snapshot.Targets {
		approvals[t] = thor.Balance{}
	}
	if len(approvals) == 0 || snapshot.Desired == 0 {
		return nil, ErrNoCandidates
	}

	for _, v := range snapshot.Voters {
		valid := filter(v.Targets, func(t thor.Address) bool {
			_, ok := approvals[t]
			return ok
		})
		for i, share := range evenSplit(v.Stake, len(valid)) {
			approvals[valid[i]] = approvals[valid[i]].Add(share)
		}
	}

	ranked := make([]thor.Address, 0, len(approvals))
	for t := range approvals {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if c := approvals[ranked[i]].Cmp(approvals[ranked[j]]); c != 0 {
			return c > 0
		}
		return ranked[i].Compare(ranked[j]) < 0
	})
	if len(ranked) > int(snapshot.Desired) {
		ranked = ranked[:snapshot.Desired]
	}

	winners := make([]Winner, len(ranked))
	index := make(map[thor.Address]int, len(ranked))
	for i, t := range ranked {
		winners[i].Who = t
		index[t] = i
	}
	for _, v := range snapshot.Voters {
		elected := filter(v.Targets, func(t thor.Address) bool {
			_, ok := index[t]
			return ok
		})
		for i, share := range evenSplit(v.Stake, len(elected)) {
			w := &winners[index[elected[i]]]
			w.Total = w.Total.Add(share)
			w.Backers = append(w.Backers, Backing{Who: v.Who, Stake: share})
		}
	}

	logger.Debug("election concluded", "candidates", len(snapshot.Targets), "voters", len(snapshot.Voters), "elected", len(winners))
	return winners, nil
}

func filter(targets []thor.Address, keep func(thor.Address) bool) []thor.Address {
	out := make([]thor.Address, 0, len(targets))
	seen := make(map[thor.Address]struct{}, len(targets))
	for _, t := range targets {
		if _, dup := seen[t]; dup || !keep(t) {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// evenSplit divides stake into n parts. The remainder goes to the first part.
func evenSplit(stake thor.Balance, n int) []thor.Balance {
	if n == 0 {
		return nil
	}
	parts := make([]thor.Balance, n)
	share := stake.DivUint64(uint64(n))
	for i := range parts {
		parts[i] = share
	}
	parts[0] = parts[0].Add(stake.Sub(share.MulUint64(uint64(n))))
	return parts
}
