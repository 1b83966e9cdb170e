// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"math"
	"sort"

	"github.com/xxnetwork/staking/thor"
)

// IndividualPoints is the credit of one validator.
type IndividualPoints struct {
	Who    thor.Address
	Points uint32
}

// EraRewardPoints is the block production credit of an era.
// Individual is kept sorted by validator.
type EraRewardPoints struct {
	Total      uint32
	Individual []IndividualPoints
}

func (p *EraRewardPoints) find(who thor.Address) (int, bool) {
	i := sort.Search(len(p.Individual), func(i int) bool {
		return p.Individual[i].Who.Compare(who) >= 0
	})
	return i, i < len(p.Individual) && p.Individual[i].Who == who
}

// Get returns the points of who, zero when never credited.
func (p *EraRewardPoints) Get(who thor.Address) uint32 {
	if i, ok := p.find(who); ok {
		return p.Individual[i].Points
	}
	return 0
}

// Reward credits who. The first credit of an era starts from one point.
func (p *EraRewardPoints) Reward(who thor.Address, points uint32) {
	i, ok := p.find(who)
	if !ok {
		p.Individual = append(p.Individual, IndividualPoints{})
		copy(p.Individual[i+1:], p.Individual[i:])
		p.Individual[i] = IndividualPoints{Who: who, Points: 1}
		p.Total = saturatingAdd(p.Total, 1)
	}
	entry := &p.Individual[i]
	before := entry.Points
	entry.Points = saturatingAdd(entry.Points, points)
	p.Total = saturatingAdd(p.Total, entry.Points-before)
}

// Deduct removes points from who, never going below one.
// Validators without credit are left alone.
func (p *EraRewardPoints) Deduct(who thor.Address, points uint32) {
	i, ok := p.find(who)
	if !ok {
		return
	}
	entry := &p.Individual[i]
	if entry.Points <= 1 {
		return
	}
	cut := min(points, entry.Points-1)
	entry.Points -= cut
	if p.Total < cut {
		p.Total = 0
	} else {
		p.Total -= cut
	}
}

func saturatingAdd(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
