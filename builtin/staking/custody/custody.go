// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody classifies accounts whose stake elects validators but is
// neither rewarded nor slashed.
package custody

import (
	"sort"

	"github.com/xxnetwork/staking/thor"
)

// Handler tells whether an account is a custody account.
type Handler interface {
	IsCustodyAccount(who thor.Address) bool
}

// None has no custody accounts.
type None struct{}

func (None) IsCustodyAccount(thor.Address) bool { return false }

// Static is a fixed set of custody accounts.
type Static struct {
	accounts map[thor.Address]struct{}
}

func NewStatic(accounts ...thor.Address) *Static {
	s := &Static{accounts: make(map[thor.Address]struct{}, len(accounts))}
	for _, a := range accounts {
		s.accounts[a] = struct{}{}
	}
	return s
}

func (s *Static) IsCustodyAccount(who thor.Address) bool {
	_, ok := s.accounts[who]
	return ok
}

// Accounts returns the set in ascending order.
func (s *Static) Accounts() []thor.Address {
	out := make([]thor.Address, 0, len(s.accounts))
	for a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}
