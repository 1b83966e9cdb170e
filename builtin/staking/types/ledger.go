// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"sort"

	"github.com/xxnetwork/staking/thor"
)

// UnlockChunk is an amount that becomes withdrawable at the start of Era.
type UnlockChunk struct {
	Value thor.Balance
	Era   uint32
}

// StakingLedger is the bonding record of a stash, stored under its controller.
type StakingLedger struct {
	Stash          thor.Address
	Total          thor.Balance // active plus all unlocking chunks
	Active         thor.Balance
	Unlocking      []UnlockChunk
	ClaimedRewards []uint32
	CmixID         *thor.Bytes32 `rlp:"nil"`
}

// NewLedger creates the ledger of a freshly bonded stash.
func NewLedger(stash thor.Address, value thor.Balance, claimed []uint32, cmixID *thor.Bytes32) *StakingLedger {
	return &StakingLedger{
		Stash:          stash,
		Total:          value,
		Active:         value,
		ClaimedRewards: claimed,
		CmixID:         cmixID,
	}
}

// Bond adds value to both active and total.
func (l *StakingLedger) Bond(value thor.Balance) {
	l.Total = l.Total.Add(value)
	l.Active = l.Active.Add(value)
}

// Unbond moves up to value from active into a chunk unlocking at era.
// When the remaining active would fall below minimum, the whole active
// balance is unbonded. It returns the amount moved.
func (l *StakingLedger) Unbond(value thor.Balance, era uint32, minimum thor.Balance) thor.Balance {
	value = value.Min(l.Active)
	l.Active = l.Active.Sub(value)
	if l.Active.Lt(minimum) {
		value = value.Add(l.Active)
		l.Active = thor.Balance{}
	}
	if value.IsZero() {
		return value
	}
	for i := range l.Unlocking {
		if l.Unlocking[i].Era == era {
			l.Unlocking[i].Value = l.Unlocking[i].Value.Add(value)
			return value
		}
	}
	l.Unlocking = append(l.Unlocking, UnlockChunk{Value: value, Era: era})
	return value
}

// ConsolidateUnlocked drops the chunks unlocked at or before currentEra and
// returns the amount released from total.
func (l *StakingLedger) ConsolidateUnlocked(currentEra uint32) thor.Balance {
	var released thor.Balance
	kept := l.Unlocking[:0]
	for _, chunk := range l.Unlocking {
		if chunk.Era > currentEra {
			kept = append(kept, chunk)
		} else {
			released = released.Add(chunk.Value)
		}
	}
	l.Unlocking = kept
	l.Total = l.Total.Sub(released)
	return released
}

// Rebond moves up to value back into active, taking the latest chunks first.
func (l *StakingLedger) Rebond(value thor.Balance) thor.Balance {
	var rebonded thor.Balance
	for len(l.Unlocking) > 0 {
		last := &l.Unlocking[len(l.Unlocking)-1]
		want := value.Sub(rebonded)
		if want.IsZero() {
			break
		}
		if !last.Value.Gt(want) {
			rebonded = rebonded.Add(last.Value)
			l.Unlocking = l.Unlocking[:len(l.Unlocking)-1]
			continue
		}
		last.Value = last.Value.Sub(want)
		rebonded = rebonded.Add(want)
	}
	l.Active = l.Active.Add(rebonded)
	return rebonded
}

// Slash removes up to value from active and then from the unlocking chunks,
// in order. Leftovers below minimum are slashed too. It returns the amount
// removed from total.
func (l *StakingLedger) Slash(value, minimum thor.Balance) thor.Balance {
	remaining := value

	take := func(target *thor.Balance) {
		if remaining.IsZero() {
			return
		}
		cut := remaining.Min(*target)
		*target = target.Sub(cut)
		remaining = remaining.Sub(cut)
		if target.Lt(minimum) {
			// dust is slashed as well
			cut = *target
			*target = thor.Balance{}
			remaining = remaining.Sub(cut)
		}
	}

	before := l.Total
	take(&l.Active)
	kept := l.Unlocking[:0]
	for i := range l.Unlocking {
		take(&l.Unlocking[i].Value)
		if !l.Unlocking[i].Value.IsZero() {
			kept = append(kept, l.Unlocking[i])
		}
	}
	l.Unlocking = kept

	total := l.Active
	for _, chunk := range l.Unlocking {
		total = total.Add(chunk.Value)
	}
	l.Total = total
	return before.Sub(total)
}

// HasClaimed returns whether era has already been paid out.
func (l *StakingLedger) HasClaimed(era uint32) bool {
	i := sort.Search(len(l.ClaimedRewards), func(i int) bool { return l.ClaimedRewards[i] >= era })
	return i < len(l.ClaimedRewards) && l.ClaimedRewards[i] == era
}

// Claim records era as paid out and forgets eras older than oldest.
// It returns false when era was already claimed.
func (l *StakingLedger) Claim(era, oldest uint32) bool {
	if l.HasClaimed(era) {
		return false
	}
	kept := l.ClaimedRewards[:0]
	for _, e := range l.ClaimedRewards {
		if e >= oldest {
			kept = append(kept, e)
		}
	}
	i := sort.Search(len(kept), func(i int) bool { return kept[i] > era })
	kept = append(kept, 0)
	copy(kept[i+1:], kept[i:])
	kept[i] = era
	l.ClaimedRewards = kept
	return true
}
