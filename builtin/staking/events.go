// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/xxnetwork/staking/thor"
)

type EventKind string

const (
	EventBonded            EventKind = "Bonded"
	EventUnbonded          EventKind = "Unbonded"
	EventWithdrawn         EventKind = "Withdrawn"
	EventRewarded          EventKind = "Rewarded"
	EventSlashed           EventKind = "Slashed"
	EventChilled           EventKind = "Chilled"
	EventCmixIDSet         EventKind = "CmixIdSet"
	EventCmixIDTransferred EventKind = "CmixIdTransferred"
	EventEraPaid           EventKind = "EraPaid"
	EventStakersElected    EventKind = "StakersElected"
	EventPayoutStarted     EventKind = "PayoutStarted"
	EventSlashDeferred     EventKind = "SlashDeferred"
	EventSlashCancelled    EventKind = "SlashCancelled"
)

// Event is emitted by a successful call. Era is the era the event is about:
// the active era for calls, the subject era for era and payout events.
type Event struct {
	Kind   EventKind     `json:"kind"`
	Era    uint32        `json:"era"`
	Stash  thor.Address  `json:"stash"`
	Other  *thor.Address `json:"other,omitempty"`
	Amount thor.Balance  `json:"amount"`
	CmixID *thor.Bytes32 `json:"cmixId,omitempty"`
}

func (s *Staking) emit(ev Event) {
	s.events = append(s.events, ev)
}

// callEvent builds an event dated at the active era.
func (s *Staking) callEvent(kind EventKind, stash thor.Address, amount thor.Balance) Event {
	ev := Event{Kind: kind, Stash: stash, Amount: amount}
	if active, err := s.globals.ActiveEra(); err == nil && active != nil {
		ev.Era = active.Index
	}
	return ev
}

// Events returns the events emitted since the last TakeEvents.
func (s *Staking) Events() []Event {
	return append([]Event(nil), s.events...)
}

// TakeEvents returns and clears the pending events.
func (s *Staking) TakeEvents() []Event {
	events := s.events
	s.events = nil
	return events
}
