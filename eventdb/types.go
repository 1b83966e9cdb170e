// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/thor"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	session INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	era INTEGER NOT NULL,
	kind TEXT NOT NULL,
	stash BLOB(32) NOT NULL,
	other BLOB(32),
	amount TEXT NOT NULL,
	cmixId BLOB(32),
	PRIMARY KEY (session, eventIndex)
);
CREATE INDEX IF NOT EXISTS eventStash ON event(stash);
CREATE INDEX IF NOT EXISTS eventKind ON event(kind);
CREATE INDEX IF NOT EXISTS eventEra ON event(era);`

// Event is a staking event archived with the session it was emitted in.
type Event struct {
	Session uint32
	Index   uint32
	Era     uint32
	Kind    staking.EventKind
	Stash   thor.Address
	Other   *thor.Address
	Amount  thor.Balance
	CmixID  *thor.Bytes32
}

// NewEvent wraps the index-th event emitted during session.
func NewEvent(session, index uint32, ev staking.Event) *Event {
	return &Event{
		Session: session,
		Index:   index,
		Era:     ev.Era,
		Kind:    ev.Kind,
		Stash:   ev.Stash,
		Other:   ev.Other,
		Amount:  ev.Amount,
		CmixID:  ev.CmixID,
	}
}

// NewEvents wraps all events of a session in emission order.
func NewEvents(session uint32, evs []staking.Event) []*Event {
	events := make([]*Event, 0, len(evs))
	for i, ev := range evs {
		events = append(events, NewEvent(session, uint32(i), ev))
	}
	return events
}

type RangeType string

const (
	Era     RangeType = "Era"
	Session RangeType = "Session"
)

type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Range is inclusive. A To below From leaves the range open ended.
type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events. Empty fields match everything.
type Filter struct {
	Stash   *thor.Address       `json:"stash"`
	Kinds   []staking.EventKind `json:"kinds"`
	Order   OrderType           `json:"order"` // default asc
	Range   *Range              `json:"range"`
	Options *Options            `json:"options"`
}
