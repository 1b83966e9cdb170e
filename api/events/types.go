// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/eventdb"
	"github.com/xxnetwork/staking/thor"
)

// Filter is the body of POST /events.
type Filter struct {
	Stash   *thor.Address       `json:"stash"`
	Kinds   []staking.EventKind `json:"kinds"`
	Range   *eventdb.Range      `json:"range"`
	Options *eventdb.Options    `json:"options"`
	Order   eventdb.OrderType   `json:"order"`
}

// FilteredEvent is an archived event.
type FilteredEvent struct {
	Kind    staking.EventKind `json:"kind"`
	Era     uint32            `json:"era"`
	Session uint32            `json:"session"`
	Index   uint32            `json:"index"`
	Stash   thor.Address      `json:"stash"`
	Other   *thor.Address     `json:"other,omitempty"`
	Amount  thor.Balance      `json:"amount"`
	CmixID  *thor.Bytes32     `json:"cmixId,omitempty"`
}

func convertEvent(e *eventdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Kind:    e.Kind,
		Era:     e.Era,
		Session: e.Session,
		Index:   e.Index,
		Stash:   e.Stash,
		Other:   e.Other,
		Amount:  e.Amount,
		CmixID:  e.CmixID,
	}
}
