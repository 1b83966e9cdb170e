// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	xxstaking "github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

type UnlockChunk struct {
	Value thor.Balance `json:"value"`
	Era   uint32       `json:"era"`
}

type Ledger struct {
	Stash          thor.Address  `json:"stash"`
	Total          thor.Balance  `json:"total"`
	Active         thor.Balance  `json:"active"`
	Unlocking      []UnlockChunk `json:"unlocking"`
	ClaimedRewards []uint32      `json:"claimedRewards"`
	CmixID         *thor.Bytes32 `json:"cmixId"`
}

func convertLedger(l *types.StakingLedger) *Ledger {
	ledger := &Ledger{
		Stash:          l.Stash,
		Total:          l.Total,
		Active:         l.Active,
		Unlocking:      make([]UnlockChunk, 0, len(l.Unlocking)),
		ClaimedRewards: append([]uint32{}, l.ClaimedRewards...),
		CmixID:         l.CmixID,
	}
	for _, c := range l.Unlocking {
		ledger.Unlocking = append(ledger.Unlocking, UnlockChunk{Value: c.Value, Era: c.Era})
	}
	return ledger
}

type ValidatorPrefs struct {
	Commission thor.Perbill `json:"commission"`
	Blocked    bool         `json:"blocked"`
}

type Nominations struct {
	Targets     []thor.Address `json:"targets"`
	SubmittedIn uint32         `json:"submittedIn"`
	Suppressed  bool           `json:"suppressed"`
}

type Stash struct {
	Stash       thor.Address    `json:"stash"`
	Controller  thor.Address    `json:"controller"`
	Ledger      *Ledger         `json:"ledger"`
	Validator   *ValidatorPrefs `json:"validator"`
	Nominations *Nominations    `json:"nominations"`
}

func convertStash(info *xxstaking.StashInfo) *Stash {
	stash := &Stash{
		Stash:      info.Stash,
		Controller: info.Controller,
		Ledger:     convertLedger(info.Ledger),
	}
	if v := info.Validator; v != nil {
		stash.Validator = &ValidatorPrefs{Commission: v.Commission, Blocked: v.Blocked}
	}
	if n := info.Nominations; n != nil {
		stash.Nominations = &Nominations{Targets: n.Targets, SubmittedIn: n.SubmittedIn, Suppressed: n.Suppressed}
	}
	return stash
}

type CmixOwner struct {
	CmixID thor.Bytes32 `json:"cmixId"`
	Stash  thor.Address `json:"stash"`
}

// Eras describes the era pointers and the forcing mode.
type Eras struct {
	Active  *uint32 `json:"active"`
	Start   *uint64 `json:"start"`
	Current *uint32 `json:"current"`
	Forcing string  `json:"forcing"`
}

type IndividualPoints struct {
	Who    thor.Address `json:"who"`
	Points uint32       `json:"points"`
}

type Points struct {
	Era        uint32             `json:"era"`
	Total      uint32             `json:"total"`
	Individual []IndividualPoints `json:"individual"`
}

func convertPoints(era uint32, p *types.EraRewardPoints) *Points {
	points := &Points{
		Era:        era,
		Total:      p.Total,
		Individual: make([]IndividualPoints, 0, len(p.Individual)),
	}
	for _, i := range p.Individual {
		points.Individual = append(points.Individual, IndividualPoints{Who: i.Who, Points: i.Points})
	}
	return points
}

type IndividualExposure struct {
	Who   thor.Address `json:"who"`
	Value thor.Balance `json:"value"`
}

type Exposure struct {
	Era     uint32               `json:"era"`
	Stash   thor.Address         `json:"stash"`
	Total   thor.Balance         `json:"total"`
	Custody thor.Balance         `json:"custody"`
	Own     thor.Balance         `json:"own"`
	Others  []IndividualExposure `json:"others"`
}

func convertExposure(era uint32, stash thor.Address, e *types.Exposure) *Exposure {
	exposure := &Exposure{
		Era:     era,
		Stash:   stash,
		Total:   e.Total,
		Custody: e.Custody,
		Own:     e.Own,
		Others:  make([]IndividualExposure, 0, len(e.Others)),
	}
	for _, o := range e.Others {
		exposure.Others = append(exposure.Others, IndividualExposure{Who: o.Who, Value: o.Value})
	}
	return exposure
}

type Version struct {
	Version    string `json:"version"`
	Latest     string `json:"latest"`
	Validators uint32 `json:"validators"`
	Nominators uint32 `json:"nominators"`
}
