// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rodaine/table"

	"github.com/xxnetwork/staking/builtin/staking"
	"github.com/xxnetwork/staking/thor"
)

func formatBalance(b thor.Balance) string {
	return humanize.BigComma(b.Big())
}

// printStaking writes the era summary, the validators, the nominators and
// the exposures of era to w. A nil era means the active era.
func printStaking(w io.Writer, s *staking.Staking, era *uint32) error {
	active, err := s.ActiveEra()
	if err != nil {
		return err
	}
	if active == nil {
		return errors.New("no active era")
	}
	if era == nil {
		era = &active.Index
	}
	current, _, err := s.CurrentEra()
	if err != nil {
		return err
	}
	forcing, err := s.ForceEra()
	if err != nil {
		return err
	}
	version, err := s.Version()
	if err != nil {
		return err
	}
	floor, err := s.MinValidatorCommission()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Active era %v, current era %v, %v, release %v, commission floor %v\n\n",
		active.Index, current, forcing, version, floor)

	elected, err := s.ElectedValidators(*era)
	if err != nil {
		return err
	}
	points, err := s.EraPoints(*era)
	if err != nil {
		return err
	}

	validators, err := s.Validators()
	if err != nil {
		return err
	}
	tb := table.New("Stash", "Controller", "Active", "Commission", "Blocked", "Elected", "Points").WithWriter(w)
	for _, stash := range validators {
		info, err := s.Stash(stash)
		if err != nil {
			return err
		}
		if info == nil || info.Validator == nil {
			continue
		}
		tb.AddRow(
			stash,
			info.Controller,
			formatBalance(info.Ledger.Active),
			info.Validator.Commission,
			info.Validator.Blocked,
			slices.Contains(elected, stash),
			points.Get(stash),
		)
	}
	tb.Print()
	fmt.Fprintln(w)

	voters, err := s.VoterList()
	if err != nil {
		return err
	}
	tb = table.New("Nominator", "Active", "Unlocking", "Targets").WithWriter(w)
	for _, v := range voters {
		info, err := s.Stash(v.Stash)
		if err != nil {
			return err
		}
		if info == nil || info.Nominations == nil {
			continue
		}
		tb.AddRow(
			v.Stash,
			formatBalance(info.Ledger.Active),
			len(info.Ledger.Unlocking),
			len(info.Nominations.Targets),
		)
	}
	tb.Print()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Era %v, %v points in total\n", *era, humanize.Comma(int64(points.Total)))
	tb = table.New("Validator", "Total", "Own", "Custody", "Nominators").WithWriter(w)
	for _, v := range elected {
		e, err := s.Exposure(*era, v)
		if err != nil {
			return err
		}
		if e == nil {
			continue
		}
		tb.AddRow(v, formatBalance(e.Total), formatBalance(e.Own), formatBalance(e.Custody), len(e.Others))
	}
	tb.Print()

	if *era > 0 {
		if reward, ok, err := s.ValidatorReward(*era - 1); err != nil {
			return err
		} else if ok {
			fmt.Fprintf(w, "\nEra %v paid %v to validators\n", *era-1, formatBalance(reward))
		}
	}
	return nil
}
