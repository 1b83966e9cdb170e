// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/rodaine/table"

	"github.com/xxnetwork/staking/builtin/staking/migrations"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/builtin/weight"
	"github.com/xxnetwork/staking/kv"
	"github.com/xxnetwork/staking/state"
)

// migrate upgrades the stored staking layout to the latest release. In dry
// run mode nothing is committed.
func migrate(db kv.Store, dryRun bool) (*migrations.Report, error) {
	runner, err := migrations.NewRunner(migrations.All()...)
	if err != nil {
		return nil, err
	}

	st := state.New(stateBucket.NewStore(db))
	env := &migrations.Env{
		Ctx:      storage.NewContext(st, weight.NewMeter(weight.RocksDbWeight)),
		DB:       weight.RocksDbWeight,
		MaxBlock: weight.MaxBlock,
	}
	report, err := runner.Run(env, dryRun)
	if err != nil {
		return report, err
	}
	if dryRun {
		return report, nil
	}
	return report, st.Stage().Commit()
}

func printReport(w io.Writer, report *migrations.Report) {
	tb := table.New("Migration", "From", "To", "Applied", "Weight").WithWriter(w)
	for _, step := range report.Steps {
		tb.AddRow(step.Name, step.From, step.To, step.Applied, humanize.Comma(int64(min(step.Weight, math.MaxInt64))))
	}
	tb.Print()
	fmt.Fprintf(w, "Total weight %v\n", humanize.Comma(int64(min(report.Total, math.MaxInt64))))
}
