// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package migrations

import (
	"time"

	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/weight"
)

// All returns every known migration in order.
func All() []*Migration {
	return []*Migration{V6(), V7(), V7_5(), V8()}
}

// Step is the outcome of one migration.
type Step struct {
	Name    string
	From    types.Release
	To      types.Release
	Applied bool
	Weight  weight.Weight
}

// Report is the outcome of a run.
type Report struct {
	Steps []Step
	Total weight.Weight
}

// Runner applies an ordered list of migrations.
type Runner struct {
	migrations []*Migration
}

// NewRunner rejects lists that do not upgrade one release at a time.
func NewRunner(migrations ...*Migration) (*Runner, error) {
	for i, m := range migrations {
		if m.To <= m.From {
			return nil, errors.Errorf("%s: does not move forward (%v -> %v)", m.Name, m.From, m.To)
		}
		if i > 0 && migrations[i-1].To != m.From {
			return nil, errors.Errorf("%s: expects %v, previous migration leaves %v", m.Name, m.From, migrations[i-1].To)
		}
	}
	return &Runner{migrations: migrations}, nil
}

// Run applies every migration in order. In dry run mode the pre and post
// checks of each applicable step are evaluated and any failure aborts.
func (r *Runner) Run(env *Env, dryRun bool) (*Report, error) {
	report := &Report{}
	for _, m := range r.migrations {
		applies, err := m.Applies(env)
		if err != nil {
			return report, err
		}
		if dryRun && applies {
			if err := m.PreMigrate(env); err != nil {
				return report, errors.WithMessage(err, "pre migrate")
			}
		}

		started := time.Now()
		w, err := m.Migrate(env)
		if err != nil {
			return report, err
		}
		metricDuration().Observe(time.Since(started).Milliseconds())
		metricWeight().AddWithLabel(int64(min(w, weight.Weight(1<<62))), map[string]string{"name": m.Name})

		if dryRun && applies {
			if err := m.PostMigrate(env); err != nil {
				return report, errors.WithMessage(err, "post migrate")
			}
		}
		report.Steps = append(report.Steps, Step{Name: m.Name, From: m.From, To: m.To, Applied: applies, Weight: w})
		report.Total = report.Total.Add(w)
	}
	return report, nil
}
