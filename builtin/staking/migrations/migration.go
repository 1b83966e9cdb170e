// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package migrations upgrades the stored staking layout release by release.
package migrations

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/globals"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/builtin/weight"
	"github.com/xxnetwork/staking/log"
	"github.com/xxnetwork/staking/metrics"
)

var logger = log.WithContext("pkg", "migrations")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	metricDuration = metrics.LazyLoadHistogram(
		"staking_migration_duration_ms",
		[]int64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	)
	metricWeight = metrics.LazyLoadCounterVec("staking_migration_weight", []string{"name"})
)

// Env is what a migration step runs against.
type Env struct {
	Ctx      *storage.Context
	DB       weight.DbWeight
	MaxBlock weight.Weight
}

// Migration moves the layout from one release to the next.
type Migration struct {
	Name string
	From types.Release
	To   types.Release

	pre  func(env *Env) error
	run  func(env *Env) (weight.Weight, error)
	post func(env *Env) error
}

// Applies reports whether the stored layout is the one m upgrades.
func (m *Migration) Applies(env *Env) (bool, error) {
	v, err := globals.New(env.Ctx).Version()
	if err != nil {
		return false, err
	}
	return v == m.From, nil
}

// PreMigrate checks the state m expects to find.
func (m *Migration) PreMigrate(env *Env) error {
	if ok, err := m.Applies(env); err != nil {
		return err
	} else if !ok {
		return errors.Errorf("%s: must upgrade linearly from %v", m.Name, m.From)
	}
	if m.pre == nil {
		return nil
	}
	return errors.WithMessage(m.pre(env), m.Name)
}

// Migrate transforms the state and advances the stored version. When the
// stored version is not m.From it does nothing and costs one read.
func (m *Migration) Migrate(env *Env) (weight.Weight, error) {
	ok, err := m.Applies(env)
	if err != nil {
		return 0, err
	}
	if !ok {
		logger.Debug("migration skipped", "name", m.Name, "from", m.From)
		return env.DB.Reads(1), nil
	}

	logger.Info("migrating staking", "name", m.Name, "to", m.To)
	w, err := m.run(env)
	if err != nil {
		return 0, errors.WithMessage(err, m.Name)
	}
	if err := globals.New(env.Ctx).SetVersion(m.To); err != nil {
		return 0, err
	}
	logger.Info("completed staking migration", "name", m.Name, "to", m.To, "weight", w)
	return w, nil
}

// PostMigrate checks the state m leaves behind.
func (m *Migration) PostMigrate(env *Env) error {
	if m.post == nil {
		return nil
	}
	return errors.WithMessage(m.post(env), m.Name)
}
