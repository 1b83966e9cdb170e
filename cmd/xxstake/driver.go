// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/eventdb"
	"github.com/xxnetwork/staking/genesis"
	"github.com/xxnetwork/staking/health"
	"github.com/xxnetwork/staking/kv"
	"github.com/xxnetwork/staking/metrics"
	"github.com/xxnetwork/staking/state"
)

var (
	metricSession  = metrics.LazyLoadGauge("driver_session")
	metricPayouts  = metrics.LazyLoadCounterVec("driver_payout_count", []string{"result"})
	metricDuration = metrics.LazyLoadHistogram("driver_session_duration_ms", []int64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// lastSession is the index of the latest rotated session. Genesis is session 0.
func lastSession(sctx *storage.Context) *storage.Value[uint32] {
	return storage.NewValue[uint32](sctx, "Driver", "LastSession")
}

// driver plays the session manager of a network: blocks are authored
// round-robin by the validators of the active era, sessions rotate on a
// fixed schedule and every finished era is paid out.
type driver struct {
	gene    *genesis.Genesis
	st      *state.State
	eventDB *eventdb.EventDB
	blocks  uint32
	health  *health.Health
}

func newDriver(gene *genesis.Genesis, store kv.Store, eventDB *eventdb.EventDB, blocksPerSession uint32, h *health.Health) *driver {
	return &driver{
		gene:    gene,
		st:      state.New(store),
		eventDB: eventDB,
		blocks:  blocksPerSession,
		health:  h,
	}
}

// next returns the index of the session to rotate to.
func (d *driver) next() (uint32, error) {
	last, err := lastSession(storage.NewContext(d.st, nil)).GetOrDefault(0)
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// step ends the running session and starts session index. The state is
// committed once the events of the session are archived.
func (d *driver) step(index uint32) error {
	started := time.Now()
	sctx := storage.NewContext(d.st, nil)
	s, _ := d.gene.NewStaking(sctx)

	active, err := s.ActiveEra()
	if err != nil {
		return err
	}
	if active == nil {
		return errors.New("no active era")
	}
	authors, err := s.ElectedValidators(active.Index)
	if err != nil {
		return err
	}
	if len(authors) > 0 {
		for b := range d.blocks {
			author := authors[(index+b)%uint32(len(authors))]
			if err := s.NoteAuthor(author); err != nil {
				return errors.WithMessagef(err, "note author %v", author)
			}
		}
	}

	now := d.gene.LaunchTime() + uint64(index)*d.gene.SessionMillis()
	if err := s.RotateSession(index, now); err != nil {
		return errors.WithMessagef(err, "rotate session %d", index)
	}

	rotated, err := s.ActiveEra()
	if err != nil {
		return err
	}
	if rotated != nil && rotated.Index != active.Index {
		for _, v := range authors {
			result := "ok"
			if err := s.PayoutStakers(v, active.Index); err != nil {
				logger.Warn("payout failed", "era", active.Index, "validator", v, "err", err)
				result = "error"
			}
			metricPayouts().AddWithLabel(1, map[string]string{"result": result})
		}
	}

	if err := lastSession(sctx).Set(index); err != nil {
		return err
	}

	events := s.TakeEvents()
	if d.eventDB != nil {
		// a session replayed after a crash replaces what was archived before
		if err := d.eventDB.Insert(eventdb.NewEvents(index, events), []uint32{index}); err != nil {
			return errors.WithMessage(err, "archive events")
		}
	}
	if err := d.st.Stage().Commit(); err != nil {
		return err
	}

	if d.health != nil {
		d.health.NewSession(index)
	}
	metricSession().Set(int64(index))
	metricDuration().Observe(time.Since(started).Milliseconds())
	logger.Debug("session rotated", "session", index, "events", len(events))
	return nil
}

// run drives count sessions, or until ctx is done when count is 0.
func (d *driver) run(ctx context.Context, count uint32, interval time.Duration) error {
	if d.health != nil {
		d.health.DrivingStatus(true)
		defer d.health.DrivingStatus(false)
	}

	var bar *pb.ProgressBar
	if count > 0 {
		bar = pb.New64(int64(count)).
			SetMaxWidth(90).
			Start()
		defer func() { bar.NotPrint = true }()
	}

	for n := uint32(0); count == 0 || n < count; n++ {
		index, err := d.next()
		if err != nil {
			return err
		}
		if err := d.step(index); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return nil
}
