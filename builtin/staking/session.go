// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/election"
	"github.com/xxnetwork/staking/builtin/staking/exposure"
	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/thor"
)

// InitGenesis writes the on-chain parameters of a fresh chain.
func (s *Staking) InitGenesis() error {
	if err := s.globals.SetVersion(types.LatestRelease); err != nil {
		return err
	}
	if err := s.globals.SetValidatorCount(s.config.ValidatorCount); err != nil {
		return err
	}
	return s.globals.SetMinValidatorCommission(s.config.MinValidatorCommission)
}

// Genesis elects the validators of era 0 and starts it at now (unix millis).
// Stakers must be bonded before.
func (s *Staking) Genesis(now uint64) error {
	logger.Debug("starting genesis era")

	err := s.atomic("genesis", func() error {
		planned, err := s.planEra(0, 0)
		if err != nil {
			return err
		}
		if !planned {
			return errors.New("genesis election failed")
		}
		if err := s.globals.SetActiveEra(types.ActiveEraInfo{Index: 0, Start: &now}); err != nil {
			return err
		}
		metricActiveEra().Set(0)
		return nil
	})
	if err != nil {
		logger.Error("genesis failed", "error", err)
		return err
	}

	logger.Info("genesis era started")
	return nil
}

// RotateSession ends session index-1, starts session index and plans
// session index+1. now is the unix time in millis.
func (s *Staking) RotateSession(index uint32, now uint64) error {
	logger.Debug("rotating session", "session", index)

	err := s.atomic("rotate_session", func() error {
		if index > 0 {
			if err := s.endSession(index-1, now); err != nil {
				return errors.WithMessage(err, "end session")
			}
		}
		if err := s.startSession(index, now); err != nil {
			return errors.WithMessage(err, "start session")
		}
		if err := s.newSession(index + 1); err != nil {
			return errors.WithMessage(err, "new session")
		}
		return nil
	})
	if err != nil {
		logger.Error("session rotation failed", "session", index, "error", err)
		return err
	}
	return nil
}

// newSession decides whether an era starts at session index and plans it.
func (s *Staking) newSession(index uint32) error {
	current, ok, err := s.globals.CurrentEra()
	if err != nil || !ok {
		return err
	}
	force, err := s.globals.ForceEra()
	if err != nil {
		return err
	}

	switch force {
	case types.ForceNone:
		return nil
	case types.ForceNew, types.ForceAlways:
	default:
		start, _, err := s.globals.EraStartSession(current)
		if err != nil {
			return err
		}
		length := index - min(index, start)
		if length+1 == s.config.SessionsPerEra {
			if sig, ok := s.election.(election.Signaler); ok {
				if err := sig.Signal(); err != nil {
					return err
				}
			}
		}
		if length < s.config.SessionsPerEra {
			return nil
		}
	}

	planned, err := s.planEra(current+1, index)
	if err != nil {
		return err
	}
	if planned && force == types.ForceNew {
		return s.globals.SetForceEra(types.NotForcing)
	}
	return nil
}

// planEra elects the validators of era and records their exposures. It
// returns false when the election yields too few validators, in which case
// the current set carries on.
func (s *Staking) planEra(era, session uint32) (bool, error) {
	snapshot, err := s.electionSnapshot()
	if err != nil {
		return false, err
	}
	winners, err := s.election.Elect(snapshot)
	if err != nil {
		logger.Warn("election failed", "era", era, "error", err)
		return false, nil
	}
	if uint32(len(winners)) < max(s.config.MinimumValidatorCount, 1) {
		logger.Warn("too few validators elected", "era", era, "elected", len(winners))
		return false, nil
	}

	var total thor.Balance
	for _, w := range winners {
		backers := make([]types.IndividualExposure, 0, len(w.Backers))
		for _, b := range w.Backers {
			backers = append(backers, types.IndividualExposure{Who: b.Who, Value: b.Stake})
		}
		e := exposure.Build(w.Who, backers, s.isCustody)

		var prefs types.ValidatorPrefs
		if p, err := s.intents.Validator(w.Who); err != nil {
			return false, err
		} else if p != nil {
			prefs = *p
		}
		if err := s.exposures.Store(era, w.Who, e, int(s.config.MaxNominatorRewardedPerValidator), prefs); err != nil {
			return false, err
		}
		total = total.Add(e.Total)
	}
	if err := s.exposures.SetTotalStake(era, total); err != nil {
		return false, err
	}
	if err := s.globals.SetCurrentEra(era); err != nil {
		return false, err
	}
	if err := s.globals.SetEraStartSession(era, session); err != nil {
		return false, err
	}
	if err := s.prune(era); err != nil {
		return false, err
	}

	s.emit(Event{Kind: EventStakersElected, Era: era, Amount: total})
	metricElected().Set(int64(len(winners)))
	logger.Info("new era planned", "era", era, "session", session, "elected", len(winners))
	return true, nil
}

// prune drops the era that fell out of the history window when era was planned.
func (s *Staking) prune(era uint32) error {
	if era <= s.config.HistoryDepth {
		return nil
	}
	old := era - s.config.HistoryDepth - 1
	if err := s.exposures.Clear(old); err != nil {
		return err
	}
	s.points.Remove(old)
	s.globals.RemoveEraStartSession(old)
	return nil
}

// electionSnapshot collects every validator as a self voting target and
// every listed nominator as a voter. Stake is the raw active bond, custody
// included.
func (s *Staking) electionSnapshot() (*election.Snapshot, error) {
	desired, err := s.globals.ValidatorCount()
	if err != nil {
		return nil, err
	}
	snapshot := &election.Snapshot{Desired: desired}

	if err := s.intents.IterateValidators(func(stash thor.Address, _ types.ValidatorPrefs) error {
		_, l, err := s.ledgers.GetByStash(stash)
		if err != nil || l == nil {
			return err
		}
		snapshot.Targets = append(snapshot.Targets, stash)
		snapshot.Voters = append(snapshot.Voters, election.Voter{Who: stash, Stake: l.Active, Targets: []thor.Address{stash}})
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "failed to collect targets")
	}

	nominators, err := s.voters.Voters()
	if err != nil {
		return nil, err
	}
	for _, v := range nominators {
		noms, err := s.intents.Nominations(v.Stash)
		if err != nil {
			return nil, err
		}
		if noms == nil {
			continue
		}
		_, l, err := s.ledgers.GetByStash(v.Stash)
		if err != nil {
			return nil, err
		}
		if l == nil {
			continue
		}
		snapshot.Voters = append(snapshot.Voters, election.Voter{Who: v.Stash, Stake: l.Active, Targets: noms.Targets})
	}
	return snapshot, nil
}

// endSession closes the active era when the next one starts at index+1.
func (s *Staking) endSession(index uint32, now uint64) error {
	active, err := s.globals.ActiveEra()
	if err != nil || active == nil {
		return err
	}
	start, ok, err := s.globals.EraStartSession(active.Index + 1)
	if err != nil || !ok || start != index+1 {
		return err
	}

	var millis uint64
	if active.Start != nil && now > *active.Start {
		millis = now - *active.Start
	}
	staked, err := s.exposures.TotalStake(active.Index)
	if err != nil {
		return err
	}
	issuance, err := s.currency.TotalIssuance()
	if err != nil {
		return err
	}
	validators, remainder := s.payout.EraPayout(staked, issuance, millis)
	if err := s.exposures.SetValidatorReward(active.Index, validators); err != nil {
		return err
	}

	s.emit(Event{Kind: EventEraPaid, Era: active.Index, Amount: validators})
	logger.Info("era paid", "era", active.Index, "validators", validators, "remainder", remainder)
	return nil
}

// startSession activates the planned era when it starts at index and applies
// the slashes deferred to it.
func (s *Staking) startSession(index uint32, now uint64) error {
	active, err := s.globals.ActiveEra()
	if err != nil || active == nil {
		return err
	}
	next := active.Index + 1
	start, ok, err := s.globals.EraStartSession(next)
	if err != nil || !ok || start != index {
		return err
	}
	if err := s.globals.SetActiveEra(types.ActiveEraInfo{Index: next, Start: &now}); err != nil {
		return err
	}

	slashes, err := s.slashes.Take(next)
	if err != nil {
		return err
	}
	for i := range slashes {
		if err := s.applySlash(&slashes[i]); err != nil {
			return err
		}
	}

	metricActiveEra().Set(int64(next))
	logger.Info("era started", "era", next, "session", index, "slashes", len(slashes))
	return nil
}
