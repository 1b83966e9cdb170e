// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slashing

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

// Service keeps the slashes queued for a future era.
type Service struct {
	unapplied *storage.Map[uint32, []types.UnappliedSlash]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		unapplied: storage.NewMap[uint32, []types.UnappliedSlash](sctx, module, "UnappliedSlashes", storage.Uint32Key),
	}
}

// Unapplied returns the slashes due in era.
func (s *Service) Unapplied(era uint32) ([]types.UnappliedSlash, error) {
	slashes, _, err := s.unapplied.Get(era)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get unapplied slashes")
	}
	return slashes, nil
}

// Queue appends slash to those due in era.
func (s *Service) Queue(era uint32, slash types.UnappliedSlash) error {
	slashes, err := s.Unapplied(era)
	if err != nil {
		return err
	}
	return s.Set(era, append(slashes, slash))
}

// Set replaces the slashes due in era. An empty list removes the entry.
func (s *Service) Set(era uint32, slashes []types.UnappliedSlash) error {
	if len(slashes) == 0 {
		s.unapplied.Remove(era)
		return nil
	}
	if err := s.unapplied.Set(era, slashes); err != nil {
		return errors.Wrap(err, "failed to set unapplied slashes")
	}
	return nil
}

// Take returns and removes the slashes due in era.
func (s *Service) Take(era uint32) ([]types.UnappliedSlash, error) {
	slashes, err := s.Unapplied(era)
	if err != nil {
		return nil, err
	}
	s.unapplied.Remove(era)
	return slashes, nil
}

// Compute scales the exposure of an offender by fraction. The reporters'
// payout is rewardFraction of the slashed amount.
func Compute(
	validator thor.Address,
	e *types.Exposure,
	fraction thor.Perbill,
	reporters []thor.Address,
	rewardFraction thor.Perbill,
) types.UnappliedSlash {
	slash := types.UnappliedSlash{
		Validator: validator,
		Own:       fraction.MulBalance(e.Own),
		Reporters: reporters,
	}
	total := slash.Own
	for _, o := range e.Others {
		value := fraction.MulBalance(o.Value)
		if value.IsZero() {
			continue
		}
		slash.Others = append(slash.Others, types.IndividualExposure{Who: o.Who, Value: value})
		total = total.Add(value)
	}
	if len(reporters) > 0 {
		slash.Payout = rewardFraction.MulBalance(total)
	}
	return slash
}
