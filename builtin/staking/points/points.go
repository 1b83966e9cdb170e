// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package points

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

// Service keeps the reward points of each era.
type Service struct {
	eras *storage.Map[uint32, types.EraRewardPoints]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		eras: storage.NewMap[uint32, types.EraRewardPoints](sctx, module, "ErasRewardPoints", storage.Uint32Key),
	}
}

// Get returns the points of era, empty when nothing was credited.
func (s *Service) Get(era uint32) (*types.EraRewardPoints, error) {
	p, _, err := s.eras.Get(era)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get era reward points")
	}
	return &p, nil
}

// RewardByIDs credits every (validator, points) pair in order.
func (s *Service) RewardByIDs(era uint32, credits []types.IndividualPoints) error {
	p, err := s.Get(era)
	if err != nil {
		return err
	}
	for _, c := range credits {
		p.Reward(c.Who, c.Points)
	}
	return s.put(era, p)
}

// DeductByIDs removes points from every pair, flooring at one.
func (s *Service) DeductByIDs(era uint32, debits []types.IndividualPoints) error {
	p, err := s.Get(era)
	if err != nil {
		return err
	}
	for _, d := range debits {
		p.Deduct(d.Who, d.Points)
	}
	return s.put(era, p)
}

func (s *Service) put(era uint32, p *types.EraRewardPoints) error {
	if err := s.eras.Set(era, *p); err != nil {
		return errors.Wrap(err, "failed to set era reward points")
	}
	return nil
}

// Remove forgets the points of era.
func (s *Service) Remove(era uint32) {
	s.eras.Remove(era)
}

// Share returns the part of payout earned by who in p.
func Share(p *types.EraRewardPoints, who thor.Address, payout thor.Balance) thor.Balance {
	own := p.Get(who)
	if own == 0 || p.Total == 0 {
		return thor.Balance{}
	}
	return thor.PerbillFromRational(thor.NewBalance(uint64(own)), thor.NewBalance(uint64(p.Total))).MulBalance(payout)
}
