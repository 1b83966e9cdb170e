// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package globals keeps the era bookkeeping and the governance parameters of staking.
package globals

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/staking/types"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Staking"

type Service struct {
	currentEra     *storage.Value[uint32]
	activeEra      *storage.Value[types.ActiveEraInfo]
	startSessions  *storage.Map[uint32, uint32]
	forceEra       *storage.Value[types.Forcing]
	validatorCount *storage.Value[uint32]
	minCommission  *storage.Value[thor.Perbill]
	version        *storage.Value[types.Release]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		currentEra:     storage.NewValue[uint32](sctx, module, "CurrentEra"),
		activeEra:      storage.NewValue[types.ActiveEraInfo](sctx, module, "ActiveEra"),
		startSessions:  storage.NewMap[uint32, uint32](sctx, module, "ErasStartSessionIndex", storage.Uint32Key),
		forceEra:       storage.NewValue[types.Forcing](sctx, module, "ForceEra"),
		validatorCount: storage.NewValue[uint32](sctx, module, "ValidatorCount"),
		minCommission:  storage.NewValue[thor.Perbill](sctx, module, "MinValidatorCommission"),
		version:        storage.NewValue[types.Release](sctx, module, "StorageVersion"),
	}
}

// CurrentEra returns the latest planned era. ok is false before genesis.
func (s *Service) CurrentEra() (era uint32, ok bool, err error) {
	era, ok, err = s.currentEra.Get()
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get current era")
	}
	return era, ok, nil
}

func (s *Service) SetCurrentEra(era uint32) error {
	return s.currentEra.Set(era)
}

// ActiveEra returns nil before genesis.
func (s *Service) ActiveEra() (*types.ActiveEraInfo, error) {
	info, ok, err := s.activeEra.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active era")
	}
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (s *Service) SetActiveEra(info types.ActiveEraInfo) error {
	return s.activeEra.Set(info)
}

// EraStartSession returns the first session index of era.
func (s *Service) EraStartSession(era uint32) (uint32, bool, error) {
	index, ok, err := s.startSessions.Get(era)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get era start session")
	}
	return index, ok, nil
}

func (s *Service) SetEraStartSession(era, session uint32) error {
	return s.startSessions.Set(era, session)
}

func (s *Service) RemoveEraStartSession(era uint32) {
	s.startSessions.Remove(era)
}

func (s *Service) ForceEra() (types.Forcing, error) {
	return s.forceEra.GetOrDefault(types.NotForcing)
}

func (s *Service) SetForceEra(f types.Forcing) error {
	return s.forceEra.Set(f)
}

// ValidatorCount is the number of seats the next election fills.
func (s *Service) ValidatorCount() (uint32, error) {
	return s.validatorCount.GetOrDefault(0)
}

func (s *Service) SetValidatorCount(n uint32) error {
	return s.validatorCount.Set(n)
}

// MinValidatorCommission is the lowest commission accepted by validate.
func (s *Service) MinValidatorCommission() (thor.Perbill, error) {
	return s.minCommission.GetOrDefault(0)
}

func (s *Service) SetMinValidatorCommission(p thor.Perbill) error {
	return s.minCommission.Set(p)
}

// Version returns the stored layout version, V1_0_0 when never written.
func (s *Service) Version() (types.Release, error) {
	v, err := s.version.GetOrDefault(types.V1_0_0)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get storage version")
	}
	return v, nil
}

func (s *Service) SetVersion(v types.Release) error {
	return s.version.Set(v)
}
