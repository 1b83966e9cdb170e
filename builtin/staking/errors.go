// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/xxnetwork/staking/builtin/reverts"

var (
	ErrNotController      = reverts.New("NotController")
	ErrNotStash           = reverts.New("NotStash")
	ErrAlreadyBonded      = reverts.New("AlreadyBonded")
	ErrAlreadyPaired      = reverts.New("AlreadyPaired")
	ErrEmptyTargets       = reverts.New("EmptyTargets")
	ErrTooManyTargets     = reverts.New("TooManyTargets")
	ErrBadTarget          = reverts.New("BadTarget")
	ErrInsufficientBond   = reverts.New("InsufficientBond")
	ErrNoMoreChunks       = reverts.New("NoMoreChunks")
	ErrNoUnlockChunk      = reverts.New("NoUnlockChunk")
	ErrInvalidEraToReward = reverts.New("InvalidEraToReward")
	ErrAlreadyClaimed     = reverts.New("AlreadyClaimed")
	ErrNotSortedAndUnique = reverts.New("NotSortedAndUnique")
	ErrInvalidSlashIndex  = reverts.New("InvalidSlashIndex")

	// cmix identity
	ErrValidatorMustHaveCmixID  = reverts.New("ValidatorMustHaveCmixId")
	ErrStashAlreadyHasCmixID    = reverts.New("StashAlreadyHasCmixId")
	ErrStashNoCmixID            = reverts.New("StashNoCmixId")
	ErrValidatorCmixIDNotUnique = reverts.New("ValidatorCmixIdNotUnique")

	// election safety
	ErrElectionOngoing       = reverts.New("ElectionOngoing")
	ErrStashActiveValidator  = reverts.New("StashActiveValidator")
	ErrStashElectedValidator = reverts.New("StashElectedValidator")
	ErrStashValidating       = reverts.New("StashValidating")

	ErrValidatorCommissionTooLow = reverts.New("ValidatorCommissionTooLow")
)
