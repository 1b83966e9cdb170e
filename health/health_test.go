// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_NewSession(t *testing.T) {
	h := New(time.Second)

	status := h.Status()
	assert.False(t, status.Healthy)
	assert.Nil(t, status.LastRotation)

	h.NewSession(7)
	status = h.Status()
	assert.False(t, status.Healthy, "not driving")
	require.NotNil(t, status.LastRotation)
	assert.Equal(t, uint32(7), *status.LastRotation.Session)

	h.DrivingStatus(true)
	assert.True(t, h.Status().Healthy)

	h.DrivingStatus(false)
	assert.False(t, h.Status().Healthy)
}

func TestHealth_Stale(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	h := New(10 * time.Second)
	h.clockNowFn = func() time.Time { return now }

	h.DrivingStatus(true)
	h.NewSession(1)
	assert.True(t, h.Status().Healthy)

	now = now.Add(10 * time.Second)
	assert.True(t, h.Status().Healthy)

	now = now.Add(time.Millisecond)
	status := h.Status()
	assert.False(t, status.Healthy)
	assert.Equal(t, time.Unix(1_700_000_000, 0), *status.LastRotation.Timestamp)
}
