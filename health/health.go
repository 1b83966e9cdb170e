// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

type SessionRotation struct {
	Session   *uint32    `json:"session"`
	Timestamp *time.Time `json:"timestamp"`
}

type Status struct {
	Healthy      bool             `json:"healthy"`
	LastRotation *SessionRotation `json:"lastRotation"`
	Driving      bool             `json:"driving"`
}

// Health tracks the session driver. It is healthy while the driver runs and
// the last rotation is no older than the allowed delay.
type Health struct {
	lock       sync.RWMutex
	maxDelay   time.Duration
	rotatedAt  time.Time
	session    *uint32
	driving    bool
	clockNowFn func() time.Time
}

func New(maxDelay time.Duration) *Health {
	return &Health{
		maxDelay:   maxDelay,
		clockNowFn: time.Now,
	}
}

func (h *Health) NewSession(index uint32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.rotatedAt = h.clockNowFn()
	h.session = &index
}

func (h *Health) DrivingStatus(driving bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.driving = driving
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	status := &Status{Driving: h.driving}
	if h.session == nil {
		return status
	}

	session := *h.session
	rotatedAt := h.rotatedAt
	status.LastRotation = &SessionRotation{Session: &session, Timestamp: &rotatedAt}
	status.Healthy = h.driving && h.clockNowFn().Sub(rotatedAt) <= h.maxDelay
	return status
}
