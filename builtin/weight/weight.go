// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weight

import (
	"fmt"
	"math"
)

// Weight is the execution cost of an operation, in picoseconds of reference time.
type Weight uint64

// Add returns w + o, saturating.
func (w Weight) Add(o Weight) Weight {
	if w > math.MaxUint64-o {
		return math.MaxUint64
	}
	return w + o
}

// DbWeight is the cost of a single storage access.
type DbWeight struct {
	Read  Weight
	Write Weight
}

// MaxBlock is the weight limit of one block, two seconds of reference time.
const MaxBlock Weight = 2_000_000_000_000

// RocksDbWeight is the reference cost of the default backend.
var RocksDbWeight = DbWeight{
	Read:  25_000_000,
	Write: 100_000_000,
}

// Reads returns the weight of n reads.
func (d DbWeight) Reads(n uint64) Weight {
	return mul(d.Read, n)
}

// Writes returns the weight of n writes.
func (d DbWeight) Writes(n uint64) Weight {
	return mul(d.Write, n)
}

// ReadsWrites returns the weight of r reads and w writes.
func (d DbWeight) ReadsWrites(r, w uint64) Weight {
	return d.Reads(r).Add(d.Writes(w))
}

func mul(w Weight, n uint64) Weight {
	if n != 0 && uint64(w) > math.MaxUint64/n {
		return math.MaxUint64
	}
	return w * Weight(n)
}

// Meter counts storage accesses. A nil meter ignores all charges.
type Meter struct {
	db     DbWeight
	reads  uint64
	writes uint64
	custom Weight
}

// NewMeter creates a meter pricing accesses with db.
func NewMeter(db DbWeight) *Meter {
	return &Meter{db: db}
}

// Read records n reads.
func (m *Meter) Read(n uint64) {
	if m != nil {
		m.reads += n
	}
}

// Write records n writes.
func (m *Meter) Write(n uint64) {
	if m != nil {
		m.writes += n
	}
}

// Charge records a custom weight.
func (m *Meter) Charge(w Weight) {
	if m != nil {
		m.custom = m.custom.Add(w)
	}
}

// Reads returns the number of recorded reads.
func (m *Meter) Reads() uint64 {
	if m == nil {
		return 0
	}
	return m.reads
}

// Writes returns the number of recorded writes.
func (m *Meter) Writes() uint64 {
	if m == nil {
		return 0
	}
	return m.writes
}

// Total returns the priced sum of all charges.
func (m *Meter) Total() Weight {
	if m == nil {
		return 0
	}
	return m.db.ReadsWrites(m.reads, m.writes).Add(m.custom)
}

// Reset clears all counters.
func (m *Meter) Reset() {
	if m != nil {
		m.reads, m.writes, m.custom = 0, 0, 0
	}
}

func (m *Meter) Breakdown() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf(
		"READ: %d ops (%d) | WRITE: %d ops (%d) | CUSTOM: %d | TOTAL: %d",
		m.Reads(),
		m.db.Reads(m.Reads()),
		m.Writes(),
		m.db.Writes(m.Writes()),
		m.custom,
		m.Total(),
	)
}
