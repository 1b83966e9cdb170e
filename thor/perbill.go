// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// PerbillAccuracy is the number of parts in one whole.
const PerbillAccuracy = 1_000_000_000

var (
	accuracy     = uint256.NewInt(PerbillAccuracy)
	halfAccuracy = uint256.NewInt(PerbillAccuracy / 2)
)

// Perbill is a fixed point fraction in parts per billion.
type Perbill uint32

// PerbillOne is the whole.
const PerbillOne Perbill = PerbillAccuracy

// PerbillFromParts clamps parts into [0, one].
func PerbillFromParts(parts uint32) Perbill {
	if parts > PerbillAccuracy {
		return PerbillOne
	}
	return Perbill(parts)
}

// PerbillFromPercent creates a perbill from a whole percent, clamped to 100.
func PerbillFromPercent(percent uint32) Perbill {
	if percent > 100 {
		percent = 100
	}
	return Perbill(percent * (PerbillAccuracy / 100))
}

// PerbillFromRational returns n/d rounded down. A zero denominator or n >= d yields one.
func PerbillFromRational(n, d Balance) Perbill {
	if d.IsZero() || !n.Lt(d) {
		return PerbillOne
	}
	// n < d < 2^128, so n * 1e9 fits.
	var r uint256.Int
	r.Mul(&n.v, accuracy)
	r.Div(&r, &d.v)
	return Perbill(r.Uint64())
}

// Parts returns the number of parts per billion.
func (p Perbill) Parts() uint32 {
	return uint32(p)
}

// IsZero returns whether the fraction is zero.
func (p Perbill) IsZero() bool {
	return p == 0
}

// MulBalance returns p * b, rounded to the nearest integer with ties going down.
func (p Perbill) MulBalance(b Balance) Balance {
	var prod, quo, rem uint256.Int
	prod.Mul(&b.v, uint256.NewInt(uint64(p)))
	quo.DivMod(&prod, accuracy, &rem)
	if rem.Gt(halfAccuracy) {
		quo.AddUint64(&quo, 1)
	}
	return Balance{v: quo}
}

// Mul returns p * q with the same rounding as MulBalance.
func (p Perbill) Mul(q Perbill) Perbill {
	prod := uint64(p) * uint64(q)
	quo, rem := prod/PerbillAccuracy, prod%PerbillAccuracy
	if rem > PerbillAccuracy/2 {
		quo++
	}
	return Perbill(quo)
}

// String renders the fraction as a percentage.
func (p Perbill) String() string {
	whole := uint32(p) / (PerbillAccuracy / 100)
	frac := uint32(p) % (PerbillAccuracy / 100)
	if frac == 0 {
		return fmt.Sprintf("%d%%", whole)
	}
	return strings.TrimRight(fmt.Sprintf("%d.%07d", whole, frac), "0") + "%"
}

// MarshalText implements encoding.TextMarshaler.
func (p Perbill) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Perbill) UnmarshalText(text []byte) error {
	parsed, err := ParsePerbill(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePerbill accepts a percentage ("2%", "2.5%") or a fraction ("0.02").
func ParsePerbill(s string) (Perbill, error) {
	s = strings.TrimSpace(s)
	scale := float64(PerbillAccuracy)
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = PerbillAccuracy / 100
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse perbill")
	}
	if f < 0 {
		return 0, errors.New("negative perbill")
	}
	parts := f*scale + 0.5
	if parts > PerbillAccuracy {
		return 0, errors.New("perbill exceeds one")
	}
	return Perbill(uint32(parts)), nil
}
