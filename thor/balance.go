// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var maxBalance = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// Balance is an unsigned 128 bit amount of the native currency.
// All arithmetic saturates instead of wrapping.
type Balance struct {
	v uint256.Int
}

// NewBalance creates a balance from uint64.
func NewBalance(x uint64) Balance {
	var b Balance
	b.v.SetUint64(x)
	return b
}

// MaxBalance returns the largest representable balance.
func MaxBalance() Balance {
	return Balance{v: *maxBalance}
}

// BalanceFromBig converts a big integer into balance. Negative or oversized values are rejected.
func BalanceFromBig(x *big.Int) (Balance, error) {
	var b Balance
	if x.Sign() < 0 {
		return b, errors.New("negative balance")
	}
	if overflow := b.v.SetFromBig(x); overflow || b.v.Gt(maxBalance) {
		return Balance{}, errors.New("balance overflows 128 bits")
	}
	return b, nil
}

// ParseBalance parses a decimal string.
func ParseBalance(s string) (Balance, error) {
	var b Balance
	if err := b.v.SetFromDecimal(s); err != nil {
		return Balance{}, errors.Wrap(err, "parse balance")
	}
	if b.v.Gt(maxBalance) {
		return Balance{}, errors.New("balance overflows 128 bits")
	}
	return b, nil
}

// MustParseBalance parses a decimal string, panic on error.
func MustParseBalance(s string) Balance {
	b, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Add returns b + o, saturating at MaxBalance.
func (b Balance) Add(o Balance) Balance {
	var r Balance
	if _, overflow := r.v.AddOverflow(&b.v, &o.v); overflow || r.v.Gt(maxBalance) {
		return MaxBalance()
	}
	return r
}

// Sub returns b - o, saturating at zero.
func (b Balance) Sub(o Balance) Balance {
	var r Balance
	if b.v.Lt(&o.v) {
		return r
	}
	r.v.Sub(&b.v, &o.v)
	return r
}

// MulUint64 returns b * x, saturating at MaxBalance.
func (b Balance) MulUint64(x uint64) Balance {
	var r Balance
	if _, overflow := r.v.MulOverflow(&b.v, uint256.NewInt(x)); overflow || r.v.Gt(maxBalance) {
		return MaxBalance()
	}
	return r
}

// DivUint64 returns b / x. Division by zero yields zero.
func (b Balance) DivUint64(x uint64) Balance {
	var r Balance
	r.v.Div(&b.v, uint256.NewInt(x))
	return r
}

// Min returns the smaller of b and o.
func (b Balance) Min(o Balance) Balance {
	if b.v.Lt(&o.v) {
		return b
	}
	return o
}

// Max returns the larger of b and o.
func (b Balance) Max(o Balance) Balance {
	if b.v.Gt(&o.v) {
		return b
	}
	return o
}

// Cmp compares b and o and returns -1, 0 or +1.
func (b Balance) Cmp(o Balance) int {
	return b.v.Cmp(&o.v)
}

// Lt returns b < o.
func (b Balance) Lt(o Balance) bool {
	return b.v.Lt(&o.v)
}

// Gt returns b > o.
func (b Balance) Gt(o Balance) bool {
	return b.v.Gt(&o.v)
}

// IsZero returns whether the balance is zero.
func (b Balance) IsZero() bool {
	return b.v.IsZero()
}

// Uint64 returns the low 64 bits. It saturates for larger values.
func (b Balance) Uint64() uint64 {
	if !b.v.IsUint64() {
		return ^uint64(0)
	}
	return b.v.Uint64()
}

// Big returns a big integer copy.
func (b Balance) Big() *big.Int {
	return b.v.ToBig()
}

// U256 returns a copy of the underlying uint256.
func (b Balance) U256() *uint256.Int {
	return b.v.Clone()
}

func (b Balance) String() string {
	return b.v.Dec()
}

// MarshalText implements encoding.TextMarshaler.
func (b Balance) MarshalText() ([]byte, error) {
	return []byte(b.v.Dec()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Balance) UnmarshalText(text []byte) error {
	parsed, err := ParseBalance(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (b Balance) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, b.v.ToBig())
}

// DecodeRLP implements rlp.Decoder.
func (b *Balance) DecodeRLP(s *rlp.Stream) error {
	x, err := s.BigInt()
	if err != nil {
		return err
	}
	decoded, err := BalanceFromBig(x)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
