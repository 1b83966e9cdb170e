// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressSS58(t *testing.T) {
	addr := BytesToAddress([]byte("alice"))

	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	parsed, err = ParseAddress(addr.Hex())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)

	// flip one character of the encoded form
	s := []byte(addr.String())
	if s[5] == '2' {
		s[5] = '3'
	} else {
		s[5] = '2'
	}
	_, err = ParseAddress(string(s))
	assert.Error(t, err)

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte{1, 2, 3})
	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte{0xaa})
	assert.Equal(t, byte(0xaa), b[31])
	assert.False(t, b.IsZero())

	parsed, err := ParseBytes32(b.String())
	require.NoError(t, err)
	assert.Equal(t, b, parsed)

	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("a"), []byte("b")))
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
}

func TestBalanceSaturation(t *testing.T) {
	assert.Equal(t, NewBalance(0), NewBalance(5).Sub(NewBalance(10)))
	assert.Equal(t, NewBalance(15), NewBalance(5).Add(NewBalance(10)))
	assert.Equal(t, MaxBalance(), MaxBalance().Add(NewBalance(1)))
	assert.Equal(t, MaxBalance(), MaxBalance().MulUint64(2))
	assert.Equal(t, NewBalance(3), NewBalance(10).DivUint64(3))
	assert.Equal(t, NewBalance(5), NewBalance(5).Min(NewBalance(10)))
	assert.Equal(t, NewBalance(10), NewBalance(5).Max(NewBalance(10)))
	assert.Equal(t, "340282366920938463463374607431768211455", MaxBalance().String())

	_, err := BalanceFromBig(new(big.Int).Lsh(big.NewInt(1), 128))
	assert.Error(t, err)
	_, err = BalanceFromBig(big.NewInt(-1))
	assert.Error(t, err)
}

func TestBalanceRLP(t *testing.T) {
	type holder struct {
		A Balance
		B Balance
	}
	h := holder{A: NewBalance(1000), B: MustParseBalance("123456789012345678901234567890")}
	data, err := rlp.EncodeToBytes(&h)
	require.NoError(t, err)

	var decoded holder
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, h, decoded)
}

func TestPerbill(t *testing.T) {
	assert.Equal(t, Perbill(20_000_000), PerbillFromPercent(2))
	assert.Equal(t, PerbillOne, PerbillFromPercent(150))
	assert.Equal(t, PerbillOne, PerbillFromRational(NewBalance(1), NewBalance(0)))
	assert.Equal(t, PerbillOne, PerbillFromRational(NewBalance(7), NewBalance(7)))
	assert.Equal(t, Perbill(333_333_333), PerbillFromRational(NewBalance(1), NewBalance(3)))
	assert.Equal(t, Perbill(666_666_666), PerbillFromRational(NewBalance(2), NewBalance(3)))

	// nearest, ties down
	assert.Equal(t, NewBalance(1), Perbill(500_000_000).MulBalance(NewBalance(3)))
	assert.Equal(t, NewBalance(2), Perbill(600_000_000).MulBalance(NewBalance(3)))
	assert.Equal(t, NewBalance(1000), PerbillOne.MulBalance(NewBalance(1000)))
	assert.Equal(t, NewBalance(0), Perbill(0).MulBalance(NewBalance(1000)))
	assert.Equal(t, Perbill(250_000_000), Perbill(500_000_000).Mul(Perbill(500_000_000)))

	p, err := ParsePerbill("2%")
	require.NoError(t, err)
	assert.Equal(t, PerbillFromPercent(2), p)
	p, err = ParsePerbill("0.025")
	require.NoError(t, err)
	assert.Equal(t, Perbill(25_000_000), p)
	assert.Equal(t, "2.5%", p.String())
	assert.Equal(t, "2%", PerbillFromPercent(2).String())
	_, err = ParsePerbill("101%")
	assert.Error(t, err)
}
