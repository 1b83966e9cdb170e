// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const (
	// AddressLength length of account id in bytes.
	AddressLength = 32
	// SS58Prefix is the network prefix used when rendering account ids.
	SS58Prefix = 55

	ss58ChecksumLength = 2
)

var ss58Pre = []byte("SS58PRE")

// Address is a 32 bytes account id.
type Address [AddressLength]byte

// String implements the stringer interface. Account ids are rendered in SS58 form.
func (a Address) String() string {
	data := make([]byte, 0, 1+AddressLength+ss58ChecksumLength)
	data = append(data, SS58Prefix)
	data = append(data, a[:]...)
	data = append(data, ss58Checksum(data)...)
	return base58.Encode(data)
}

// Hex returns the hex form of the account id, with 0x prefix.
func (a Address) Hex() string {
	return hexutil.Encode(a[:])
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns if address is all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Compare returns an integer comparing two addresses lexicographically.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress converts a SS58 or 0x-prefixed hex string into Address.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hexutil.Decode(s)
		if err != nil {
			return Address{}, errors.Wrap(err, "parse address")
		}
		if len(b) != AddressLength {
			return Address{}, errors.New("invalid address length")
		}
		return BytesToAddress(b), nil
	}

	data, err := base58.Decode(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "parse address")
	}
	if len(data) != 1+AddressLength+ss58ChecksumLength {
		return Address{}, errors.New("invalid address length")
	}
	if data[0] >= 64 {
		return Address{}, errors.New("unsupported address prefix")
	}
	body := data[:1+AddressLength]
	if !bytes.Equal(ss58Checksum(body), data[1+AddressLength:]) {
		return Address{}, errors.New("invalid address checksum")
	}
	return BytesToAddress(data[1 : 1+AddressLength]), nil
}

// MustParseAddress convert string presented address into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address length, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	var addr Address
	copy(addr[AddressLength-len(b):], b)
	return addr
}

func ss58Checksum(data []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(ss58Pre)
	h.Write(data)
	return h.Sum(nil)[:ss58ChecksumLength]
}
