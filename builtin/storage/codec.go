// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/thor"
)

// KeyCodec maps keys to fixed size byte strings. Encodings must sort in key order.
type KeyCodec[K any] interface {
	Encode(K) []byte
	Decode([]byte) (K, error)
	Size() int
}

type addressCodec struct{}

func (addressCodec) Encode(k thor.Address) []byte { return k.Bytes() }
func (addressCodec) Size() int                    { return thor.AddressLength }
func (addressCodec) Decode(b []byte) (thor.Address, error) {
	if len(b) != thor.AddressLength {
		return thor.Address{}, errors.New("invalid address key")
	}
	return thor.BytesToAddress(b), nil
}

type bytes32Codec struct{}

func (bytes32Codec) Encode(k thor.Bytes32) []byte { return k.Bytes() }
func (bytes32Codec) Size() int                    { return 32 }
func (bytes32Codec) Decode(b []byte) (thor.Bytes32, error) {
	if len(b) != 32 {
		return thor.Bytes32{}, errors.New("invalid bytes32 key")
	}
	return thor.BytesToBytes32(b), nil
}

type uint32Codec struct{}

func (uint32Codec) Encode(k uint32) []byte { return binary.BigEndian.AppendUint32(nil, k) }
func (uint32Codec) Size() int              { return 4 }
func (uint32Codec) Decode(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, errors.New("invalid uint32 key")
	}
	return binary.BigEndian.Uint32(b), nil
}

// Key codecs of the supported key types.
var (
	AddressKey KeyCodec[thor.Address] = addressCodec{}
	Bytes32Key KeyCodec[thor.Bytes32] = bytes32Codec{}
	Uint32Key  KeyCodec[uint32]       = uint32Codec{}
)
