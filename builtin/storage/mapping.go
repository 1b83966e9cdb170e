// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/pkg/errors"
)

// Map is a storage item keyed by K.
type Map[K any, V any] struct {
	context *Context
	prefix  []byte
	name    string
	codec   KeyCodec[K]
}

func NewMap[K any, V any](context *Context, module, name string, codec KeyCodec[K]) *Map[K, V] {
	return &Map[K, V]{context: context, prefix: itemKey(module, name), name: name, codec: codec}
}

func (m *Map[K, V]) key(k K) []byte {
	return append(append([]byte(nil), m.prefix...), m.codec.Encode(k)...)
}

// Get returns the value stored under k. ok is false when absent.
func (m *Map[K, V]) Get(k K) (value V, ok bool, err error) {
	raw, err := m.context.get(m.key(k))
	if err != nil || raw == nil {
		return value, false, err
	}
	if value, err = decode[V](raw); err != nil {
		return value, false, errors.Wrapf(err, "decode %s", m.name)
	}
	return value, true, nil
}

// Has reports whether k is stored.
func (m *Map[K, V]) Has(k K) (bool, error) {
	raw, err := m.context.get(m.key(k))
	return raw != nil, err
}

func (m *Map[K, V]) Set(k K, value V) error {
	return m.context.put(m.key(k), value)
}

func (m *Map[K, V]) Remove(k K) {
	m.context.remove(m.key(k))
}

// Iterate visits all entries in key order.
func (m *Map[K, V]) Iterate(fn func(K, V) error) error {
	return m.context.iterate(m.prefix, func(key, raw []byte) error {
		k, err := m.codec.Decode(key[len(m.prefix):])
		if err != nil {
			return errors.Wrapf(err, "decode %s key", m.name)
		}
		value, err := decode[V](raw)
		if err != nil {
			return errors.Wrapf(err, "decode %s", m.name)
		}
		return fn(k, value)
	})
}

// Count returns the number of entries.
func (m *Map[K, V]) Count() (uint32, error) {
	var n uint32
	err := m.context.iterate(m.prefix, func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}

// Clear removes all entries and returns how many were removed.
func (m *Map[K, V]) Clear() (uint32, error) {
	var n uint32
	err := m.context.iterate(m.prefix, func(key, _ []byte) error {
		m.context.remove(key)
		n++
		return nil
	})
	return n, err
}
