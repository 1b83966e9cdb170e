// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/pkg/errors"
)

// DoubleMap is a storage item keyed by (K1, K2). Entries sharing K1 can be
// visited or removed together.
type DoubleMap[K1 any, K2 any, V any] struct {
	context *Context
	prefix  []byte
	name    string
	codec1  KeyCodec[K1]
	codec2  KeyCodec[K2]
}

func NewDoubleMap[K1 any, K2 any, V any](
	context *Context,
	module, name string,
	codec1 KeyCodec[K1],
	codec2 KeyCodec[K2],
) *DoubleMap[K1, K2, V] {
	return &DoubleMap[K1, K2, V]{
		context: context,
		prefix:  itemKey(module, name),
		name:    name,
		codec1:  codec1,
		codec2:  codec2,
	}
}

func (m *DoubleMap[K1, K2, V]) prefixOf(k1 K1) []byte {
	return append(append([]byte(nil), m.prefix...), m.codec1.Encode(k1)...)
}

func (m *DoubleMap[K1, K2, V]) key(k1 K1, k2 K2) []byte {
	return append(m.prefixOf(k1), m.codec2.Encode(k2)...)
}

func (m *DoubleMap[K1, K2, V]) splitKey(key []byte) (k1 K1, k2 K2, err error) {
	body := key[len(m.prefix):]
	if len(body) != m.codec1.Size()+m.codec2.Size() {
		return k1, k2, errors.Errorf("invalid %s key length", m.name)
	}
	if k1, err = m.codec1.Decode(body[:m.codec1.Size()]); err != nil {
		return
	}
	k2, err = m.codec2.Decode(body[m.codec1.Size():])
	return
}

func (m *DoubleMap[K1, K2, V]) Get(k1 K1, k2 K2) (value V, ok bool, err error) {
	raw, err := m.context.get(m.key(k1, k2))
	if err != nil || raw == nil {
		return value, false, err
	}
	if value, err = decode[V](raw); err != nil {
		return value, false, errors.Wrapf(err, "decode %s", m.name)
	}
	return value, true, nil
}

func (m *DoubleMap[K1, K2, V]) Has(k1 K1, k2 K2) (bool, error) {
	raw, err := m.context.get(m.key(k1, k2))
	return raw != nil, err
}

func (m *DoubleMap[K1, K2, V]) Set(k1 K1, k2 K2, value V) error {
	return m.context.put(m.key(k1, k2), value)
}

func (m *DoubleMap[K1, K2, V]) Remove(k1 K1, k2 K2) {
	m.context.remove(m.key(k1, k2))
}

// IterPrefix visits all entries under k1, ordered by k2.
func (m *DoubleMap[K1, K2, V]) IterPrefix(k1 K1, fn func(K2, V) error) error {
	return m.context.iterate(m.prefixOf(k1), func(key, raw []byte) error {
		_, k2, err := m.splitKey(key)
		if err != nil {
			return err
		}
		value, err := decode[V](raw)
		if err != nil {
			return errors.Wrapf(err, "decode %s", m.name)
		}
		return fn(k2, value)
	})
}

// Iterate visits all entries.
func (m *DoubleMap[K1, K2, V]) Iterate(fn func(K1, K2, V) error) error {
	return m.context.iterate(m.prefix, func(key, raw []byte) error {
		k1, k2, err := m.splitKey(key)
		if err != nil {
			return err
		}
		value, err := decode[V](raw)
		if err != nil {
			return errors.Wrapf(err, "decode %s", m.name)
		}
		return fn(k1, k2, value)
	})
}

// RemovePrefix removes all entries under k1 and returns how many were removed.
func (m *DoubleMap[K1, K2, V]) RemovePrefix(k1 K1) (uint32, error) {
	var n uint32
	err := m.context.iterate(m.prefixOf(k1), func(key, _ []byte) error {
		m.context.remove(key)
		n++
		return nil
	})
	return n, err
}

// TranslateDoubleMap rewrites every entry of m from the legacy encoding O into
// V. Entries for which fn returns false are removed. It returns the number of
// visited entries.
func TranslateDoubleMap[K1 any, K2 any, O any, V any](
	m *DoubleMap[K1, K2, V],
	fn func(K1, K2, O) (V, bool),
) (uint64, error) {
	var n uint64
	err := m.context.iterate(m.prefix, func(key, raw []byte) error {
		n++
		k1, k2, err := m.splitKey(key)
		if err != nil {
			return err
		}
		old, err := decode[O](raw)
		if err != nil {
			return errors.Wrapf(err, "decode legacy %s", m.name)
		}
		value, keep := fn(k1, k2, old)
		if !keep {
			m.context.remove(key)
			return nil
		}
		return m.context.put(key, value)
	})
	return n, err
}
