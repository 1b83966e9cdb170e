// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import "github.com/pkg/errors"

// Value is a single storage item.
type Value[V any] struct {
	context *Context
	key     []byte
	name    string
}

func NewValue[V any](context *Context, module, name string) *Value[V] {
	return &Value[V]{context: context, key: itemKey(module, name), name: name}
}

// Get returns the stored value. ok is false and value is zero when absent.
func (v *Value[V]) Get() (value V, ok bool, err error) {
	raw, err := v.context.get(v.key)
	if err != nil || raw == nil {
		return value, false, err
	}
	if value, err = decode[V](raw); err != nil {
		return value, false, errors.Wrapf(err, "decode %s", v.name)
	}
	return value, true, nil
}

// GetOrDefault returns the stored value, or def when absent.
func (v *Value[V]) GetOrDefault(def V) (V, error) {
	value, ok, err := v.Get()
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return value, nil
}

// Exists reports whether the item is stored.
func (v *Value[V]) Exists() (bool, error) {
	raw, err := v.context.get(v.key)
	return raw != nil, err
}

func (v *Value[V]) Set(value V) error {
	return v.context.put(v.key, value)
}

// Kill removes the item.
func (v *Value[V]) Kill() {
	v.context.remove(v.key)
}
