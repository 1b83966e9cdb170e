// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/xxnetwork/staking/builtin/weight"
	"github.com/xxnetwork/staking/state"
)

// Context binds storage items to a state and a weight meter.
type Context struct {
	state *state.State
	meter *weight.Meter
}

func NewContext(state *state.State, meter *weight.Meter) *Context {
	return &Context{
		state: state,
		meter: meter,
	}
}

func (c *Context) State() *state.State {
	return c.state
}

func (c *Context) Meter() *weight.Meter {
	return c.meter
}

func (c *Context) get(key []byte) ([]byte, error) {
	c.meter.Read(1)
	return c.state.Get(key)
}

func (c *Context) put(key []byte, value any) error {
	c.meter.Write(1)
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return err
	}
	c.state.Set(key, raw)
	return nil
}

func (c *Context) remove(key []byte) {
	c.meter.Write(1)
	c.state.Delete(key)
}

func (c *Context) iterate(prefix []byte, fn func(key, raw []byte) error) error {
	return c.state.Iterate(prefix, func(key, raw []byte) error {
		c.meter.Read(1)
		return fn(key, raw)
	})
}

func decode[V any](raw []byte) (value V, err error) {
	err = rlp.DecodeBytes(raw, &value)
	return
}

// itemKey is the key of a plain value, and the prefix of a map.
func itemKey(module, name string) []byte {
	return []byte(module + ":" + name + ":")
}
