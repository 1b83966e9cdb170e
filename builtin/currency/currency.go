// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package currency keeps free balances, locks and total issuance of the native token.
package currency

import (
	"github.com/pkg/errors"

	"github.com/xxnetwork/staking/builtin/reverts"
	"github.com/xxnetwork/staking/builtin/storage"
	"github.com/xxnetwork/staking/thor"
)

const module = "Balances"

var (
	ErrInsufficientBalance   = reverts.New("InsufficientBalance")
	ErrLiquidityRestrictions = reverts.New("LiquidityRestrictions")
	ErrExistentialDeposit    = reverts.New("ExistentialDeposit")
)

// Lock freezes part of the free balance for a purpose identified by ID.
type Lock struct {
	ID     [8]byte
	Amount thor.Balance
}

// AccountData is the stored balance record of an account.
type AccountData struct {
	Free  thor.Balance
	Locks []Lock
}

// Frozen returns the largest lock. Locks overlap rather than stack.
func (a *AccountData) Frozen() thor.Balance {
	var frozen thor.Balance
	for _, l := range a.Locks {
		frozen = frozen.Max(l.Amount)
	}
	return frozen
}

// Usable returns the free balance not covered by any lock.
func (a *AccountData) Usable() thor.Balance {
	return a.Free.Sub(a.Frozen())
}

type Currency struct {
	accounts           *storage.Map[thor.Address, AccountData]
	totalIssuance      *storage.Value[thor.Balance]
	existentialDeposit thor.Balance
}

func New(sctx *storage.Context, existentialDeposit thor.Balance) *Currency {
	return &Currency{
		accounts:           storage.NewMap[thor.Address, AccountData](sctx, module, "Account", storage.AddressKey),
		totalIssuance:      storage.NewValue[thor.Balance](sctx, module, "TotalIssuance"),
		existentialDeposit: existentialDeposit,
	}
}

func (c *Currency) account(who thor.Address) (AccountData, error) {
	acc, _, err := c.accounts.Get(who)
	if err != nil {
		return AccountData{}, errors.Wrap(err, "failed to get account")
	}
	return acc, nil
}

func (c *Currency) setAccount(who thor.Address, acc AccountData) error {
	if acc.Free.IsZero() && len(acc.Locks) == 0 {
		c.accounts.Remove(who)
		return nil
	}
	return c.accounts.Set(who, acc)
}

func (c *Currency) adjustIssuance(increase, decrease thor.Balance) error {
	total, err := c.totalIssuance.GetOrDefault(thor.Balance{})
	if err != nil {
		return err
	}
	return c.totalIssuance.Set(total.Add(increase).Sub(decrease))
}

// MinimumBalance returns the existential deposit.
func (c *Currency) MinimumBalance() thor.Balance {
	return c.existentialDeposit
}

// FreeBalance returns the free balance, locked part included.
func (c *Currency) FreeBalance(who thor.Address) (thor.Balance, error) {
	acc, err := c.account(who)
	return acc.Free, err
}

// UsableBalance returns the transferable balance.
func (c *Currency) UsableBalance(who thor.Address) (thor.Balance, error) {
	acc, err := c.account(who)
	return acc.Usable(), err
}

// Locked returns the largest lock on the account.
func (c *Currency) Locked(who thor.Address) (thor.Balance, error) {
	acc, err := c.account(who)
	return acc.Frozen(), err
}

func (c *Currency) TotalIssuance() (thor.Balance, error) {
	return c.totalIssuance.GetOrDefault(thor.Balance{})
}

// MakeFreeBalanceBe sets the free balance, adjusting total issuance.
func (c *Currency) MakeFreeBalanceBe(who thor.Address, amount thor.Balance) error {
	acc, err := c.account(who)
	if err != nil {
		return err
	}
	if err := c.adjustIssuance(amount, acc.Free); err != nil {
		return err
	}
	acc.Free = amount
	return c.setAccount(who, acc)
}

// Deposit mints amount into the free balance of who.
func (c *Currency) Deposit(who thor.Address, amount thor.Balance) error {
	if amount.IsZero() {
		return nil
	}
	acc, err := c.account(who)
	if err != nil {
		return err
	}
	if acc.Free.IsZero() && amount.Lt(c.existentialDeposit) {
		return ErrExistentialDeposit
	}
	acc.Free = acc.Free.Add(amount)
	if err := c.adjustIssuance(amount, thor.Balance{}); err != nil {
		return err
	}
	return c.setAccount(who, acc)
}

// Slash burns up to amount from the free balance, ignoring locks.
// It returns the amount actually burnt.
func (c *Currency) Slash(who thor.Address, amount thor.Balance) (thor.Balance, error) {
	acc, err := c.account(who)
	if err != nil {
		return thor.Balance{}, err
	}
	slashed := amount.Min(acc.Free)
	if slashed.IsZero() {
		return slashed, nil
	}
	acc.Free = acc.Free.Sub(slashed)
	if err := c.adjustIssuance(thor.Balance{}, slashed); err != nil {
		return thor.Balance{}, err
	}
	return slashed, c.setAccount(who, acc)
}

// Transfer moves amount of usable balance.
func (c *Currency) Transfer(from, to thor.Address, amount thor.Balance) error {
	src, err := c.account(from)
	if err != nil {
		return err
	}
	if src.Free.Lt(amount) {
		return ErrInsufficientBalance
	}
	if src.Usable().Lt(amount) {
		return ErrLiquidityRestrictions
	}
	if from == to || amount.IsZero() {
		return nil
	}
	dst, err := c.account(to)
	if err != nil {
		return err
	}
	if dst.Free.IsZero() && amount.Lt(c.existentialDeposit) {
		return ErrExistentialDeposit
	}
	src.Free = src.Free.Sub(amount)
	dst.Free = dst.Free.Add(amount)
	if err := c.setAccount(from, src); err != nil {
		return err
	}
	return c.setAccount(to, dst)
}

// SetLock creates or replaces the lock id on who.
func (c *Currency) SetLock(id [8]byte, who thor.Address, amount thor.Balance) error {
	acc, err := c.account(who)
	if err != nil {
		return err
	}
	locks := make([]Lock, 0, len(acc.Locks)+1)
	for _, l := range acc.Locks {
		if l.ID != id {
			locks = append(locks, l)
		}
	}
	if !amount.IsZero() {
		locks = append(locks, Lock{ID: id, Amount: amount})
	}
	acc.Locks = locks
	return c.setAccount(who, acc)
}

// RemoveLock drops the lock id from who.
func (c *Currency) RemoveLock(id [8]byte, who thor.Address) error {
	return c.SetLock(id, who, thor.Balance{})
}
