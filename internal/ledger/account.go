// Package ledger implements the in-memory member/account core of the
// financial host: balances, fund reservations, deposits, transfers and the
// per-member daily transaction cap.
//
// Sign convention: Total is signed (negative for LOAN/CREDIT debt). Limit is
// the floor, the most negative Total an account may reach; it is zero for
// SAVINGS. Redraw room on a LOAN is therefore Total - Limit.
package ledger

import (
	"sync"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account. The set is closed; dataset records are
// validated against it at load time.
type AccountType int8

const (
	AccountTypeSavings AccountType = iota
	AccountTypeCredit
	AccountTypeLoan
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeSavings:
		return "SAVINGS"
	case AccountTypeCredit:
		return "CREDIT"
	case AccountTypeLoan:
		return "LOAN"
	}
	return "UNKNOWN"
}

// ParseAccountType maps a dataset/envelope type string to an AccountType.
func ParseAccountType(s string) (AccountType, bool) {
	switch s {
	case "SAVINGS":
		return AccountTypeSavings, true
	case "CREDIT":
		return AccountTypeCredit, true
	case "LOAN":
		return AccountTypeLoan, true
	}
	return 0, false
}

// BalanceSnapshot is a point-in-time view of an account's balances. Locked
// and Available are always recomputed, never stored. Available is
// non-negative for SAVINGS and LOAN accounts; a drawn CREDIT account reports
// its negative total as Available, so nothing can be drawn from it until it
// is paid back above zero.
type BalanceSnapshot struct {
	Total     decimal.Decimal
	Locked    decimal.Decimal
	Available decimal.Decimal
	Limit     decimal.Decimal
	Pending   decimal.Decimal
}

// AccountConfig is the input for constructing an Account from a dataset
// record.
type AccountConfig struct {
	ID            string
	Name          string
	Type          AccountType
	Total         decimal.Decimal
	Limit         decimal.Decimal
	HasRedraw     bool
	MaxWithdrawal decimal.Decimal
}

// Account owns a balance and the set of active fund reservations against it.
// All state is guarded by a single mutex; no operation holds more than this
// one lock except Transfer, which orders by account id.
type Account struct {
	mu sync.Mutex

	id            string
	name          string
	typ           AccountType
	total         decimal.Decimal
	limit         decimal.Decimal
	hasRedraw     bool
	maxWithdrawal decimal.Decimal

	nextLockID int64
	locks      map[int64]decimal.Decimal
}

// NewAccount creates an Account. HasRedraw is only meaningful for LOAN
// accounts and is ignored for every other type.
func NewAccount(cfg AccountConfig) *Account {
	return &Account{
		id:            cfg.ID,
		name:          cfg.Name,
		typ:           cfg.Type,
		total:         cfg.Total,
		limit:         cfg.Limit,
		hasRedraw:     cfg.Type == AccountTypeLoan && cfg.HasRedraw,
		maxWithdrawal: cfg.MaxWithdrawal,
		locks:         make(map[int64]decimal.Decimal),
	}
}

func (a *Account) ID() string        { return a.id }
func (a *Account) Name() string      { return a.name }
func (a *Account) Type() AccountType { return a.typ }
func (a *Account) HasRedraw() bool   { return a.hasRedraw }

// Balance returns a consistent snapshot of the account's balances.
func (a *Account) Balance() BalanceSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

// HasLock reports whether the given reservation is outstanding.
func (a *Account) HasLock(lockID int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.locks[lockID]
	return ok
}

// Reserve places a reservation against available funds and returns its lock
// id. Funds become unavailable to other Reserve calls immediately; Total is
// untouched until Commit. Fails with INSUFFICIENT_AVAILABLE or
// LIMIT_EXCEEDED, in that order.
func (a *Account) Reserve(amount decimal.Decimal) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.checkDraw(amount); err != nil {
		return 0, err
	}
	a.nextLockID++
	id := a.nextLockID
	a.locks[id] = amount
	return id, nil
}

// Release removes a reservation without touching Total, restoring
// availability. Used when the step the reservation was guarding (e.g. cash
// dispensing) failed after authorization.
func (a *Account) Release(lockID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.locks) == 0 {
		return ErrNoLocks
	}
	if _, ok := a.locks[lockID]; !ok {
		return ErrLockNotFound
	}
	delete(a.locks, lockID)
	return nil
}

// Commit converts a reservation into a permanent balance change and returns
// the committed amount. Must only be called once the guarded side effect has
// definitely succeeded.
func (a *Account) Commit(lockID int64) (decimal.Decimal, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.locks) == 0 {
		return decimal.Zero, ErrNoLocks
	}
	amount, ok := a.locks[lockID]
	if !ok {
		return decimal.Zero, ErrLockNotFound
	}
	delete(a.locks, lockID)
	a.total = a.total.Sub(amount)
	return amount, nil
}

// Deposit credits the account. The amount must already be validated as
// positive by the caller.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total = a.total.Add(amount)
}

// Transfer atomically debits src and credits dst. Both account locks are
// held for the duration, acquired in account-id order so concurrent
// transfers cannot deadlock. A failed check leaves both balances unchanged.
// Transfers are single-step: they have no external fallible side effect, so
// no reservation is involved.
func Transfer(src, dst *Account, amount decimal.Decimal) error {
	if src == dst {
		return NewError(CodeInvalidDestinationAccount, "cannot transfer an account to itself")
	}
	first, second := src, dst
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := src.checkDraw(amount); err != nil {
		return err
	}
	src.total = src.total.Sub(amount)
	dst.total = dst.total.Add(amount)
	return nil
}

// checkDraw verifies that amount can be drawn right now. Caller holds mu.
func (a *Account) checkDraw(amount decimal.Decimal) error {
	if amount.GreaterThan(a.available()) {
		return ErrInsufficientAvailable
	}
	if amount.GreaterThan(a.maxWithdrawal) {
		return ErrLimitExceeded
	}
	return nil
}

// lockedAmount sums outstanding reservations. Caller holds mu.
func (a *Account) lockedAmount() decimal.Decimal {
	locked := decimal.Zero
	for _, amount := range a.locks {
		locked = locked.Add(amount)
	}
	return locked
}

// available computes drawable funds. Caller holds mu.
func (a *Account) available() decimal.Decimal {
	if a.typ == AccountTypeLoan {
		if !a.hasRedraw {
			return decimal.Zero
		}
		return a.total.Sub(a.limit).Sub(a.lockedAmount())
	}
	return a.total.Sub(a.lockedAmount())
}

// snapshot builds a BalanceSnapshot. Caller holds mu.
func (a *Account) snapshot() BalanceSnapshot {
	return BalanceSnapshot{
		Total:     a.total,
		Locked:    a.lockedAmount(),
		Available: a.available(),
		Limit:     a.limit,
		Pending:   decimal.Zero,
	}
}
