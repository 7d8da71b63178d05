package brokerage

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Account tracks a single trading account: its cash balance, equity holdings
// and the full ledger of events that produced them.
//
// Every mutating operation validates its inputs first and then, as one unit,
// updates the live state and appends exactly one ledger record. If any
// precondition fails nothing is mutated and nothing is appended.
//
// Mutations are serialized by an internal lock, so an account handed to
// multiple goroutines stays consistent: readers never observe a ledger
// append without its paired state change.
type Account struct {
	mu sync.RWMutex

	owner     string
	id        string
	createdAt time.Time

	prices PriceProvider
	clock  TimeProvider

	cash             Money
	netContributions Money
	initialDeposit   Money
	initialDepositAt time.Time
	holdings         map[string]Quantity
	ledger           *Ledger
}

// Option configures an Account at construction.
type Option func(*Account)

// WithID sets the account identifier instead of minting one.
func WithID(id string) Option {
	return func(a *Account) { a.id = id }
}

// WithPriceProvider injects the price source used to resolve trade prices
// and valuations. Defaults to DefaultPrices().
func WithPriceProvider(p PriceProvider) Option {
	return func(a *Account) { a.prices = p }
}

// WithTimeProvider injects the clock used to timestamp records. Defaults to
// the system clock in UTC.
func WithTimeProvider(t TimeProvider) Option {
	return func(a *Account) { a.clock = t }
}

// NewAccount creates an empty account for owner. State and ledger are
// created together, empty.
func NewAccount(owner string, opts ...Option) (*Account, error) {
	name := strings.TrimSpace(owner)
	if name == "" {
		return nil, errors.New("owner name must not be empty")
	}
	a := &Account{
		owner:    name,
		prices:   DefaultPrices(),
		clock:    systemClock,
		holdings: make(map[string]Quantity),
		ledger:   NewLedger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.id == "" {
		a.id = newTxID()
	}
	a.createdAt = a.clock.Now()
	return a, nil
}

// NewAccountFromLedger rebuilds the live state of an account by replaying an
// existing ledger from the empty state. The ledger becomes owned by the
// returned account.
func NewAccountFromLedger(owner string, l *Ledger, opts ...Option) (*Account, error) {
	a, err := NewAccount(owner, opts...)
	if err != nil {
		return nil, err
	}
	snap := replayLedger(l, time.Time{})
	a.ledger = l
	a.cash = snap.Cash
	a.netContributions = snap.NetContributions
	a.initialDeposit = snap.InitialDeposit
	a.initialDepositAt = snap.InitialDepositAt
	a.holdings = snap.Holdings
	if first := l.OldestTime(); !first.IsZero() {
		a.createdAt = first
	}
	return a, nil
}

// Owner returns the account owner's name.
func (a *Account) Owner() string { return a.owner }

// ID returns the opaque account identifier.
func (a *Account) ID() string { return a.id }

// CreatedAt returns the instant the account was created.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// CashBalance returns the current cash balance. It is never negative.
func (a *Account) CashBalance() Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cash
}

// NetContributions returns cumulative deposits minus cumulative withdrawals,
// independent of trading activity.
func (a *Account) NetContributions() Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.netContributions
}

// InitialDeposit returns the amount of the first deposit ever recorded, or
// zero before any deposit.
func (a *Account) InitialDeposit() Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.initialDeposit
}

// Holdings returns a copy of the holdings map. Symbols map to positive
// quantities only; a position sold down to zero has no entry.
func (a *Account) Holdings() map[string]Quantity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return copyHoldings(a.holdings)
}

// Position returns the held quantity for a symbol, zero when not held.
func (a *Account) Position(symbol string) Quantity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, err := NormalizeSymbol(symbol)
	if err != nil {
		return 0
	}
	return a.holdings[s]
}

// Transactions returns the ledger records matching the query, as independent
// copies.
func (a *Account) Transactions(q TxQuery) []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ledger.Select(q)
}

// LastTransaction returns the most recently appended ledger record, if any.
func (a *Account) LastTransaction() (Transaction, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ledger.Last()
}

// LedgerLen returns the number of ledger records.
func (a *Account) LedgerLen() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ledger.Len()
}

// Deposit adds cash to the account. The amount must be positive. The first
// deposit ever recorded also sets the initial-deposit marker.
func (a *Account) Deposit(amount Money, note string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := checkPositiveAmount(amount); err != nil {
		return err
	}
	now := a.clock.Now()
	a.cash = a.cash.Add(amount)
	a.netContributions = a.netContributions.Add(amount)
	if a.initialDeposit.IsZero() {
		a.initialDeposit = amount
		a.initialDepositAt = now
	}
	a.ledger.Append(Transaction{
		ID:        newTxID(),
		Time:      now,
		Kind:      KindDeposit,
		CashDelta: amount,
		CashAfter: a.cash,
		Note:      note,
	})
	return nil
}

// Withdraw removes cash from the account. The amount must be positive and
// must not exceed the cash balance.
func (a *Account) Withdraw(amount Money, note string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := checkPositiveAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.cash) {
		return fmt.Errorf("%w: cannot withdraw %s, cash balance is %s", ErrInsufficientFunds, amount, a.cash)
	}
	a.cash = a.cash.Sub(amount)
	a.netContributions = a.netContributions.Sub(amount)
	a.ledger.Append(Transaction{
		ID:        newTxID(),
		Time:      a.clock.Now(),
		Kind:      KindWithdraw,
		CashDelta: amount.Neg(),
		CashAfter: a.cash,
		Note:      note,
	})
	return nil
}

// Buy purchases quantity shares of symbol and returns the rounded cost. A
// zero price means "use the price provider"; an explicit price must be
// positive. The cost must not exceed the cash balance.
func (a *Account) Buy(symbol string, quantity Quantity, price Money, note string) (Money, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return Money{}, err
	}
	if err := checkPositiveQuantity(quantity); err != nil {
		return Money{}, err
	}
	unit, err := a.resolvePrice(sym, price)
	if err != nil {
		return Money{}, err
	}
	cost := unit.Mul(quantity)
	if cost.GreaterThan(a.cash) {
		return Money{}, fmt.Errorf("%w: cost %s exceeds cash balance %s", ErrInsufficientFunds, cost, a.cash)
	}
	a.cash = a.cash.Sub(cost)
	a.holdings[sym] = a.holdings[sym].Add(quantity)
	a.ledger.Append(Transaction{
		ID:        newTxID(),
		Time:      a.clock.Now(),
		Kind:      KindBuy,
		Symbol:    sym,
		Quantity:  quantity,
		UnitPrice: unit,
		CashDelta: cost.Neg(),
		CashAfter: a.cash,
		Note:      note,
	})
	return cost, nil
}

// Sell disposes of quantity shares of symbol and returns the rounded
// proceeds. The held position must cover the quantity; a position sold down
// to zero is removed from the holdings map entirely.
func (a *Account) Sell(symbol string, quantity Quantity, price Money, note string) (Money, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return Money{}, err
	}
	if err := checkPositiveQuantity(quantity); err != nil {
		return Money{}, err
	}
	held := a.holdings[sym]
	if held < quantity {
		return Money{}, fmt.Errorf("%w: cannot sell %s of %s, position is %s", ErrInsufficientHoldings, quantity, sym, held)
	}
	unit, err := a.resolvePrice(sym, price)
	if err != nil {
		return Money{}, err
	}
	proceeds := unit.Mul(quantity)
	a.cash = a.cash.Add(proceeds)
	if remaining := held.Sub(quantity); remaining.IsZero() {
		delete(a.holdings, sym)
	} else {
		a.holdings[sym] = remaining
	}
	a.ledger.Append(Transaction{
		ID:        newTxID(),
		Time:      a.clock.Now(),
		Kind:      KindSell,
		Symbol:    sym,
		Quantity:  quantity,
		UnitPrice: unit,
		CashDelta: proceeds,
		CashAfter: a.cash,
		Note:      note,
	})
	return proceeds, nil
}

// resolvePrice returns the explicit price when one was supplied (a zero
// price means "ask the provider"). Explicit prices must be positive;
// provider failures propagate as-is.
func (a *Account) resolvePrice(symbol string, price Money) (Money, error) {
	if !price.IsZero() {
		if price.IsNegative() {
			return Money{}, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidAmount, price)
		}
		return price, nil
	}
	p, err := a.prices.Price(symbol)
	if err != nil {
		return Money{}, err
	}
	if !p.IsPositive() {
		return Money{}, fmt.Errorf("%w: provider returned %s for %q", ErrPriceUnavailable, p, symbol)
	}
	return p, nil
}

// fetchPrice queries the provider for a held symbol, outside of any trade.
func (a *Account) fetchPrice(symbol string) (Money, error) {
	p, err := a.prices.Price(symbol)
	if err != nil {
		return Money{}, err
	}
	if !p.IsPositive() {
		return Money{}, fmt.Errorf("%w: provider returned %s for %q", ErrPriceUnavailable, p, symbol)
	}
	return p, nil
}

func copyHoldings(h map[string]Quantity) map[string]Quantity {
	out := make(map[string]Quantity, len(h))
	for sym, qty := range h {
		out[sym] = qty
	}
	return out
}
