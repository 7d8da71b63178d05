package brokerage

import (
	"fmt"
	"time"
)

// Snapshot is the account state derived purely from replaying ledger records
// up to a cutoff instant. It carries no reference back into the live account
// or the ledger.
type Snapshot struct {
	Cash             Money
	Holdings         map[string]Quantity
	NetContributions Money
	InitialDeposit   Money
	InitialDepositAt time.Time
}

// replayLedger folds ledger records into a snapshot, starting from the zero
// state. Records with a timestamp after the cutoff are skipped entirely; a
// zero cutoff replays the whole ledger. The fold applies each record's own
// stored fields (cash delta, quantity), never re-fetching prices, so the
// result is a pure function of (ledger, cutoff).
func replayLedger(l *Ledger, at time.Time) Snapshot {
	snap := Snapshot{Holdings: make(map[string]Quantity)}
	for _, tx := range l.Entries() {
		if !at.IsZero() && tx.Time.After(at) {
			// Insertion order is chronological, nothing later applies.
			break
		}
		switch tx.Kind {
		case KindDeposit:
			snap.Cash = snap.Cash.Add(tx.CashDelta)
			snap.NetContributions = snap.NetContributions.Add(tx.CashDelta)
			if snap.InitialDeposit.IsZero() {
				snap.InitialDeposit = tx.CashDelta
				snap.InitialDepositAt = tx.Time
			}
		case KindWithdraw:
			snap.Cash = snap.Cash.Add(tx.CashDelta)
			snap.NetContributions = snap.NetContributions.Add(tx.CashDelta)
		case KindBuy:
			snap.Cash = snap.Cash.Add(tx.CashDelta)
			snap.Holdings[tx.Symbol] = snap.Holdings[tx.Symbol].Add(tx.Quantity)
			if snap.Holdings[tx.Symbol].IsZero() {
				delete(snap.Holdings, tx.Symbol)
			}
		case KindSell:
			snap.Cash = snap.Cash.Add(tx.CashDelta)
			snap.Holdings[tx.Symbol] = snap.Holdings[tx.Symbol].Sub(tx.Quantity)
			if snap.Holdings[tx.Symbol].IsZero() {
				delete(snap.Holdings, tx.Symbol)
			}
		}
	}
	return snap
}

// SnapshotAt reconstructs the account state as of the given instant by
// replaying the ledger, independent of the live state. Calling it twice with
// the same instant against an unchanged ledger yields identical snapshots,
// and an instant at or after the last record reproduces the live state
// exactly.
func (a *Account) SnapshotAt(at time.Time) Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return replayLedger(a.ledger, at)
}

// Snapshot replays the full ledger.
func (a *Account) Snapshot() Snapshot {
	return a.SnapshotAt(time.Time{})
}

// HoldingsAt returns the holdings as of the given instant.
func (a *Account) HoldingsAt(at time.Time) map[string]Quantity {
	return a.SnapshotAt(at).Holdings
}

// CashBalanceAt returns the cash balance as of the given instant.
func (a *Account) CashBalanceAt(at time.Time) Money {
	return a.SnapshotAt(at).Cash
}

// Audit verifies the ledger-state equivalence invariants: replaying the full
// ledger must reproduce the live cash, holdings and net contributions, and
// every record's CashAfter must match the running balance at that point. A
// nil result means the ledger and the live state agree exactly.
func (a *Account) Audit() error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var running Money
	for i, tx := range a.ledger.Entries() {
		running = running.Add(tx.CashDelta)
		if !running.Equal(tx.CashAfter) {
			return fmt.Errorf("record %d (%s): cash after is %s, running balance is %s", i, tx.ID, tx.CashAfter, running)
		}
	}

	snap := replayLedger(a.ledger, time.Time{})
	if !snap.Cash.Equal(a.cash) {
		return fmt.Errorf("replayed cash %s differs from live cash %s", snap.Cash, a.cash)
	}
	if !snap.NetContributions.Equal(a.netContributions) {
		return fmt.Errorf("replayed net contributions %s differ from live %s", snap.NetContributions, a.netContributions)
	}
	if len(snap.Holdings) != len(a.holdings) {
		return fmt.Errorf("replayed holdings have %d symbols, live state has %d", len(snap.Holdings), len(a.holdings))
	}
	for sym, qty := range a.holdings {
		if snap.Holdings[sym] != qty {
			return fmt.Errorf("replayed holding %s=%s differs from live %s", sym, snap.Holdings[sym], qty)
		}
	}
	return nil
}
