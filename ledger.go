package brokerage

import (
	"iter"
	"time"
)

// Ledger is an append-only log of transactions in insertion order.
//
// Insertion order is chronological by contract: callers obtain timestamps
// from a single time provider and append as they go, so the ledger never
// re-sorts. The ledger performs no validation of its own; records arrive
// already validated and internally consistent from the account operations.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append adds records to the end of the ledger. Records are never mutated or
// removed afterwards.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.transactions) }

// Last returns the most recently appended record, if any.
func (l *Ledger) Last() (Transaction, bool) {
	if len(l.transactions) == 0 {
		return Transaction{}, false
	}
	return l.transactions[len(l.transactions)-1], true
}

// OldestTime returns the timestamp of the first record, or the zero time for
// an empty ledger.
func (l *Ledger) OldestTime() time.Time {
	if len(l.transactions) == 0 {
		return time.Time{}
	}
	return l.transactions[0].Time
}

// NewestTime returns the timestamp of the last record, or the zero time for
// an empty ledger.
func (l *Ledger) NewestTime() time.Time {
	if len(l.transactions) == 0 {
		return time.Time{}
	}
	return l.transactions[len(l.transactions)-1].Time
}

// Entries returns a lazy, restartable iterator over the records in insertion
// order. A record is yielded only when every filter accepts it; with no
// filters every record is yielded. The yielded values are copies, so callers
// cannot reach into ledger state through them.
func (l *Ledger) Entries(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !acceptAll(tx, filters) {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Reversed is like Entries but yields records from newest to oldest.
func (l *Ledger) Reversed(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i := len(l.transactions) - 1; i >= 0; i-- {
			tx := l.transactions[i]
			if !acceptAll(tx, filters) {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

func acceptAll(tx Transaction, filters []func(Transaction) bool) bool {
	for _, filter := range filters {
		if !filter(tx) {
			return false
		}
	}
	return true
}

// ByKind returns a predicate accepting records of any of the given kinds.
func ByKind(kinds ...TxKind) func(Transaction) bool {
	set := make(map[TxKind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return func(tx Transaction) bool {
		_, ok := set[tx.Kind]
		return ok
	}
}

// BySymbol returns a predicate accepting trade records for the given symbol.
func BySymbol(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// NotBefore returns a predicate accepting records at or after t.
func NotBefore(t time.Time) func(Transaction) bool {
	return func(tx Transaction) bool { return !tx.Time.Before(t) }
}

// NotAfter returns a predicate accepting records at or before t.
func NotAfter(t time.Time) func(Transaction) bool {
	return func(tx Transaction) bool { return !tx.Time.After(t) }
}
