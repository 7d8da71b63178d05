package brokerage

import "time"

// TxQuery selects ledger records by time range and kind.
//
// Both bounds are inclusive and optional (nil leaves the bound open). Kinds
// restricts the result to the listed kinds when non-empty. Limit truncates
// the result when positive. NewestFirst reverses the ordering before the
// limit is applied.
type TxQuery struct {
	Since       *time.Time
	Until       *time.Time
	Kinds       []TxKind
	Limit       int
	NewestFirst bool
}

// Select returns the records matching the query. The result is an
// independent copy: mutating it has no effect on the ledger.
func (l *Ledger) Select(q TxQuery) []Transaction {
	filters := make([]func(Transaction) bool, 0, 3)
	if q.Since != nil {
		filters = append(filters, NotBefore(*q.Since))
	}
	if q.Until != nil {
		filters = append(filters, NotAfter(*q.Until))
	}
	if len(q.Kinds) > 0 {
		filters = append(filters, ByKind(q.Kinds...))
	}

	entries := l.Entries(filters...)
	if q.NewestFirst {
		entries = l.Reversed(filters...)
	}

	var out []Transaction
	for _, tx := range entries {
		out = append(out, tx)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}
