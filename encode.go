package brokerage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// EncodeTransaction marshals a single record to JSON and writes it to w
// followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists every record of the ledger to w in JSONL format, in
// insertion order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for _, tx := range l.Entries() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream produced by EncodeLedger and returns the
// reconstructed ledger. Records must arrive in chronological order: the
// ledger is append-only and never re-sorted, so an out-of-order record is a
// corruption of the stream, not something to fix up.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	var lastTime time.Time

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
		}
		if tx.Time.Before(lastTime) {
			return nil, fmt.Errorf("transaction %s at %s is older than its predecessor at %s", tx.ID, tx.Time, lastTime)
		}
		lastTime = tx.Time
		ledger.Append(tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger stream: %w", err)
	}
	return ledger, nil
}

// AccountDocument is the plain structured representation of an account. All
// monetary amounts are exact decimal strings and all instants round-trip
// through RFC 3339, so encoding and reconstructing an account loses nothing.
type AccountDocument struct {
	ID               string              `json:"account_id"`
	Owner            string              `json:"owner_name"`
	CreatedAt        time.Time           `json:"created_at"`
	Cash             Money               `json:"cash_balance"`
	NetContributions Money               `json:"net_contributions"`
	InitialDeposit   Money               `json:"initial_deposit"`
	Holdings         map[string]Quantity `json:"holdings"`
	Transactions     []Transaction       `json:"transactions"`
}

// Document captures the full account state, ledger included, as a plain
// record suitable for serialization.
func (a *Account) Document() AccountDocument {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return AccountDocument{
		ID:               a.id,
		Owner:            a.owner,
		CreatedAt:        a.createdAt,
		Cash:             a.cash,
		NetContributions: a.netContributions,
		InitialDeposit:   a.initialDeposit,
		Holdings:         copyHoldings(a.holdings),
		Transactions:     a.ledger.Select(TxQuery{}),
	}
}

// NewAccountFromDocument reconstructs an account from its plain
// representation. Holdings symbols are re-normalized and zero positions
// dropped; the initial-deposit timestamp is recovered from the first DEPOSIT
// record.
func NewAccountFromDocument(doc AccountDocument, opts ...Option) (*Account, error) {
	a, err := NewAccount(doc.Owner, opts...)
	if err != nil {
		return nil, err
	}
	if doc.ID != "" {
		a.id = doc.ID
	}
	if !doc.CreatedAt.IsZero() {
		a.createdAt = doc.CreatedAt
	}
	a.cash = doc.Cash
	a.netContributions = doc.NetContributions
	a.initialDeposit = doc.InitialDeposit
	a.holdings = make(map[string]Quantity, len(doc.Holdings))
	for sym, qty := range doc.Holdings {
		normalized, err := NormalizeSymbol(sym)
		if err != nil {
			return nil, err
		}
		if !qty.IsZero() {
			a.holdings[normalized] = qty
		}
	}
	a.ledger = NewLedger()
	a.ledger.Append(doc.Transactions...)
	for _, tx := range a.ledger.Entries(ByKind(KindDeposit)) {
		a.initialDepositAt = tx.Time
		break
	}
	return a, nil
}
