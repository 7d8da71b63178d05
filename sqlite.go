package brokerage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ledgerSchema mirrors the ledger record layout. seq preserves insertion
// order; the unique id makes re-mirroring the same records idempotent.
const ledgerSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	time       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	symbol     TEXT,
	quantity   INTEGER,
	unit_price TEXT,
	cash_delta TEXT NOT NULL,
	cash_after TEXT NOT NULL,
	note       TEXT
);`

// LedgerStore archives ledger records in a SQLite database. It is a
// persistence collaborator, not part of the core: the JSONL ledger file
// stays the source of truth and the store only mirrors it into a queryable
// table.
type LedgerStore struct {
	db *sql.DB
}

// OpenLedgerStore opens (and creates, if needed) the database at path.
func OpenLedgerStore(path string) (*LedgerStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger store %q: %w", path, err)
	}
	if _, err := db.Exec(ledgerSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create ledger schema: %w", err)
	}
	return &LedgerStore{db: db}, nil
}

// Append mirrors records into the store. Records already present (by id)
// are skipped, so mirroring the same ledger twice is harmless.
func (s *LedgerStore) Append(txs ...Transaction) error {
	for _, tx := range txs {
		var symbol, unitPrice, note sql.NullString
		var quantity sql.NullInt64
		if tx.Kind.IsTrade() {
			symbol = sql.NullString{String: tx.Symbol, Valid: true}
			unitPrice = sql.NullString{String: tx.UnitPrice.String(), Valid: true}
			quantity = sql.NullInt64{Int64: tx.Quantity.Int64(), Valid: true}
		}
		if tx.Note != "" {
			note = sql.NullString{String: tx.Note, Valid: true}
		}
		_, err := s.db.Exec(`
			INSERT OR IGNORE INTO transactions
			(id, time, kind, symbol, quantity, unit_price, cash_delta, cash_after, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.Time.UTC().Format(time.RFC3339Nano), string(tx.Kind),
			symbol, quantity, unitPrice, tx.CashDelta.String(), tx.CashAfter.String(), note,
		)
		if err != nil {
			return fmt.Errorf("could not archive transaction %s: %w", tx.ID, err)
		}
	}
	return nil
}

// Load reads every archived record back, in insertion order.
func (s *LedgerStore) Load() (*Ledger, error) {
	rows, err := s.db.Query(`
		SELECT id, time, kind, symbol, quantity, unit_price, cash_delta, cash_after, note
		FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger store: %w", err)
	}
	defer rows.Close()

	ledger := NewLedger()
	for rows.Next() {
		var (
			tx                      Transaction
			when                    string
			kind                    string
			symbol, unitPrice, note sql.NullString
			quantity                sql.NullInt64
			cashDelta, cashAfter    string
		)
		if err := rows.Scan(&tx.ID, &when, &kind, &symbol, &quantity, &unitPrice, &cashDelta, &cashAfter, &note); err != nil {
			return nil, err
		}
		if tx.Time, err = time.Parse(time.RFC3339Nano, when); err != nil {
			return nil, fmt.Errorf("invalid archived time %q: %w", when, err)
		}
		if tx.Kind, err = ParseTxKind(kind); err != nil {
			return nil, err
		}
		if symbol.Valid {
			tx.Symbol = symbol.String
		}
		if quantity.Valid {
			tx.Quantity = Quantity(quantity.Int64)
		}
		if unitPrice.Valid {
			if tx.UnitPrice, err = ParseMoney(unitPrice.String); err != nil {
				return nil, err
			}
		}
		if tx.CashDelta, err = ParseMoney(cashDelta); err != nil {
			return nil, err
		}
		if tx.CashAfter, err = ParseMoney(cashAfter); err != nil {
			return nil, err
		}
		if note.Valid {
			tx.Note = note.String
		}
		ledger.Append(tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// Close releases the underlying database handle.
func (s *LedgerStore) Close() error { return s.db.Close() }
