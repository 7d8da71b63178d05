package brokerage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TxKind is a typed string identifying the kind of a ledger record.
type TxKind string

// The four kinds of events an account records.
const (
	KindDeposit  TxKind = "DEPOSIT"
	KindWithdraw TxKind = "WITHDRAW"
	KindBuy      TxKind = "BUY"
	KindSell     TxKind = "SELL"
)

// ParseTxKind parses a string into a TxKind, case-insensitively.
func ParseTxKind(s string) (TxKind, error) {
	switch k := TxKind(normalizeUpper(s)); k {
	case KindDeposit, KindWithdraw, KindBuy, KindSell:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// IsTrade reports whether the kind moves holdings as well as cash.
func (k TxKind) IsTrade() bool { return k == KindBuy || k == KindSell }

// Transaction is one immutable record of the ledger. Once appended it is
// never modified or removed.
//
// Symbol, Quantity and UnitPrice are set only on BUY and SELL records.
// CashDelta is signed: positive for DEPOSIT and SELL, negative for WITHDRAW
// and BUY. CashAfter is the cash balance immediately after the record was
// applied; it is redundant and exists for auditing.
type Transaction struct {
	ID        string
	Time      time.Time
	Kind      TxKind
	Symbol    string
	Quantity  Quantity
	UnitPrice Money
	CashDelta Money
	CashAfter Money
	Note      string
}

// newTxID mints an opaque unique record identifier.
func newTxID() string { return uuid.NewString() }

// MarshalJSON writes the record with a canonical field order so that encoded
// ledgers are diff-friendly. Trade-only fields are omitted on cash records.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("time", t.Time.UTC().Format(time.RFC3339Nano))
	w.Append("kind", t.Kind)
	w.Optional("symbol", t.Symbol)
	if t.Kind.IsTrade() {
		w.Append("quantity", t.Quantity)
		w.Append("unitPrice", t.UnitPrice)
	}
	w.Append("cashDelta", t.CashDelta)
	w.Append("cashAfter", t.CashAfter)
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID        string   `json:"id"`
		Time      string   `json:"time"`
		Kind      TxKind   `json:"kind"`
		Symbol    string   `json:"symbol"`
		Quantity  Quantity `json:"quantity"`
		UnitPrice Money    `json:"unitPrice"`
		CashDelta Money    `json:"cashDelta"`
		CashAfter Money    `json:"cashAfter"`
		Note      string   `json:"note"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	when, err := time.Parse(time.RFC3339Nano, temp.Time)
	if err != nil {
		return fmt.Errorf("invalid transaction time %q: %w", temp.Time, err)
	}
	if _, err := ParseTxKind(string(temp.Kind)); err != nil {
		return err
	}
	t.ID = temp.ID
	t.Time = when
	t.Kind = temp.Kind
	t.Symbol = temp.Symbol
	t.Quantity = temp.Quantity
	t.UnitPrice = temp.UnitPrice
	t.CashDelta = temp.CashDelta
	t.CashAfter = temp.CashAfter
	t.Note = temp.Note
	return nil
}

// Equal reports whether two records carry the same content.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Time.Equal(o.Time) &&
		t.Kind == o.Kind &&
		t.Symbol == o.Symbol &&
		t.Quantity == o.Quantity &&
		t.UnitPrice.Equal(o.UnitPrice) &&
		t.CashDelta.Equal(o.CashDelta) &&
		t.CashAfter.Equal(o.CashAfter) &&
		t.Note == o.Note
}

func (t Transaction) String() string {
	if t.Kind.IsTrade() {
		return fmt.Sprintf("%s %s %s x%s @%s cashDelta=%s cashAfter=%s",
			t.Time.UTC().Format(time.RFC3339), t.Kind, t.Symbol, t.Quantity, t.UnitPrice, t.CashDelta, t.CashAfter)
	}
	return fmt.Sprintf("%s %s cashDelta=%s cashAfter=%s",
		t.Time.UTC().Format(time.RFC3339), t.Kind, t.CashDelta, t.CashAfter)
}
