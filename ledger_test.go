package brokerage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerFixture() (*Ledger, []time.Time) {
	base := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour), base.Add(3 * time.Hour)}

	l := NewLedger()
	l.Append(
		Transaction{ID: "t1", Time: times[0], Kind: KindDeposit, CashDelta: M(1000), CashAfter: M(1000)},
		Transaction{ID: "t2", Time: times[1], Kind: KindBuy, Symbol: "AAPL", Quantity: 2, UnitPrice: M(190), CashDelta: M(-380), CashAfter: M(620)},
		Transaction{ID: "t3", Time: times[2], Kind: KindSell, Symbol: "AAPL", Quantity: 1, UnitPrice: M(190), CashDelta: M(190), CashAfter: M(810)},
		Transaction{ID: "t4", Time: times[3], Kind: KindWithdraw, CashDelta: M(-10), CashAfter: M(800)},
	)
	return l, times
}

func TestLedgerEntriesOrderAndFilters(t *testing.T) {
	l, times := ledgerFixture()

	var ids []string
	for _, tx := range l.Entries() {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, ids)

	ids = nil
	for _, tx := range l.Entries(ByKind(KindBuy, KindSell)) {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t2", "t3"}, ids)

	// Filters are conjunctive.
	ids = nil
	for _, tx := range l.Entries(ByKind(KindBuy, KindSell), NotAfter(times[1])) {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t2"}, ids)

	ids = nil
	for _, tx := range l.Reversed(BySymbol("AAPL")) {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t3", "t2"}, ids)
}

func TestLedgerTimes(t *testing.T) {
	l, times := ledgerFixture()
	assert.Equal(t, times[0], l.OldestTime())
	assert.Equal(t, times[3], l.NewestTime())

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, "t4", last.ID)

	empty := NewLedger()
	assert.True(t, empty.OldestTime().IsZero())
	_, ok = empty.Last()
	assert.False(t, ok)
}

func TestLedgerSelect(t *testing.T) {
	l, times := ledgerFixture()

	// Inclusive bounds.
	got := l.Select(TxQuery{Since: &times[1], Until: &times[2]})
	require.Len(t, got, 2)
	assert.Equal(t, "t2", got[0].ID)
	assert.Equal(t, "t3", got[1].ID)

	// Kinds.
	got = l.Select(TxQuery{Kinds: []TxKind{KindDeposit, KindWithdraw}})
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t4", got[1].ID)

	// Newest first, then limit.
	got = l.Select(TxQuery{NewestFirst: true, Limit: 2})
	require.Len(t, got, 2)
	assert.Equal(t, "t4", got[0].ID)
	assert.Equal(t, "t3", got[1].ID)

	// Zero limit means everything.
	assert.Len(t, l.Select(TxQuery{}), 4)
}

func TestLedgerSelectReturnsCopies(t *testing.T) {
	l, _ := ledgerFixture()
	got := l.Select(TxQuery{})
	got[0].Note = "scribbled on"

	again := l.Select(TxQuery{})
	assert.Empty(t, again[0].Note)
}
