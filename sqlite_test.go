package brokerage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *LedgerStore {
	t.Helper()
	store, err := OpenLedgerStore(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLedgerStoreRoundTrip(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Deposit(M(10000), "funding"))
	_, err := a.Buy("AAPL", 10, Money{}, "")
	require.NoError(t, err)
	_, err = a.Sell("AAPL", 3, Money{}, "partial exit")
	require.NoError(t, err)

	store := openTestStore(t)
	want := a.Transactions(TxQuery{})
	require.NoError(t, store.Append(want...))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, len(want), loaded.Len())
	for i, got := range loaded.Select(TxQuery{}) {
		assert.True(t, got.Equal(want[i]), "record %d: got %s, want %s", i, got, want[i])
	}
}

func TestLedgerStoreAppendIsIdempotent(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Deposit(M(100), ""))

	store := openTestStore(t)
	txs := a.Transactions(TxQuery{})
	require.NoError(t, store.Append(txs...))
	require.NoError(t, store.Append(txs...))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestLedgerStoreEmpty(t *testing.T) {
	store := openTestStore(t)
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())
}
