package brokerage

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotAtCutoffs(t *testing.T) {
	clock := newFakeClock()
	a, err := NewAccount("alice", WithTimeProvider(clock))
	require.NoError(t, err)

	require.NoError(t, a.Deposit(M(10000), ""))
	afterDeposit := clock.now

	_, err = a.Buy("AAPL", 10, Money{}, "")
	require.NoError(t, err)
	afterBuy := clock.now

	_, err = a.Sell("AAPL", 4, Money{}, "")
	require.NoError(t, err)

	// Before anything happened.
	snap := a.SnapshotAt(afterDeposit.Add(-time.Hour))
	assert.True(t, snap.Cash.IsZero())
	assert.Empty(t, snap.Holdings)
	assert.True(t, snap.InitialDeposit.IsZero())

	// Right after the deposit.
	snap = a.SnapshotAt(afterDeposit)
	assert.Equal(t, "10000.00", snap.Cash.String())
	assert.Empty(t, snap.Holdings)
	assert.Equal(t, "10000.00", snap.InitialDeposit.String())

	// Right after the buy.
	snap = a.SnapshotAt(afterBuy)
	assert.Equal(t, "8100.00", snap.Cash.String())
	assert.Equal(t, map[string]Quantity{"AAPL": 10}, snap.Holdings)

	// At or after the last record the snapshot reproduces the live state.
	snap = a.Snapshot()
	assert.True(t, snap.Cash.Equal(a.CashBalance()))
	assert.Equal(t, a.Holdings(), snap.Holdings)
	assert.True(t, snap.NetContributions.Equal(a.NetContributions()))
}

func TestSnapshotIsIdempotent(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Deposit(M(500), ""))
	_, err := a.Buy("GOOGL", 2, Money{}, "")
	require.NoError(t, err)

	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	first := a.SnapshotAt(at)
	second := a.SnapshotAt(at)
	assert.True(t, first.Cash.Equal(second.Cash))
	assert.Equal(t, first.Holdings, second.Holdings)
	assert.True(t, first.NetContributions.Equal(second.NetContributions))

	// Snapshots are detached: mutating one must not leak anywhere.
	first.Holdings["GOOGL"] = 999
	assert.Equal(t, Quantity(2), a.Position("GOOGL"))
	assert.Equal(t, Quantity(2), a.SnapshotAt(at).Holdings["GOOGL"])
}

// Replaying the ledger after a random but valid sequence of operations must
// land exactly on the live state.
func TestReplayMatchesLiveStateAfterRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := newTestAccount(t)
	require.NoError(t, a.Deposit(M(100000), "seed"))

	symbols := []string{"AAPL", "TSLA", "GOOGL"}
	for i := 0; i < 200; i++ {
		sym := symbols[rng.Intn(len(symbols))]
		qty := Quantity(rng.Intn(5) + 1)
		switch rng.Intn(4) {
		case 0:
			a.Deposit(M(int64(rng.Intn(500)+1)), "")
		case 1:
			a.Withdraw(M(int64(rng.Intn(500)+1)), "")
		case 2:
			a.Buy(sym, qty, Money{}, "")
		case 3:
			a.Sell(sym, qty, Money{}, "")
		}
	}

	require.NoError(t, a.Audit())
	snap := a.Snapshot()
	assert.True(t, snap.Cash.Equal(a.CashBalance()))
	assert.Equal(t, a.Holdings(), snap.Holdings)
	assert.True(t, snap.NetContributions.Equal(a.NetContributions()))
	assert.True(t, snap.InitialDeposit.Equal(a.InitialDeposit()))
}

func TestNewAccountFromLedger(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Deposit(M(10000), ""))
	_, err := a.Buy("AAPL", 10, Money{}, "")
	require.NoError(t, err)
	_, err = a.Sell("AAPL", 3, Money{}, "")
	require.NoError(t, err)

	ledger := NewLedger()
	ledger.Append(a.Transactions(TxQuery{})...)

	rebuilt, err := NewAccountFromLedger("alice", ledger)
	require.NoError(t, err)
	assert.True(t, rebuilt.CashBalance().Equal(a.CashBalance()))
	assert.Equal(t, a.Holdings(), rebuilt.Holdings())
	assert.True(t, rebuilt.NetContributions().Equal(a.NetContributions()))
	assert.True(t, rebuilt.InitialDeposit().Equal(a.InitialDeposit()))
	assert.Equal(t, ledger.OldestTime(), rebuilt.CreatedAt())
	require.NoError(t, rebuilt.Audit())
}
