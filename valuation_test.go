package brokerage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuation(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Deposit(M(10000), ""))
	_, err := a.Buy("TSLA", 5, Money{}, "")
	require.NoError(t, err)
	_, err = a.Buy("AAPL", 10, Money{}, "")
	require.NoError(t, err)

	valuations, err := a.Valuation()
	require.NoError(t, err)
	require.Len(t, valuations, 2)

	// Sorted by symbol.
	assert.Equal(t, "AAPL", valuations[0].Symbol)
	assert.Equal(t, "1900.00", valuations[0].MarketValue.String())
	assert.Equal(t, "TSLA", valuations[1].Symbol)
	assert.Equal(t, "1250.00", valuations[1].MarketValue.String())
}

func TestProfitLossBases(t *testing.T) {
	prices := StaticPrices{"AAPL": M(200)}
	a := newTestAccount(t, WithPriceProvider(prices))

	require.NoError(t, a.Deposit(M(1000), ""))
	require.NoError(t, a.Deposit(M(500), ""))
	_, err := a.Buy("AAPL", 5, M(100), "")
	require.NoError(t, err)

	// Portfolio is 1000 cash + 5 x 200 = 2000.
	net, err := a.ProfitLoss(NetContributions)
	require.NoError(t, err)
	assert.Equal(t, "2000.00", net.PortfolioValue.String())
	assert.Equal(t, "1500.00", net.BasisAmount.String())
	assert.Equal(t, "500.00", net.Abs.String())
	require.NotNil(t, net.Pct)
	assert.Equal(t, "0.3333", net.Pct.String())

	initial, err := a.ProfitLoss(InitialOnly)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", initial.BasisAmount.String())
	assert.Equal(t, "1000.00", initial.Abs.String())
	require.NotNil(t, initial.Pct)
	assert.Equal(t, "1", initial.Pct.String())
}

func TestProfitLossWithoutPositiveBasis(t *testing.T) {
	a := newTestAccount(t)

	report, err := a.ProfitLoss(NetContributions)
	require.NoError(t, err)
	assert.True(t, report.BasisAmount.IsZero())
	assert.Nil(t, report.Pct)

	// Withdraw everything: net contributions drop to zero, percentage
	// disappears while the absolute figure stays.
	require.NoError(t, a.Deposit(M(100), ""))
	require.NoError(t, a.Withdraw(M(100), ""))
	report, err = a.ProfitLoss(NetContributions)
	require.NoError(t, err)
	assert.Nil(t, report.Pct)
	assert.Equal(t, "0.00", report.Abs.String())
}

func TestProfitLossAt(t *testing.T) {
	clock := newFakeClock()
	a, err := NewAccount("alice", WithTimeProvider(clock))
	require.NoError(t, err)

	beforeAnything := clock.now
	require.NoError(t, a.Deposit(M(1000), ""))
	afterDeposit := clock.now

	// Before the first deposit the initial-only basis is zero, so there is
	// no percentage to report.
	report, err := a.ProfitLossAt(beforeAnything, InitialOnly)
	require.NoError(t, err)
	assert.True(t, report.BasisAmount.IsZero())
	assert.Nil(t, report.Pct)

	report, err = a.ProfitLossAt(afterDeposit, InitialOnly)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", report.BasisAmount.String())
	require.NotNil(t, report.Pct)
}

func TestValuationAt(t *testing.T) {
	clock := newFakeClock()
	a, err := NewAccount("alice", WithTimeProvider(clock))
	require.NoError(t, err)

	require.NoError(t, a.Deposit(M(10000), ""))
	_, err = a.Buy("AAPL", 10, Money{}, "")
	require.NoError(t, err)
	afterBuy := clock.now
	_, err = a.Sell("AAPL", 10, Money{}, "")
	require.NoError(t, err)

	// As of the buy, the position is still open. Priced at current prices.
	valuations, err := a.ValuationAt(afterBuy)
	require.NoError(t, err)
	require.Len(t, valuations, 1)
	assert.Equal(t, Quantity(10), valuations[0].Quantity)

	pv, err := a.PortfolioValueAt(afterBuy)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", pv.String())

	// Now, everything is back in cash.
	valuations, err = a.Valuation()
	require.NoError(t, err)
	assert.Empty(t, valuations)
}

func TestValuationProviderFailure(t *testing.T) {
	flaky := PriceFunc(func(symbol string) (Money, error) {
		if symbol == "TSLA" {
			return Money{}, ErrPriceUnavailable
		}
		return M(190), nil
	})
	a := newTestAccount(t, WithPriceProvider(flaky))
	require.NoError(t, a.Deposit(M(10000), ""))
	_, err := a.Buy("AAPL", 1, Money{}, "")
	require.NoError(t, err)
	_, err = a.Buy("TSLA", 1, M(250), "")
	require.NoError(t, err)

	_, err = a.Valuation()
	assert.ErrorIs(t, err, ErrPriceUnavailable)
	_, err = a.PortfolioValue()
	assert.ErrorIs(t, err, ErrPriceUnavailable)
	_, err = a.ProfitLoss(NetContributions)
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestParseBasis(t *testing.T) {
	b, err := ParseBasis("net_contributions")
	require.NoError(t, err)
	assert.Equal(t, NetContributions, b)
	b, err = ParseBasis("initial_only")
	require.NoError(t, err)
	assert.Equal(t, InitialOnly, b)
	_, err = ParseBasis("alpha")
	assert.Error(t, err)
}
