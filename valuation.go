package brokerage

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Basis selects the reference amount against which profit/loss is measured.
type Basis int

const (
	// NetContributions measures against cumulative deposits minus
	// withdrawals.
	NetContributions Basis = iota
	// InitialOnly measures against the first deposit ever recorded.
	InitialOnly
)

func (b Basis) String() string {
	switch b {
	case NetContributions:
		return "net_contributions"
	case InitialOnly:
		return "initial_only"
	default:
		return "unknown"
	}
}

// ParseBasis parses a string into a Basis.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "net_contributions":
		return NetContributions, nil
	case "initial_only":
		return InitialOnly, nil
	default:
		return 0, fmt.Errorf("unknown profit/loss basis: %q", s)
	}
}

// HoldingValuation is the market value of one held position.
type HoldingValuation struct {
	Symbol      string
	Quantity    Quantity
	Price       Money
	MarketValue Money
}

// PnL is a profit/loss report. Pct is nil when the basis amount is not
// positive: the ratio is undefined there, never a division error.
type PnL struct {
	PortfolioValue Money
	BasisAmount    Money
	Abs            Money
	Pct            *decimal.Decimal
}

// Valuation prices every held symbol once through the price provider and
// returns per-symbol market values, sorted by symbol. A provider failure
// propagates as-is; no symbol is silently skipped or zeroed.
func (a *Account) Valuation() ([]HoldingValuation, error) {
	return a.valueHoldings(a.Holdings())
}

// PortfolioValue returns cash plus the market value of all holdings.
func (a *Account) PortfolioValue() (Money, error) {
	return a.portfolioValue(a.CashBalance(), a.Holdings())
}

// ProfitLoss reports absolute and relative profit/loss of the current
// portfolio value against the chosen basis.
func (a *Account) ProfitLoss(basis Basis) (PnL, error) {
	a.mu.RLock()
	cash := a.cash
	holdings := copyHoldings(a.holdings)
	var basisAmount Money
	switch basis {
	case NetContributions:
		basisAmount = a.netContributions
	case InitialOnly:
		basisAmount = a.initialDeposit
	default:
		a.mu.RUnlock()
		return PnL{}, fmt.Errorf("unknown profit/loss basis: %d", basis)
	}
	a.mu.RUnlock()

	pv, err := a.portfolioValue(cash, holdings)
	if err != nil {
		return PnL{}, err
	}
	return newPnL(pv, basisAmount), nil
}

// ValuationAt prices the holdings held as of the given instant. Prices are
// the provider's current prices, not historical ones: no price series is
// recorded, which is a known approximation of as-of valuations.
func (a *Account) ValuationAt(at time.Time) ([]HoldingValuation, error) {
	return a.valueHoldings(a.SnapshotAt(at).Holdings)
}

// PortfolioValueAt returns the as-of cash balance plus the as-of holdings
// valued at current prices.
func (a *Account) PortfolioValueAt(at time.Time) (Money, error) {
	snap := a.SnapshotAt(at)
	return a.portfolioValue(snap.Cash, snap.Holdings)
}

// ProfitLossAt reports profit/loss for the state as of the given instant.
// For the InitialOnly basis the initial deposit counts only when its record
// falls at or before the instant; otherwise the basis amount is zero and the
// percentage is absent.
func (a *Account) ProfitLossAt(at time.Time, basis Basis) (PnL, error) {
	snap := a.SnapshotAt(at)
	pv, err := a.portfolioValue(snap.Cash, snap.Holdings)
	if err != nil {
		return PnL{}, err
	}
	var basisAmount Money
	switch basis {
	case NetContributions:
		basisAmount = snap.NetContributions
	case InitialOnly:
		basisAmount = snap.InitialDeposit
	default:
		return PnL{}, fmt.Errorf("unknown profit/loss basis: %d", basis)
	}
	return newPnL(pv, basisAmount), nil
}

func newPnL(portfolioValue, basisAmount Money) PnL {
	report := PnL{
		PortfolioValue: portfolioValue,
		BasisAmount:    basisAmount,
		Abs:            portfolioValue.Sub(basisAmount),
	}
	if basisAmount.IsPositive() {
		pct := report.Abs.Decimal().Div(basisAmount.Decimal()).Round(pctScale)
		report.Pct = &pct
	}
	return report
}

// valueHoldings prices a detached holdings map. The provider is called
// outside the account lock: it is an external, potentially slow collaborator.
func (a *Account) valueHoldings(holdings map[string]Quantity) ([]HoldingValuation, error) {
	symbols := make([]string, 0, len(holdings))
	for sym := range holdings {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)

	out := make([]HoldingValuation, 0, len(symbols))
	for _, sym := range symbols {
		price, err := a.fetchPrice(sym)
		if err != nil {
			return nil, err
		}
		qty := holdings[sym]
		out = append(out, HoldingValuation{
			Symbol:      sym,
			Quantity:    qty,
			Price:       price,
			MarketValue: price.Mul(qty),
		})
	}
	return out, nil
}

func (a *Account) portfolioValue(cash Money, holdings map[string]Quantity) (Money, error) {
	valuations, err := a.valueHoldings(holdings)
	if err != nil {
		return Money{}, err
	}
	total := cash
	for _, v := range valuations {
		total = total.Add(v.MarketValue)
	}
	return total, nil
}
