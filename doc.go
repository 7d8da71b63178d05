// Package brokerage tracks a single trading account: its cash balance, its
// equity holdings, and an immutable, append-only ledger of every deposit,
// withdrawal, buy and sell.
//
// The ledger is the source of truth. The live account state is maintained
// incrementally on each operation, and the same state is independently
// re-derivable by replaying the ledger from empty, which is how every
// "as of" query is answered. The two must never diverge; Audit checks that
// they do not.
//
// Monetary amounts are exact decimals with a fixed scale of two places and
// half-up rounding at every monetary boundary. Prices and timestamps come
// from pluggable providers, so tests substitute deterministic ones.
//
// As-of valuations use the provider's current prices, not historical ones:
// no price series is recorded. This is a deliberate simplification.
package brokerage
