// Package paycal reconciles a fixed payment schedule with what was really
// paid, and values the early payoff of what remains. It is designed to be
// local-first: the schedule is never modified, user corrections live in a
// separate, sparse set of overrides.
//
// The core functionalities include:
//   - Schedule Loading: Reading project datasets of planned payments, in USD
//     with optional actual amounts in UAH, into an immutable Schedule.
//   - Reconciliation: A stateless engine (BuildView) that turns a record, its
//     override, the exchange rates and the current date into a consistent
//     view in both currencies.
//   - Rollups: Aggregating views by month, quarter or year, and summarizing
//     what is paid and what remains.
//   - Early Payoff: Valuing the remaining installments of each project with a
//     configurable SettlementStrategy.
//   - State Persistence: The Tracker stores overrides, settings and snapshots
//     through a key/value Storage, with a bounded snapshot history.
//
// This package serves as the foundational logic for the `pcal` command-line
// tool. Every user action is followed by a full recomputation (Compute), no
// derived state is ever stored.
package paycal
