// Package budget is the expense ledger of a trip.
//
// Expenses are appended with a timestamp and removed by position. Summaries
// total the ledger per category (largest first, ties in order of first
// appearance) and compare it with the trip budget.
package budget
