// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (session state, trips, ledgers) and contracts
// (interfaces) only.
package domain
