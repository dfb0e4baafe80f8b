package domain

import (
	interfaces "tripplanner/internal/domain/interfaces"
	types "tripplanner/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID         = types.SessionID
	Slot              = types.Slot
	Trip              = types.Trip
	TripUpdate        = types.TripUpdate
	ItineraryEntry    = types.ItineraryEntry
	ItineraryDay      = types.ItineraryDay
	DaySlots          = types.DaySlots
	Category          = types.Category
	Expense           = types.Expense
	CategoryTotal     = types.CategoryTotal
	BudgetSummary     = types.BudgetSummary
	PackingItem       = types.PackingItem
	PackingProgress   = types.PackingProgress
	Note              = types.Note
	State             = types.State
	Session           = types.Session
	Warning           = types.Warning
	GenerationRequest = types.GenerationRequest
	AdviceRequest     = types.AdviceRequest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SessionStore     = interfaces.SessionStore
	SecretStore      = interfaces.SecretStore
	TextGenerator    = interfaces.TextGenerator
	TripService      = interfaces.TripService
	ItineraryService = interfaces.ItineraryService
	BudgetService    = interfaces.BudgetService
	FavoritesService = interfaces.FavoritesService
	PackingService   = interfaces.PackingService
	NoteService      = interfaces.NoteService
	AdviceService    = interfaces.AdviceService
)
