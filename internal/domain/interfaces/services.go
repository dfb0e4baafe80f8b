package interfaces

import (
	"context"

	domaintypes "tripplanner/internal/domain/types"
)

// TripService creates, selects and updates trips.
type TripService interface {
	CreateTrip(st *domaintypes.State, name string) error
	SelectTrip(st *domaintypes.State, name string) error
	UpdateTrip(st *domaintypes.State, name string, update domaintypes.TripUpdate) error
	GetTrip(st *domaintypes.State, name string) (domaintypes.Trip, error)
	ListTrips(st *domaintypes.State) []domaintypes.Trip
	ActiveTrip(st *domaintypes.State) (domaintypes.Trip, error)
}

// ItineraryService derives day slots from a trip's dates and stores entries.
type ItineraryService interface {
	ListDays(st *domaintypes.State, trip string) ([]domaintypes.ItineraryDay, error)
	SaveDay(st *domaintypes.State, trip string, day int, slots domaintypes.DaySlots) (domaintypes.ItineraryEntry, error)
	ListEntries(st *domaintypes.State, trip string) ([]domaintypes.ItineraryEntry, error)
}

// BudgetService records expenses and summarises them.
type BudgetService interface {
	AddExpense(
		st *domaintypes.State,
		trip string,
		category domaintypes.Category,
		amount float64,
		description string,
	) (domaintypes.Expense, error)
	DeleteExpense(st *domaintypes.State, trip string, index int) error
	ListExpenses(st *domaintypes.State, trip string) ([]domaintypes.Expense, error)
	Summarize(st *domaintypes.State, trip string) (domaintypes.BudgetSummary, error)
}

// FavoritesService maintains the session-wide favorite places.
type FavoritesService interface {
	AddFavorite(st *domaintypes.State, place string) error
	RemoveFavorite(st *domaintypes.State, index int) error
	ListFavorites(st *domaintypes.State) []string
}

// PackingService maintains a trip's packing checklist.
type PackingService interface {
	AddItem(st *domaintypes.State, trip, label string) error
	SetPacked(st *domaintypes.State, trip string, index int, packed bool) error
	RemoveItem(st *domaintypes.State, trip string, index int) error
	ListItems(st *domaintypes.State, trip string) ([]domaintypes.PackingItem, error)
	Progress(st *domaintypes.State, trip string) (domaintypes.PackingProgress, error)
}

// NoteService maintains the session-wide travel notes.
type NoteService interface {
	AddNote(st *domaintypes.State, text string) error
	RemoveNote(st *domaintypes.State, index int) error
	ListNotes(st *domaintypes.State) []domaintypes.Note
}

// AdviceService turns trip context into prompts and asks the inference
// endpoint. It never touches session state.
type AdviceService interface {
	TripAdvice(ctx context.Context, req domaintypes.AdviceRequest) (string, error)
	AnswerQuestion(ctx context.Context, destination, question string) (string, error)
}
