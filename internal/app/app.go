package app

import (
	"log/slog"
	"time"

	"tripplanner/internal/domain"
	advicesvc "tripplanner/internal/services/advice"
	budgetsvc "tripplanner/internal/services/budget"
	favoritesvc "tripplanner/internal/services/favorites"
	itinerarysvc "tripplanner/internal/services/itinerary"
	notesvc "tripplanner/internal/services/notes"
	packingsvc "tripplanner/internal/services/packing"
	tripsvc "tripplanner/internal/services/trip"
)

// App groups the planning services shared by every front end.
type App struct {
	Trips     domain.TripService
	Itinerary domain.ItineraryService
	Budget    domain.BudgetService
	Favorites domain.FavoritesService
	Packing   domain.PackingService
	Notes     domain.NoteService
	Advice    domain.AdviceService
}

// New builds the planning services. gen backs the advice service; timeout
// bounds each advice call and now stamps expenses and notes.
func New(gen domain.TextGenerator, timeout time.Duration, now func() time.Time, logger *slog.Logger) *App {
	return &App{
		Trips:     tripsvc.New(logger),
		Itinerary: itinerarysvc.New(logger),
		Budget:    budgetsvc.New(logger, now),
		Favorites: favoritesvc.New(logger),
		Packing:   packingsvc.New(logger),
		Notes:     notesvc.New(logger, now),
		Advice:    advicesvc.New(gen, timeout, logger),
	}
}
