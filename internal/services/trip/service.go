package trip

import (
	"log/slog"
	"strings"
	"time"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Service manages the trips of a session state.
type Service struct {
	logger *slog.Logger
}

// New constructs a trip Service.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger.With("component", "trip")}
}

// CreateTrip inserts a new trip with default budget and travelers, prepares
// its itinerary, budget and packing collections, and makes it the active trip.
func (s *Service) CreateTrip(st *domain.State, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domaintypes.ErrEmptyTripName
	}
	if _, exists := st.Trips[name]; exists {
		s.logger.Debug("duplicate trip name rejected", "trip", name)
		return domaintypes.ErrTripExists
	}

	st.Trips[name] = &domain.Trip{
		Name:      name,
		Budget:    domaintypes.DefaultBudget,
		Travelers: domaintypes.DefaultTravelers,
	}
	st.TripOrder = append(st.TripOrder, name)
	st.Itinerary[name] = make(map[int]domain.ItineraryEntry)
	st.Budget[name] = []domain.Expense{}
	st.Packing[name] = []domain.PackingItem{}
	st.CurrentTrip = name

	s.logger.Info("trip created", "trip", name)
	return nil
}

// SelectTrip makes name the active trip. It does nothing when no trip exists.
func (s *Service) SelectTrip(st *domain.State, name string) error {
	if len(st.Trips) == 0 {
		return nil
	}
	if _, ok := st.Trips[name]; !ok {
		return domaintypes.ErrTripNotFound
	}
	st.CurrentTrip = name
	return nil
}

// UpdateTrip overwrites the plan fields of trip name. Travelers are clamped
// to [1, MaxTravelers] and the budget to zero or more.
func (s *Service) UpdateTrip(st *domain.State, name string, update domain.TripUpdate) error {
	t, ok := st.Trips[name]
	if !ok {
		return domaintypes.ErrTripNotFound
	}

	datesChanged := !sameDate(t.StartDate, update.StartDate) || !sameDate(t.EndDate, update.EndDate)

	t.Destination = strings.TrimSpace(update.Destination)
	t.StartDate = normalizeDate(update.StartDate)
	t.EndDate = normalizeDate(update.EndDate)
	t.Budget = domaintypes.NonNegative(update.Budget)
	t.Travelers = min(max(update.Travelers, 1), domaintypes.MaxTravelers)

	if datesChanged {
		s.pruneItinerary(st, *t)
	}
	s.logger.Info("trip updated", "trip", name, "destination", t.Destination)
	return nil
}

// GetTrip returns a copy of trip name.
func (s *Service) GetTrip(st *domain.State, name string) (domain.Trip, error) {
	t, ok := st.Trips[name]
	if !ok {
		return domain.Trip{}, domaintypes.ErrTripNotFound
	}
	return *t, nil
}

// ListTrips returns copies of all trips in creation order.
func (s *Service) ListTrips(st *domain.State) []domain.Trip {
	out := make([]domain.Trip, 0, len(st.TripOrder))
	for _, name := range st.TripOrder {
		if t, ok := st.Trips[name]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// ActiveTrip returns the currently selected trip.
func (s *Service) ActiveTrip(st *domain.State) (domain.Trip, error) {
	t, ok := st.Trips[st.CurrentTrip]
	if st.CurrentTrip == "" || !ok {
		return domain.Trip{}, domaintypes.ErrNoActiveTrip
	}
	return *t, nil
}

// pruneItinerary drops entries past the trip's new last day and re-dates the
// rest. An unset or inverted range leaves the entries alone.
func (s *Service) pruneItinerary(st *domain.State, t domain.Trip) {
	days, err := t.NumDays()
	if err != nil {
		return
	}
	entries := st.Itinerary[t.Name]
	for day, entry := range entries {
		if day < 1 || day > days {
			delete(entries, day)
			s.logger.Debug("pruned itinerary entry", "trip", t.Name, "day", day)
			continue
		}
		entry.Date = t.DateOf(day)
		entries[day] = entry
	}
}

func normalizeDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	day := domaintypes.Day(*d)
	return &day
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return domaintypes.Day(*a).Equal(domaintypes.Day(*b))
}

// Compile-time assertion that Service implements domain.TripService.
var _ domain.TripService = (*Service)(nil)
