package itinerary

import (
	"fmt"
	"log/slog"
	"sort"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Service derives itinerary days and stores per-day entries.
type Service struct {
	logger *slog.Logger
}

// New constructs an itinerary Service.
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger.With("component", "itinerary")}
}

// ListDays returns one day per index in [1, numDays], each merged with its
// saved entry. Trips without a usable date range yield ErrDatesUnset or
// ErrInvalidDateRange.
func (s *Service) ListDays(st *domain.State, tripName string) ([]domain.ItineraryDay, error) {
	t, err := st.Trip(tripName)
	if err != nil {
		return nil, err
	}
	numDays, err := t.NumDays()
	if err != nil {
		return nil, err
	}

	saved := st.Itinerary[tripName]
	days := make([]domain.ItineraryDay, 0, numDays)
	for i := 1; i <= numDays; i++ {
		day := domain.ItineraryDay{Index: i, Date: t.DateOf(i)}
		if entry, ok := saved[i]; ok {
			day.Entry = entry
			day.Saved = true
		} else {
			day.Entry = domain.ItineraryEntry{Day: i, Date: day.Date}
		}
		days = append(days, day)
	}
	return days, nil
}

// SaveDay overwrites the entry for day with slots.
func (s *Service) SaveDay(
	st *domain.State,
	tripName string,
	day int,
	slots domain.DaySlots,
) (domain.ItineraryEntry, error) {
	t, err := st.Trip(tripName)
	if err != nil {
		return domain.ItineraryEntry{}, err
	}
	numDays, err := t.NumDays()
	if err != nil {
		return domain.ItineraryEntry{}, err
	}
	if day < 1 || day > numDays {
		return domain.ItineraryEntry{}, fmt.Errorf("%w: day %d of %d", domaintypes.ErrIndexOutOfRange, day, numDays)
	}

	entry := domain.ItineraryEntry{
		Day:       day,
		Date:      t.DateOf(day),
		Morning:   slots.Morning,
		Afternoon: slots.Afternoon,
		Evening:   slots.Evening,
	}
	if st.Itinerary[tripName] == nil {
		st.Itinerary[tripName] = make(map[int]domain.ItineraryEntry)
	}
	st.Itinerary[tripName][day] = entry

	s.logger.Debug("itinerary day saved", "trip", tripName, "day", day)
	return entry, nil
}

// ListEntries returns every stored entry of the trip ordered by day.
func (s *Service) ListEntries(st *domain.State, tripName string) ([]domain.ItineraryEntry, error) {
	if _, err := st.Trip(tripName); err != nil {
		return nil, err
	}
	saved := st.Itinerary[tripName]
	out := make([]domain.ItineraryEntry, 0, len(saved))
	for _, e := range saved {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// Compile-time assertion that Service implements domain.ItineraryService.
var _ domain.ItineraryService = (*Service)(nil)
