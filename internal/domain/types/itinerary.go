package types

import "time"

// ItineraryEntry holds the saved activities for one day of a trip.
type ItineraryEntry struct {
	Day       int       `json:"day" yaml:"day"`
	Date      time.Time `json:"date" yaml:"date"`
	Morning   string    `json:"morning" yaml:"morning"`
	Afternoon string    `json:"afternoon" yaml:"afternoon"`
	Evening   string    `json:"evening" yaml:"evening"`
}

// Text returns the content of slot s.
func (e ItineraryEntry) Text(s Slot) string {
	switch s {
	case SlotMorning:
		return e.Morning
	case SlotAfternoon:
		return e.Afternoon
	case SlotEvening:
		return e.Evening
	}
	return ""
}

// DaySlots is the form payload for saving one itinerary day.
type DaySlots struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// ItineraryDay is one day of a trip's date range merged with its saved entry.
type ItineraryDay struct {
	Index int            `json:"index" yaml:"index"`
	Date  time.Time      `json:"date" yaml:"date"`
	Entry ItineraryEntry `json:"entry" yaml:"entry"`
	Saved bool           `json:"saved" yaml:"saved"`
}
