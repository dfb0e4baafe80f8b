package view

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Slot start hours (UTC) and length used for calendar events.
var slotStart = map[domain.Slot]int{
	domaintypes.SlotMorning:   9,
	domaintypes.SlotAfternoon: 13,
	domaintypes.SlotEvening:   18,
}

const slotLength = 3 * time.Hour

// ItineraryCalendar renders the saved entries of trip as an iCalendar
// document with one event per non-empty slot. now stamps every event.
func ItineraryCalendar(trip domain.Trip, entries []domain.ItineraryEntry, now time.Time) (string, error) {
	cal := ics.NewCalendarFor("tripplanner")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(trip.Name)
	if trip.Destination != "" {
		cal.SetDescription(trip.Destination)
	}

	for _, e := range entries {
		for _, slot := range domaintypes.Slots {
			text := strings.TrimSpace(e.Text(slot))
			if text == "" {
				continue
			}
			start := domaintypes.Day(e.Date).Add(time.Duration(slotStart[slot]) * time.Hour)

			ev := cal.AddEvent(eventID(trip.Name, e.Day, slot))
			ev.SetDtStampTime(now)
			ev.SetStartAt(start)
			ev.SetEndAt(start.Add(slotLength))
			ev.SetSummary(text)
			ev.SetDescription(DayHeading(e.Day, e.Date) + " (" + string(slot) + ")")
			if trip.Destination != "" {
				ev.SetLocation(trip.Destination)
			}
		}
	}

	var b strings.Builder
	if err := cal.SerializeTo(&b); err != nil {
		return "", fmt.Errorf("serialize itinerary calendar: %w", err)
	}
	return b.String(), nil
}

func eventID(trip string, day int, slot domain.Slot) string {
	name := strings.Join(strings.Fields(strings.ToLower(trip)), "-")
	return fmt.Sprintf("%s-day%d-%s@tripplanner", name, day, slot)
}
