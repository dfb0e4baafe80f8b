package types

// SessionID identifies one user session in the session registry.
type SessionID string

// String returns the string form of the session id.
func (id SessionID) String() string { return string(id) }

// Slot names one of the three free-text activity slots of an itinerary day.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
)

// Slots lists the itinerary slots in display order.
var Slots = []Slot{SlotMorning, SlotAfternoon, SlotEvening}
