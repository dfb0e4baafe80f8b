package types

import "errors"

// Warning is a non-fatal validation failure shown to the user. The operation
// that returned it left the state unchanged.
type Warning string

func (w Warning) Error() string { return string(w) }

const (
	ErrEmptyTripName    Warning = "enter a trip name"
	ErrTripExists       Warning = "trip already exists"
	ErrTripNotFound     Warning = "trip not found"
	ErrNoActiveTrip     Warning = "create or select a trip first"
	ErrDatesUnset       Warning = "set start and end dates first"
	ErrInvalidDateRange Warning = "end date is before start date"
	ErrEmptyFavorite    Warning = "enter a place"
	ErrFavoriteExists   Warning = "already in favorites"
	ErrEmptyPackingItem Warning = "enter an item"
	ErrEmptyNote        Warning = "enter a note"
	ErrEmptyDestination Warning = "set a destination first"
	ErrEmptyQuestion    Warning = "enter a question"
)

var (
	// ErrIndexOutOfRange is returned by positional operations given an index
	// the view never offered.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInference wraps every failure of the external text-generation service.
	ErrInference = errors.New("inference service error")
)

// IsWarning reports whether err is a validation warning.
func IsWarning(err error) bool {
	var w Warning
	return errors.As(err, &w)
}
