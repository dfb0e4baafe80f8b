// Package itinerary builds the day-by-day schedule of a trip.
//
// The day range is derived from the trip's start and end dates; each day has
// morning, afternoon and evening free-text slots. Saving a day replaces its
// entry wholesale.
package itinerary
