// Package trip is the trip registry of a session.
//
// It creates uniquely named trips with default budget and traveler count,
// tracks which trip is active, and overwrites plan-form fields. When a trip's
// dates change, itinerary entries that fall outside the new range are pruned.
package trip
