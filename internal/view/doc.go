// Package view turns planning data into presentation models.
//
// Every function here is pure: it reads the values it is given and returns a
// model ready for JSON or YAML encoding. Money is rendered in US English
// ("$1,234.50"), itinerary headings as "Day 3 - Wednesday, June 03".
// ItineraryCalendar exports saved itinerary slots as an iCalendar document.
package view
