package view

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money renders v as dollars with thousands separators.
func Money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// Percent renders v with one decimal place.
func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// DayHeading renders the title of one itinerary day.
func DayHeading(index int, date time.Time) string {
	return printer.Sprintf("Day %d - %s", index, date.Format("Monday, January 02"))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
