package types

import (
	"math"
	"strings"
	"time"
)

// Category classifies an expense.
type Category string

const (
	CategoryAccommodation Category = "Accommodation"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryActivities    Category = "Activities"
	CategoryShopping      Category = "Shopping"
	CategoryOther         Category = "Other"
)

// Categories lists the expense categories in form order.
var Categories = []Category{
	CategoryAccommodation,
	CategoryFood,
	CategoryTransport,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

// ParseCategory maps user input onto a known category. Matching ignores case;
// "Transportation" is accepted for Transport. Anything else is Other.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transportation") {
		return CategoryTransport
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Expense is one recorded spend against a trip's budget.
type Expense struct {
	Category    Category  `json:"category" yaml:"category"`
	Amount      float64   `json:"amount" yaml:"amount"`
	Description string    `json:"description" yaml:"description"`
	RecordedAt  time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// CategoryTotal is the summed spend for one category.
type CategoryTotal struct {
	Category Category `json:"category" yaml:"category"`
	Total    float64  `json:"total" yaml:"total"`
}

// BudgetSummary aggregates a trip's expenses against its budget.
type BudgetSummary struct {
	Budget      float64         `json:"budget" yaml:"budget"`
	TotalSpent  float64         `json:"total_spent" yaml:"total_spent"`
	Remaining   float64         `json:"remaining" yaml:"remaining"`
	PercentUsed float64         `json:"percent_used" yaml:"percent_used"`
	ByCategory  []CategoryTotal `json:"by_category" yaml:"by_category"`
}

// NonNegative clamps v to zero or more. NaN and infinities become zero.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
