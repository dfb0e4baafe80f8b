package view

import (
	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
	"tripplanner/internal/services/advice"
)

// Field is one labelled value.
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// SidebarView lists the trips and the active trip's metadata.
type SidebarView struct {
	Trips   []string `json:"trips" yaml:"trips"`
	Active  string   `json:"active,omitempty" yaml:"active,omitempty"`
	Details []Field  `json:"details,omitempty" yaml:"details,omitempty"`
}

// Sidebar lists trips in creation order. active may be nil. Details only
// carry fields that are set.
func Sidebar(trips []domain.Trip, active *domain.Trip) SidebarView {
	v := SidebarView{Trips: make([]string, 0, len(trips))}
	for _, t := range trips {
		v.Trips = append(v.Trips, t.Name)
	}
	if active == nil {
		return v
	}
	v.Active = active.Name
	if active.Destination != "" {
		v.Details = append(v.Details, Field{"Destination", active.Destination})
	}
	if active.StartDate != nil {
		v.Details = append(v.Details, Field{"Start", formatDate(active.StartDate)})
	}
	if active.EndDate != nil {
		v.Details = append(v.Details, Field{"End", formatDate(active.EndDate)})
	}
	if active.Budget > 0 {
		v.Details = append(v.Details, Field{"Budget", Money(active.Budget)})
	}
	return v
}

// PlanView is the trip form with the recommendation choices.
type PlanView struct {
	Name             string   `json:"name" yaml:"name"`
	Destination      string   `json:"destination" yaml:"destination"`
	StartDate        string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Budget           string   `json:"budget" yaml:"budget"`
	Travelers        int      `json:"travelers" yaml:"travelers"`
	TripTypes        []string `json:"trip_types" yaml:"trip_types"`
	Interests        []string `json:"interests" yaml:"interests"`
	DefaultInterests []string `json:"default_interests" yaml:"default_interests"`
	CanRecommend     bool     `json:"can_recommend" yaml:"can_recommend"`
}

// Plan renders the plan form for t. Recommendations need a destination.
func Plan(t domain.Trip) PlanView {
	return PlanView{
		Name:             t.Name,
		Destination:      t.Destination,
		StartDate:        formatDate(t.StartDate),
		EndDate:          formatDate(t.EndDate),
		Budget:           Money(t.Budget),
		Travelers:        t.Travelers,
		TripTypes:        advice.TripTypes,
		Interests:        advice.Interests,
		DefaultInterests: advice.DefaultInterests,
		CanRecommend:     t.Destination != "",
	}
}

// DayView is one itinerary day with its heading.
type DayView struct {
	Index     int    `json:"index" yaml:"index"`
	Heading   string `json:"heading" yaml:"heading"`
	Morning   string `json:"morning" yaml:"morning"`
	Afternoon string `json:"afternoon" yaml:"afternoon"`
	Evening   string `json:"evening" yaml:"evening"`
	Saved     bool   `json:"saved" yaml:"saved"`
}

// ItineraryView is a trip's day-by-day plan.
type ItineraryView struct {
	Trip string    `json:"trip" yaml:"trip"`
	Days []DayView `json:"days" yaml:"days"`
}

// Itinerary renders days for trip.
func Itinerary(trip string, days []domain.ItineraryDay) ItineraryView {
	v := ItineraryView{Trip: trip, Days: make([]DayView, 0, len(days))}
	for _, d := range days {
		v.Days = append(v.Days, DayView{
			Index:     d.Index,
			Heading:   DayHeading(d.Index, d.Date),
			Morning:   d.Entry.Morning,
			Afternoon: d.Entry.Afternoon,
			Evening:   d.Entry.Evening,
			Saved:     d.Saved,
		})
	}
	return v
}

// ExpenseLine is one ledger row.
type ExpenseLine struct {
	Index       int    `json:"index" yaml:"index"`
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
}

// BudgetView is the ledger with its summary.
type BudgetView struct {
	Budget      string        `json:"budget" yaml:"budget"`
	TotalSpent  string        `json:"total_spent" yaml:"total_spent"`
	Remaining   string        `json:"remaining" yaml:"remaining"`
	PercentUsed string        `json:"percent_used" yaml:"percent_used"`
	OverBudget  bool          `json:"over_budget" yaml:"over_budget"`
	ByCategory  []Field       `json:"by_category" yaml:"by_category"`
	Expenses    []ExpenseLine `json:"expenses" yaml:"expenses"`
	Categories  []string      `json:"categories" yaml:"categories"`
}

// Budget renders a ledger and its summary. Expense titles follow
// "Food - $12.50 (2026-06-01 14:30)".
func Budget(expenses []domain.Expense, sum domain.BudgetSummary) BudgetView {
	v := BudgetView{
		Budget:      Money(sum.Budget),
		TotalSpent:  Money(sum.TotalSpent),
		Remaining:   Money(sum.Remaining),
		PercentUsed: Percent(sum.PercentUsed),
		OverBudget:  sum.TotalSpent > sum.Budget,
		ByCategory:  make([]Field, 0, len(sum.ByCategory)),
		Expenses:    make([]ExpenseLine, 0, len(expenses)),
	}
	for _, c := range sum.ByCategory {
		v.ByCategory = append(v.ByCategory, Field{string(c.Category), Money(c.Total)})
	}
	for i, e := range expenses {
		v.Expenses = append(v.Expenses, ExpenseLine{
			Index:       i,
			Title:       string(e.Category) + " - " + Money(e.Amount) + " (" + e.RecordedAt.Format("2006-01-02 15:04") + ")",
			Category:    string(e.Category),
			Amount:      Money(e.Amount),
			Description: e.Description,
		})
	}
	for _, c := range domaintypes.Categories {
		v.Categories = append(v.Categories, string(c))
	}
	return v
}

// Item is one indexed entry of a list view.
type Item struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

// FavoritesView lists favorite places.
type FavoritesView struct {
	Places []Item `json:"places" yaml:"places"`
	Empty  string `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// Favorites renders the favorite places.
func Favorites(places []string) FavoritesView {
	v := FavoritesView{Places: make([]Item, 0, len(places))}
	for i, p := range places {
		v.Places = append(v.Places, Item{i, p})
	}
	if len(places) == 0 {
		v.Empty = "Start adding your favorite places!"
	}
	return v
}

// PackingLine is one checklist row.
type PackingLine struct {
	Index  int    `json:"index" yaml:"index"`
	Label  string `json:"label" yaml:"label"`
	Packed bool   `json:"packed" yaml:"packed"`
}

// PackingView is a trip's checklist and progress.
type PackingView struct {
	Items    []PackingLine `json:"items" yaml:"items"`
	Progress string        `json:"progress" yaml:"progress"`
	Ratio    float64       `json:"ratio" yaml:"ratio"`
}

// Packing renders a checklist. Progress reads "Packed: 2/5".
func Packing(items []domain.PackingItem, p domain.PackingProgress) PackingView {
	v := PackingView{Items: make([]PackingLine, 0, len(items)), Ratio: p.Ratio}
	for i, it := range items {
		v.Items = append(v.Items, PackingLine{i, it.Label, it.Packed})
	}
	v.Progress = printer.Sprintf("Packed: %d/%d", p.Packed, p.Total)
	return v
}

// NotesView lists the session's travel notes.
type NotesView struct {
	Notes []Item `json:"notes" yaml:"notes"`
}

// Notes renders travel notes, newest last.
func Notes(notes []domain.Note) NotesView {
	v := NotesView{Notes: make([]Item, 0, len(notes))}
	for i, n := range notes {
		v.Notes = append(v.Notes, Item{i, n.Text})
	}
	return v
}

// ChatView is the question form for the travel assistant.
type ChatView struct {
	Destination string `json:"destination" yaml:"destination"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Answer      string `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// Chat renders the question form for t with an optional answer.
func Chat(t domain.Trip, answer string) ChatView {
	dest := t.Destination
	if dest == "" {
		dest = "your destination"
	}
	return ChatView{
		Destination: dest,
		Placeholder: "e.g., Best time to visit " + dest + "? What's the local currency? Best restaurants?",
		Answer:      answer,
	}
}
