package budget

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"tripplanner/internal/domain"
	domaintypes "tripplanner/internal/domain/types"
)

// Service records expenses against trips and summarises them.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a budget Service. now stamps new expenses and defaults to
// time.Now.
func New(logger *slog.Logger, now func() time.Time) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{logger: logger.With("component", "budget"), now: now}
}

// AddExpense appends an expense to the trip's ledger. Negative amounts are
// recorded as zero.
func (s *Service) AddExpense(
	st *domain.State,
	tripName string,
	category domain.Category,
	amount float64,
	description string,
) (domain.Expense, error) {
	if _, err := st.Trip(tripName); err != nil {
		return domain.Expense{}, err
	}

	e := domain.Expense{
		Category:    domaintypes.ParseCategory(string(category)),
		Amount:      domaintypes.NonNegative(amount),
		Description: strings.TrimSpace(description),
		RecordedAt:  s.now(),
	}
	st.Budget[tripName] = append(st.Budget[tripName], e)

	s.logger.Debug("expense added", "trip", tripName, "category", e.Category, "amount", e.Amount)
	return e, nil
}

// DeleteExpense removes the expense at index, keeping the order of the rest.
func (s *Service) DeleteExpense(st *domain.State, tripName string, index int) error {
	if _, err := st.Trip(tripName); err != nil {
		return err
	}
	expenses := st.Budget[tripName]
	if index < 0 || index >= len(expenses) {
		return fmt.Errorf("%w: expense %d of %d", domaintypes.ErrIndexOutOfRange, index, len(expenses))
	}
	st.Budget[tripName] = append(expenses[:index:index], expenses[index+1:]...)
	return nil
}

// ListExpenses returns a copy of the trip's ledger in insertion order.
func (s *Service) ListExpenses(st *domain.State, tripName string) ([]domain.Expense, error) {
	if _, err := st.Trip(tripName); err != nil {
		return nil, err
	}
	return append([]domain.Expense(nil), st.Budget[tripName]...), nil
}

// Summarize totals the ledger against the trip's budget.
func (s *Service) Summarize(st *domain.State, tripName string) (domain.BudgetSummary, error) {
	t, err := st.Trip(tripName)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	return Summarize(t.Budget, st.Budget[tripName]), nil
}

// Summarize aggregates expenses against budget. PercentUsed is 0 when the
// budget is not positive.
func Summarize(budget float64, expenses []domain.Expense) domain.BudgetSummary {
	spent := lo.SumBy(expenses, func(e domain.Expense) float64 { return e.Amount })

	percent := 0.0
	if budget > 0 {
		percent = spent / budget * 100
	}
	return domain.BudgetSummary{
		Budget:      budget,
		TotalSpent:  spent,
		Remaining:   max(0, budget-spent),
		PercentUsed: percent,
		ByCategory:  totalsByCategory(expenses),
	}
}

func totalsByCategory(expenses []domain.Expense) []domain.CategoryTotal {
	sums := make(map[domain.Category]float64)
	for _, e := range expenses {
		sums[e.Category] += e.Amount
	}
	order := lo.Uniq(lo.Map(expenses, func(e domain.Expense, _ int) domain.Category { return e.Category }))

	totals := lo.Map(order, func(c domain.Category, _ int) domain.CategoryTotal {
		return domain.CategoryTotal{Category: c, Total: sums[c]}
	})
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].Total > totals[j].Total })
	return totals
}

// Compile-time assertion that Service implements domain.BudgetService.
var _ domain.BudgetService = (*Service)(nil)
