package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dindin-app/dindin/internal/model"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		salaries []model.Salary
		expenses []model.Expense
		cards    []model.CreditCard
		want     model.FinancialSummary
	}{
		{
			name:     "typical month",
			salaries: []model.Salary{{Amount: 5000}},
			expenses: []model.Expense{{Amount: 1200}, {Amount: 300}},
			want: model.FinancialSummary{
				TotalSalary:       5000,
				TotalExpenses:     1500,
				RemainingBalance:  3500,
				ExpensePercentage: 30.0,
			},
		},
		{
			name:     "no salary never divides by zero",
			expenses: []model.Expense{{Amount: 250}, {Amount: 431.10}},
			want: model.FinancialSummary{
				TotalExpenses:     681.10,
				RemainingBalance:  -681.10,
				ExpensePercentage: 0,
			},
		},
		{
			name:     "overspending goes negative",
			salaries: []model.Salary{{Amount: 1000}},
			expenses: []model.Expense{{Amount: 1500}},
			want: model.FinancialSummary{
				TotalSalary:       1000,
				TotalExpenses:     1500,
				RemainingBalance:  -500,
				ExpensePercentage: 150,
			},
		},
		{
			name: "card usage and limits",
			cards: []model.CreditCard{
				{Limit: 1000, CurrentAmount: 200},
				{Limit: 3000, CurrentAmount: 1150.50},
			},
			want: model.FinancialSummary{
				CreditCardUsage:  1350.50,
				TotalCreditLimit: 4000,
			},
		},
		{
			name: "every salary entry ever counts",
			salaries: []model.Salary{
				{Amount: 5000, Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)},
				{Amount: 4500, Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)},
			},
			want: model.FinancialSummary{
				TotalSalary:      9500,
				RemainingBalance: 9500,
			},
		},
		{
			name: "empty ledger",
			want: model.FinancialSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.salaries, tt.expenses, tt.cards)
			assert.InDelta(t, tt.want.TotalSalary, got.TotalSalary, 1e-9)
			assert.InDelta(t, tt.want.TotalExpenses, got.TotalExpenses, 1e-9)
			assert.InDelta(t, tt.want.RemainingBalance, got.RemainingBalance, 1e-9)
			assert.InDelta(t, tt.want.ExpensePercentage, got.ExpensePercentage, 1e-9)
			assert.InDelta(t, tt.want.CreditCardUsage, got.CreditCardUsage, 1e-9)
			assert.InDelta(t, tt.want.TotalCreditLimit, got.TotalCreditLimit, 1e-9)
		})
	}
}

func TestExpensesThisMonth(t *testing.T) {
	now := time.Date(2025, time.July, 14, 12, 0, 0, 0, time.Local)

	expenses := []model.Expense{
		{ID: "in-1", Date: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local)},
		{ID: "in-2", Date: time.Date(2025, time.July, 31, 23, 59, 0, 0, time.Local)},
		{ID: "last-month", Date: time.Date(2025, time.June, 30, 0, 0, 0, 0, time.Local)},
		{ID: "next-month", Date: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.Local)},
		{ID: "same-month-last-year", Date: time.Date(2024, time.July, 14, 0, 0, 0, 0, time.Local)},
	}

	got := ExpensesThisMonth(expenses, now)

	ids := make([]string, len(got))
	for i, e := range got {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"in-1", "in-2"}, ids)
}

func TestExpensesThisMonth_Empty(t *testing.T) {
	assert.Empty(t, ExpensesThisMonth(nil, time.Now()))
}

func TestByCategory(t *testing.T) {
	expenses := []model.Expense{
		{Category: model.CategoryAlimentacao, Amount: 50},
		{Category: model.CategoryAlimentacao, Amount: 25.50},
		{Category: model.CategoryTransporte, Amount: 12},
	}

	got := ByCategory(expenses)

	assert.Len(t, got, 2)
	assert.InDelta(t, 75.50, got[model.CategoryAlimentacao], 1e-9)
	assert.InDelta(t, 12, got[model.CategoryTransporte], 1e-9)

	// No zero-fill for untouched categories.
	_, ok := got[model.CategoryLazer]
	assert.False(t, ok)
}

func TestBudgetStatuses(t *testing.T) {
	now := time.Date(2025, time.July, 10, 0, 0, 0, 0, time.Local)

	budgets := []model.Budget{
		{Category: model.CategoryAlimentacao, Amount: 800},
		{Category: model.CategoryLazer, Amount: 200},
	}
	expenses := []model.Expense{
		{Category: model.CategoryAlimentacao, Amount: 400, Date: now},
		{Category: model.CategoryAlimentacao, Amount: 200, Date: now.AddDate(0, -1, 0)}, // last month, excluded
		{Category: model.CategoryTransporte, Amount: 90, Date: now},                     // no budget, ignored
	}

	statuses := BudgetStatuses(budgets, expenses, now)

	assert.Len(t, statuses, 2)
	assert.Equal(t, model.CategoryAlimentacao, statuses[0].Category)
	assert.InDelta(t, 400, statuses[0].Spent, 1e-9)
	assert.InDelta(t, 50, statuses[0].PercentUsed(), 1e-9)
	assert.Equal(t, model.CategoryLazer, statuses[1].Category)
	assert.InDelta(t, 0, statuses[1].Spent, 1e-9)
	assert.InDelta(t, 0, statuses[1].PercentUsed(), 1e-9)
}
