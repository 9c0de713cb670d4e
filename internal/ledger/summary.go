package ledger

import (
	"time"

	"github.com/dindin-app/dindin/internal/model"
)

// Summarize reduces the full ledger into the dashboard summary. Totals are
// lifetime sums over everything ever recorded, not month-scoped.
func Summarize(salaries []model.Salary, expenses []model.Expense, cards []model.CreditCard) model.FinancialSummary {
	var summary model.FinancialSummary

	for i := range salaries {
		summary.TotalSalary += salaries[i].Amount
	}
	for i := range expenses {
		summary.TotalExpenses += expenses[i].Amount
	}
	for i := range cards {
		summary.CreditCardUsage += cards[i].CurrentAmount
		summary.TotalCreditLimit += cards[i].Limit
	}

	summary.RemainingBalance = summary.TotalSalary - summary.TotalExpenses
	if summary.TotalSalary > 0 {
		summary.ExpensePercentage = summary.TotalExpenses / summary.TotalSalary * 100
	}

	return summary
}

// ExpensesThisMonth filters expenses to those dated in the same calendar
// month and year as now, in local time.
func ExpensesThisMonth(expenses []model.Expense, now time.Time) []model.Expense {
	year, month := now.Year(), now.Month()

	var current []model.Expense
	for i := range expenses {
		d := expenses[i].Date
		if d.Year() == year && d.Month() == month {
			current = append(current, expenses[i])
		}
	}
	return current
}

// ByCategory sums expense amounts per category. Categories with no
// expenses do not appear in the result.
func ByCategory(expenses []model.Expense) map[model.Category]float64 {
	totals := make(map[model.Category]float64)
	for i := range expenses {
		totals[expenses[i].Category] += expenses[i].Amount
	}
	return totals
}

// BudgetStatus is one category's budget against its current-month spend.
type BudgetStatus struct {
	Category model.Category
	Budgeted float64
	Spent    float64
}

// PercentUsed returns spend as a percentage of budget, or 0 when the
// budget is zero.
func (b BudgetStatus) PercentUsed() float64 {
	if b.Budgeted <= 0 {
		return 0
	}
	return b.Spent / b.Budgeted * 100
}

// BudgetStatuses pairs every budget with the matching current-month
// category spend, in the budgets' order.
func BudgetStatuses(budgets []model.Budget, expenses []model.Expense, now time.Time) []BudgetStatus {
	spent := ByCategory(ExpensesThisMonth(expenses, now))

	statuses := make([]BudgetStatus, len(budgets))
	for i, b := range budgets {
		statuses[i] = BudgetStatus{
			Category: b.Category,
			Budgeted: b.Amount,
			Spent:    spent[b.Category],
		}
	}
	return statuses
}
