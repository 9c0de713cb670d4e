package model

// FinancialSummary is the derived view shown on the dashboard. All totals
// are lifetime sums, not month-scoped.
type FinancialSummary struct {
	TotalSalary       float64
	TotalExpenses     float64
	RemainingBalance  float64
	ExpensePercentage float64
	CreditCardUsage   float64
	TotalCreditLimit  float64
}
