package model

import "math"

// Debt represents an installment debt being paid down monthly.
//
// RemainingAmount only ever decreases toward zero as payments are recorded.
// DueDate is the day of the month (1-31) the payment is due.
type Debt struct {
	ID                string
	Name              string
	TotalAmount       float64
	RemainingAmount   float64
	MonthlyPayment    float64
	DueDate           int
	PaidInstallments  int
	TotalInstallments int
}

// InstallmentCount returns how many monthly payments clear a debt of
// total at the given monthly payment, rounding up.
func InstallmentCount(total, monthly float64) int {
	if monthly <= 0 {
		return 0
	}
	return int(math.Ceil(total / monthly))
}

// IsPaid reports whether the debt has been fully cleared.
func (d *Debt) IsPaid() bool {
	return d.RemainingAmount <= 0
}
