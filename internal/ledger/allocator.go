package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

// AllocateInstallments splits a credit purchase of totalAmount into count
// monthly expense drafts starting at startDate.
//
// Each draft gets round(totalAmount/count, 2) except the last, which also
// absorbs the rounding remainder so the group sums to totalAmount to the
// cent. Drafts share a freshly generated installment group id and all carry
// the full purchase amount in TotalInstallmentAmount. Dates advance one
// calendar month per installment, following time.AddDate's normalization
// for month-end overflow.
func AllocateInstallments(totalAmount float64, count int, description string, category model.Category, cardID string, startDate time.Time) ([]model.Expense, error) {
	if count < 2 {
		return nil, common.NewValidationError("installments", "a split purchase needs at least 2 installments")
	}
	if totalAmount <= 0 {
		return nil, common.NewValidationError("amount", "must be positive")
	}
	if cardID == "" {
		return nil, common.NewValidationError("card", "installment purchases require a credit card")
	}
	if !category.IsValid() {
		return nil, common.NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}

	total := decimal.NewFromFloat(totalAmount)
	per := total.Div(decimal.NewFromInt(int64(count))).Round(2)
	// Whatever rounding left over lands entirely on the last installment.
	remainder := total.Sub(per.Mul(decimal.NewFromInt(int64(count))))

	groupID := uuid.NewString()
	drafts := make([]model.Expense, count)
	for i := 0; i < count; i++ {
		amount := per
		if i == count-1 {
			amount = per.Add(remainder)
		}

		drafts[i] = model.Expense{
			ID:                     uuid.NewString(),
			Amount:                 amount.InexactFloat64(),
			Description:            fmt.Sprintf("%s (%d/%d)", description, i+1, count),
			Category:               category,
			Date:                   startDate.AddDate(0, i, 0),
			PaymentMethod:          model.PaymentCredito,
			CardID:                 cardID,
			InstallmentGroupID:     groupID,
			TotalInstallmentAmount: totalAmount,
		}
	}

	return drafts, nil
}
