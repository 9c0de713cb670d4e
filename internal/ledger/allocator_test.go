package ledger

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

func TestAllocateInstallments(t *testing.T) {
	start := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name        string
		total       float64
		count       int
		wantAmounts []float64
		wantErr     bool
	}{
		{
			name:        "even split",
			total:       300.00,
			count:       3,
			wantAmounts: []float64{100.00, 100.00, 100.00},
		},
		{
			name:        "remainder lands on last installment",
			total:       100.00,
			count:       3,
			wantAmounts: []float64{33.33, 33.33, 33.34},
		},
		{
			name:        "two installments with odd cent",
			total:       0.03,
			count:       2,
			wantAmounts: []float64{0.02, 0.01},
		},
		{
			name:        "negative remainder when rounding up",
			total:       99.99,
			count:       6,
			wantAmounts: []float64{16.67, 16.67, 16.67, 16.67, 16.67, 16.64},
		},
		{
			name:    "single installment is not a split",
			total:   100.00,
			count:   1,
			wantErr: true,
		},
		{
			name:    "zero installments",
			total:   100.00,
			count:   0,
			wantErr: true,
		},
		{
			name:    "zero amount",
			total:   0,
			count:   3,
			wantErr: true,
		},
		{
			name:    "negative amount",
			total:   -50,
			count:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts, err := AllocateInstallments(tt.total, tt.count, "Notebook", model.CategoryTecnologia, "card-1", start)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, common.IsValidation(err), "want validation error, got %v", err)
				return
			}
			require.NoError(t, err)
			require.Len(t, drafts, tt.count)

			var sum float64
			for i, d := range drafts {
				assert.InDelta(t, tt.wantAmounts[i], d.Amount, 1e-9, "installment %d", i)
				assert.Equal(t, fmt.Sprintf("Notebook (%d/%d)", i+1, tt.count), d.Description)
				assert.Equal(t, model.PaymentCredito, d.PaymentMethod)
				assert.Equal(t, "card-1", d.CardID)
				assert.Equal(t, model.CategoryTecnologia, d.Category)
				assert.Equal(t, tt.total, d.TotalInstallmentAmount)
				assert.Equal(t, drafts[0].InstallmentGroupID, d.InstallmentGroupID)
				assert.True(t, d.Date.Equal(start.AddDate(0, i, 0)), "installment %d date", i)
				sum += d.Amount
			}

			// Group sums to the purchase amount to the cent.
			assert.Equal(t, math.Round(tt.total*100), math.Round(sum*100))
		})
	}
}

func TestAllocateInstallments_SumAlwaysExact(t *testing.T) {
	start := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.Local)

	totals := []float64{0.05, 1.00, 9.99, 100.00, 123.45, 999.97, 2500.01, 33333.33}
	for _, total := range totals {
		for count := 2; count <= 24; count++ {
			drafts, err := AllocateInstallments(total, count, "Compra", model.CategoryOutros, "card-1", start)
			require.NoError(t, err)

			var sum float64
			for _, d := range drafts {
				sum += d.Amount
			}
			assert.Equal(t, math.Round(total*100), math.Round(sum*100),
				"total=%v count=%d", total, count)

			// Only the last draft differs from the rounded per-installment value.
			for i := 0; i < count-1; i++ {
				assert.InDelta(t, drafts[0].Amount, drafts[i].Amount, 1e-9,
					"total=%v count=%d installment %d", total, count, i)
			}
		}
	}
}

func TestAllocateInstallments_RequiresCard(t *testing.T) {
	_, err := AllocateInstallments(100, 3, "Compra", model.CategoryOutros, "", time.Now())
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
}

func TestAllocateInstallments_FreshGroupPerCall(t *testing.T) {
	start := time.Now()
	first, err := AllocateInstallments(100, 2, "Compra", model.CategoryOutros, "card-1", start)
	require.NoError(t, err)
	second, err := AllocateInstallments(100, 2, "Compra", model.CategoryOutros, "card-1", start)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].InstallmentGroupID, second[0].InstallmentGroupID)
}
