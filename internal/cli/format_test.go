package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "simple", amount: 42.5, want: "R$ 42,50"},
		{name: "thousands separator", amount: 1234.56, want: "R$ 1.234,56"},
		{name: "millions", amount: 1234567.89, want: "R$ 1.234.567,89"},
		{name: "exact thousand", amount: 1000, want: "R$ 1.000,00"},
		{name: "zero", amount: 0, want: "R$ 0,00"},
		{name: "cents only", amount: 0.07, want: "R$ 0,07"},
		{name: "negative", amount: -1234.5, want: "-R$ 1.234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "32,5%", FormatPercentage(32.5))
	assert.Equal(t, "0,0%", FormatPercentage(0))
	assert.Equal(t, "100,0%", FormatPercentage(100))
	assert.Equal(t, "-12,3%", FormatPercentage(-12.34))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 6, 9, 15, 30, 0, 0, time.Local)
	assert.Equal(t, "09/06/2025", FormatDate(d))
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "junho de 2025", FormatMonth(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "março de 2024", FormatMonth(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)))
}
