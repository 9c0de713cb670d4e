package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders an amount in Brazilian real notation, e.g.
// "R$ 1.234,56". Negative amounts get a leading minus sign.
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	raw := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(raw, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), fracPart)
}

// FormatPercentage renders a percentage with one decimal place and a
// Brazilian decimal comma, e.g. "32,5%".
func FormatPercentage(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 1, 64)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// FormatDate renders a date in Brazilian day-first order.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatMonth renders a month and year in Portuguese, e.g. "junho de 2025".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%s de %d", ptMonths[t.Month()-1], t.Year())
}
