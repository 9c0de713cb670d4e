// Package model defines the core domain types shared across the application.
package model

import "time"

// Category identifies the spending category of an expense.
type Category string

// The closed set of expense categories.
const (
	CategoryAlimentacao     Category = "alimentacao"
	CategoryTransporte      Category = "transporte"
	CategoryMoradia         Category = "moradia"
	CategorySaude           Category = "saude"
	CategoryEducacao        Category = "educacao"
	CategoryLazer           Category = "lazer"
	CategoryRoupas          Category = "roupas"
	CategoryTecnologia      Category = "tecnologia"
	CategoryPagamentoDivida Category = "pagamento_divida"
	CategoryOutros          Category = "outros"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryAlimentacao,
		CategoryTransporte,
		CategoryMoradia,
		CategorySaude,
		CategoryEducacao,
		CategoryLazer,
		CategoryRoupas,
		CategoryTecnologia,
		CategoryPagamentoDivida,
		CategoryOutros,
	}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// PaymentMethod identifies how an expense was paid.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentDinheiro PaymentMethod = "dinheiro"
	PaymentDebito   PaymentMethod = "debito"
	PaymentCredito  PaymentMethod = "credito"
	PaymentPix      PaymentMethod = "pix"
)

// PaymentMethods lists every valid payment method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentDinheiro, PaymentDebito, PaymentCredito, PaymentPix}
}

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// Expense represents a single recorded expense.
//
// CardID is set if and only if PaymentMethod is credito. Expenses created by
// splitting a credit purchase share an InstallmentGroupID and carry the full
// purchase amount in TotalInstallmentAmount; the per-row Amount is the
// installment slice.
type Expense struct {
	Date                   time.Time
	ID                     string
	Description            string
	CardID                 string
	InstallmentGroupID     string
	Category               Category
	PaymentMethod          PaymentMethod
	Amount                 float64
	TotalInstallmentAmount float64
}

// IsInstallment reports whether the expense belongs to a split purchase group.
func (e *Expense) IsInstallment() bool {
	return e.InstallmentGroupID != ""
}
