package model

// Display labels for the enum types. The maps are keyed by the full enum so
// a missing entry shows up immediately in TestLabelsComplete.

var categoryLabels = map[Category]string{
	CategoryAlimentacao:     "Alimentação",
	CategoryTransporte:      "Transporte",
	CategoryMoradia:         "Moradia",
	CategorySaude:           "Saúde",
	CategoryEducacao:        "Educação",
	CategoryLazer:           "Lazer",
	CategoryRoupas:          "Roupas",
	CategoryTecnologia:      "Tecnologia",
	CategoryPagamentoDivida: "Pagamento de Dívida",
	CategoryOutros:          "Outros",
}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentDinheiro: "Dinheiro",
	PaymentDebito:   "Cartão de Débito",
	PaymentCredito:  "Cartão de Crédito",
	PaymentPix:      "PIX",
}

// Label returns the human-readable name for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Label returns the human-readable name for the payment method.
func (m PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}
