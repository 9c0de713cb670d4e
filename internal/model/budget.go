package model

// Budget is a monthly spending cap for one category. At most one budget
// exists per category; setting a budget for a category replaces any
// earlier amount.
type Budget struct {
	ID       string
	Category Category
	Amount   float64
}
