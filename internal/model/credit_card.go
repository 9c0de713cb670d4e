package model

// CreditCard represents a credit card and its running balance.
//
// CurrentAmount is maintained incrementally: every credit expense charged
// to the card adds to it, and deleting such an expense subtracts, floored
// at zero. It is not recomputed from the expense ledger.
type CreditCard struct {
	ID            string
	Name          string
	Color         string
	Limit         float64
	CurrentAmount float64
}

// Utilization returns CurrentAmount as a fraction of Limit, or 0 when the
// limit is zero.
func (c *CreditCard) Utilization() float64 {
	if c.Limit <= 0 {
		return 0
	}
	return c.CurrentAmount / c.Limit
}
