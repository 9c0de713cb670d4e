package model

import "time"

// Salary represents a single income entry. Entries are never edited in
// place; a raise is recorded as a new entry and the most recent by date
// is the current salary.
type Salary struct {
	Date        time.Time
	ID          string
	Description string
	Amount      float64
}
