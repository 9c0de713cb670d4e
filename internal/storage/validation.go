// Package storage provides the data persistence layer for the dindin application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dindin-app/dindin/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrEmptySlice      = errors.New("slice cannot be empty")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidExpense  = errors.New("invalid expense")
	ErrInvalidCard     = errors.New("invalid credit card")
	ErrInvalidDebt     = errors.New("invalid debt")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDueDate  = errors.New("due date must be a day of the month (1-31)")
	ErrCardRequired    = errors.New("credit expenses must reference a card")
	ErrCardNotAllowed  = errors.New("only credit expenses may reference a card")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExpenses validates a slice of expenses.
func validateExpenses(expenses []model.Expense) error {
	if expenses == nil {
		return fmt.Errorf("%w: expenses", ErrNilParameter)
	}
	if len(expenses) == 0 {
		return fmt.Errorf("%w: expenses", ErrEmptySlice)
	}

	for i := range expenses {
		if err := validateExpense(&expenses[i]); err != nil {
			return fmt.Errorf("expense at index %d: %w", i, err)
		}
	}
	return nil
}

// validateExpense validates a single expense.
func validateExpense(e *model.Expense) error {
	if e == nil {
		return fmt.Errorf("%w: expense", ErrNilParameter)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidExpense)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidExpense, ErrInvalidAmount)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if !e.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidExpense, e.PaymentMethod)
	}
	// CardID is set if and only if the expense is paid by credit.
	if e.PaymentMethod == model.PaymentCredito && e.CardID == "" {
		return ErrCardRequired
	}
	if e.PaymentMethod != model.PaymentCredito && e.CardID != "" {
		return ErrCardNotAllowed
	}
	return nil
}

// validateSalary validates a salary entry.
func validateSalary(s *model.Salary) error {
	if s == nil {
		return fmt.Errorf("%w: salary", ErrNilParameter)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: missing salary id", ErrEmptyString)
	}
	if s.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// validateCard validates a credit card.
func validateCard(c *model.CreditCard) error {
	if c == nil {
		return fmt.Errorf("%w: card", ErrNilParameter)
	}
	if c.ID == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: missing id or name", ErrInvalidCard)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCard, ErrInvalidAmount)
	}
	if c.CurrentAmount < 0 {
		return fmt.Errorf("%w: negative current amount", ErrInvalidCard)
	}
	return nil
}

// validateBudget validates a budget row.
func validateBudget(b *model.Budget) error {
	if b == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if !b.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, b.Category)
	}
	if b.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// validateDebt validates a debt row.
func validateDebt(d *model.Debt) error {
	if d == nil {
		return fmt.Errorf("%w: debt", ErrNilParameter)
	}
	if d.ID == "" || strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: missing id or name", ErrInvalidDebt)
	}
	if d.TotalAmount <= 0 || d.MonthlyPayment <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDebt, ErrInvalidAmount)
	}
	if d.RemainingAmount < 0 || d.RemainingAmount > d.TotalAmount {
		return fmt.Errorf("%w: remaining amount outside 0..total", ErrInvalidDebt)
	}
	if d.DueDate < 1 || d.DueDate > 31 {
		return ErrInvalidDueDate
	}
	if d.PaidInstallments < 0 {
		return fmt.Errorf("%w: negative paid installments", ErrInvalidDebt)
	}
	return nil
}
