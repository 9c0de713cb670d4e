// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/dindin-app/dindin/internal/model"
)

// Storage defines the contract for our persistence layer. A Storage is
// bound to one profile; rows belonging to other profiles are invisible
// through it.
type Storage interface {
	// Salary operations
	ListSalaries(ctx context.Context) ([]model.Salary, error)
	SaveSalary(ctx context.Context, salary *model.Salary) error

	// Expense operations
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	GetExpenseByID(ctx context.Context, id string) (*model.Expense, error)
	SaveExpenses(ctx context.Context, expenses []model.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	DeleteExpensesByGroup(ctx context.Context, groupID string) error

	// Credit card operations
	ListCreditCards(ctx context.Context) ([]model.CreditCard, error)
	GetCreditCardByID(ctx context.Context, id string) (*model.CreditCard, error)
	SaveCreditCard(ctx context.Context, card *model.CreditCard) error
	UpdateCardBalance(ctx context.Context, id string, currentAmount float64) error
	DeleteCreditCard(ctx context.Context, id string) error

	// Budget operations
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	GetBudgetByCategory(ctx context.Context, category model.Category) (*model.Budget, error)
	UpsertBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, category model.Category) error

	// Debt operations
	ListDebts(ctx context.Context) ([]model.Debt, error)
	GetDebtByID(ctx context.Context, id string) (*model.Debt, error)
	SaveDebt(ctx context.Context, debt *model.Debt) error
	UpdateDebtPayment(ctx context.Context, id string, remainingAmount float64, paidInstallments int) error
	DeleteDebt(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}
