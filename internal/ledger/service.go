// Package ledger implements the core bookkeeping operations: recording
// income and expenses, splitting credit purchases into installments,
// keeping card balances consistent, and paying down debts.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
	"github.com/dindin-app/dindin/internal/service"
)

// Service orchestrates all ledger mutations over the persistence gateway.
type Service struct {
	storage service.Storage
	now     func() time.Time
}

// New creates a ledger service backed by the given storage.
func New(storage service.Storage) *Service {
	return &Service{
		storage: storage,
		now:     time.Now,
	}
}

// Snapshot holds every entity collection for one profile, as loaded at
// startup.
type Snapshot struct {
	Salaries    []model.Salary
	Expenses    []model.Expense
	CreditCards []model.CreditCard
	Budgets     []model.Budget
	Debts       []model.Debt
}

// CurrentSalary returns the most recent salary entry, or nil when none
// exist. Salaries are listed most recent first.
func (s *Snapshot) CurrentSalary() *model.Salary {
	if len(s.Salaries) == 0 {
		return nil
	}
	return &s.Salaries[0]
}

// LoadAll reads the five entity collections concurrently. The reads are
// independent; the first failure cancels the rest and is returned alone.
func (s *Service) LoadAll(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Salaries, err = s.storage.ListSalaries(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Expenses, err = s.storage.ListExpenses(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.CreditCards, err = s.storage.ListCreditCards(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Budgets, err = s.storage.ListBudgets(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Debts, err = s.storage.ListDebts(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, common.NewPersistenceError("load ledger", err)
	}
	return &snap, nil
}

// AddSalary records a new income entry.
func (s *Service) AddSalary(ctx context.Context, amount float64, description string, date time.Time) (*model.Salary, error) {
	if amount <= 0 {
		return nil, common.NewValidationError("amount", "must be positive")
	}
	if date.IsZero() {
		date = s.now()
	}

	salary := &model.Salary{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	if err := s.storage.SaveSalary(ctx, salary); err != nil {
		return nil, common.NewPersistenceError("save salary", err)
	}

	slog.Info("Added salary", "id", salary.ID, "amount", amount)
	return salary, nil
}

// AddCreditCard registers a new card with a zero running balance.
func (s *Service) AddCreditCard(ctx context.Context, name string, limit float64, color string) (*model.CreditCard, error) {
	if name == "" {
		return nil, common.NewValidationError("name", "must not be empty")
	}
	if limit <= 0 {
		return nil, common.NewValidationError("limit", "must be positive")
	}

	card := &model.CreditCard{
		ID:    uuid.NewString(),
		Name:  name,
		Limit: limit,
		Color: color,
	}

	if err := s.storage.SaveCreditCard(ctx, card); err != nil {
		return nil, common.NewPersistenceError("save credit card", err)
	}

	slog.Info("Added credit card", "id", card.ID, "name", name, "limit", limit)
	return card, nil
}

// DeleteCreditCard removes a card. Expenses that referenced it keep their
// card id; only the card record goes away.
func (s *Service) DeleteCreditCard(ctx context.Context, id string) error {
	if err := s.storage.DeleteCreditCard(ctx, id); err != nil {
		if common.IsNotFound(err) {
			return err
		}
		return common.NewPersistenceError("delete credit card", err)
	}

	slog.Info("Deleted credit card", "id", id)
	return nil
}

// ExpenseInput carries the validated form data for a new expense.
type ExpenseInput struct {
	Date          time.Time
	Description   string
	CardID        string
	Category      model.Category
	PaymentMethod model.PaymentMethod
	Amount        float64
	Installments  int
	IsInstallment bool
}

// AddExpense records an expense. A credit purchase flagged as an
// installment split with more than one installment becomes a group of
// dated expense rows inserted as one batch, and the card's running balance
// grows by the full purchase amount exactly once. Any other expense is a
// single row; credit expenses grow the card balance by their own amount.
func (s *Service) AddExpense(ctx context.Context, input ExpenseInput) ([]model.Expense, error) {
	if input.Amount <= 0 {
		return nil, common.NewValidationError("amount", "must be positive")
	}
	if !input.Category.IsValid() {
		return nil, common.NewValidationError("category", fmt.Sprintf("unknown category %q", input.Category))
	}
	if !input.PaymentMethod.IsValid() {
		return nil, common.NewValidationError("payment method", fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}
	if input.PaymentMethod == model.PaymentCredito && input.CardID == "" {
		return nil, common.NewValidationError("card", "credit expenses require a card")
	}
	if input.PaymentMethod != model.PaymentCredito && input.CardID != "" {
		return nil, common.NewValidationError("card", "only credit expenses may reference a card")
	}
	if input.Installments > 1 && input.PaymentMethod != model.PaymentCredito {
		return nil, common.NewValidationError("installments", "only credit expenses can be split into installments")
	}

	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	if input.PaymentMethod == model.PaymentCredito && input.IsInstallment && input.Installments > 1 {
		return s.addInstallmentExpense(ctx, input, date)
	}

	expense := model.Expense{
		ID:            uuid.NewString(),
		Amount:        input.Amount,
		Description:   input.Description,
		Category:      input.Category,
		Date:          date,
		PaymentMethod: input.PaymentMethod,
		CardID:        input.CardID,
	}

	if input.PaymentMethod != model.PaymentCredito {
		if err := s.storage.SaveExpenses(ctx, []model.Expense{expense}); err != nil {
			return nil, common.NewPersistenceError("save expense", err)
		}
		slog.Info("Added expense", "id", expense.ID, "amount", expense.Amount, "category", expense.Category)
		return []model.Expense{expense}, nil
	}

	// Credit expense: the insert and the card balance increment are one
	// logical unit.
	err := s.withTx(ctx, "add credit expense", func(tx service.Transaction) error {
		if err := tx.SaveExpenses(ctx, []model.Expense{expense}); err != nil {
			return err
		}
		card, err := tx.GetCreditCardByID(ctx, input.CardID)
		if err != nil {
			return err
		}
		return tx.UpdateCardBalance(ctx, card.ID, card.CurrentAmount+expense.Amount)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Added credit expense",
		"id", expense.ID,
		"amount", expense.Amount,
		"card_id", input.CardID)
	return []model.Expense{expense}, nil
}

func (s *Service) addInstallmentExpense(ctx context.Context, input ExpenseInput, date time.Time) ([]model.Expense, error) {
	drafts, err := AllocateInstallments(input.Amount, input.Installments,
		input.Description, input.Category, input.CardID, date)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, "add installment expense", func(tx service.Transaction) error {
		if err := tx.SaveExpenses(ctx, drafts); err != nil {
			return err
		}
		card, err := tx.GetCreditCardByID(ctx, input.CardID)
		if err != nil {
			return err
		}
		// The whole purchase counts against the limit up front, once.
		return tx.UpdateCardBalance(ctx, card.ID, card.CurrentAmount+input.Amount)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Added installment expense",
		"group_id", drafts[0].InstallmentGroupID,
		"total", input.Amount,
		"installments", input.Installments,
		"card_id", input.CardID)
	return drafts, nil
}

// DeleteExpense removes an expense. If it belongs to an installment group,
// the whole group goes, and the card balance drops by the group's full
// purchase amount; a lone credit expense drops the balance by its own
// amount. Balances never go below zero.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	expense, err := s.storage.GetExpenseByID(ctx, id)
	if err != nil {
		if common.IsNotFound(err) {
			return err
		}
		return common.NewPersistenceError("get expense", err)
	}

	if expense.IsInstallment() {
		return s.deleteInstallmentGroup(ctx, expense)
	}

	err = s.withTx(ctx, "delete expense", func(tx service.Transaction) error {
		if err := tx.DeleteExpense(ctx, id); err != nil {
			return err
		}
		if expense.PaymentMethod != model.PaymentCredito || expense.CardID == "" {
			return nil
		}
		return s.decrementCard(ctx, tx, expense.CardID, expense.Amount)
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted expense", "id", id)
	return nil
}

func (s *Service) deleteInstallmentGroup(ctx context.Context, expense *model.Expense) error {
	groupID := expense.InstallmentGroupID

	err := s.withTx(ctx, "delete installment group", func(tx service.Transaction) error {
		if err := tx.DeleteExpensesByGroup(ctx, groupID); err != nil {
			return err
		}
		if expense.CardID == "" || expense.TotalInstallmentAmount <= 0 {
			return nil
		}
		return s.decrementCard(ctx, tx, expense.CardID, expense.TotalInstallmentAmount)
	})
	if err != nil {
		return err
	}

	slog.Info("Deleted installment group", "group_id", groupID)
	return nil
}

// decrementCard lowers a card's running balance, floored at zero. A card
// that no longer exists is skipped: the expense rows are already gone and
// there is no balance left to fix.
func (s *Service) decrementCard(ctx context.Context, tx service.Transaction, cardID string, amount float64) error {
	card, err := tx.GetCreditCardByID(ctx, cardID)
	if err != nil {
		if common.IsNotFound(err) {
			slog.Warn("Card missing while reversing balance", "card_id", cardID)
			return nil
		}
		return err
	}

	newAmount := card.CurrentAmount - amount
	if newAmount < 0 {
		newAmount = 0
	}
	return tx.UpdateCardBalance(ctx, card.ID, newAmount)
}

// SetBudget creates or replaces the monthly budget for a category. The
// returned budget is the stored row: replacing an existing budget keeps
// its original id.
func (s *Service) SetBudget(ctx context.Context, category model.Category, amount float64) (*model.Budget, error) {
	if !category.IsValid() {
		return nil, common.NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}
	if amount <= 0 {
		return nil, common.NewValidationError("amount", "must be positive")
	}

	budget := &model.Budget{
		ID:       uuid.NewString(),
		Category: category,
		Amount:   amount,
	}

	if err := s.storage.UpsertBudget(ctx, budget); err != nil {
		return nil, common.NewPersistenceError("upsert budget", err)
	}

	stored, err := s.storage.GetBudgetByCategory(ctx, category)
	if err != nil {
		return nil, common.NewPersistenceError("get budget", err)
	}

	slog.Info("Set budget", "category", category, "amount", amount)
	return stored, nil
}

// DeleteBudget removes the budget for a category; no-op when absent.
func (s *Service) DeleteBudget(ctx context.Context, category model.Category) error {
	if !category.IsValid() {
		return common.NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}

	if err := s.storage.DeleteBudget(ctx, category); err != nil {
		return common.NewPersistenceError("delete budget", err)
	}

	slog.Info("Deleted budget", "category", category)
	return nil
}

// DebtInput carries the validated form data for a new debt.
type DebtInput struct {
	Name           string
	TotalAmount    float64
	MonthlyPayment float64
	DueDate        int
}

// AddDebt registers a new debt. The installment count is derived from the
// total and the monthly payment, rounding up; nothing is paid yet.
func (s *Service) AddDebt(ctx context.Context, input DebtInput) (*model.Debt, error) {
	if input.Name == "" {
		return nil, common.NewValidationError("name", "must not be empty")
	}
	if input.TotalAmount <= 0 {
		return nil, common.NewValidationError("total amount", "must be positive")
	}
	if input.MonthlyPayment <= 0 {
		return nil, common.NewValidationError("monthly payment", "must be positive")
	}
	if input.DueDate < 1 || input.DueDate > 31 {
		return nil, common.NewValidationError("due date", "must be a day of the month (1-31)")
	}

	debt := &model.Debt{
		ID:                uuid.NewString(),
		Name:              input.Name,
		TotalAmount:       input.TotalAmount,
		RemainingAmount:   input.TotalAmount,
		MonthlyPayment:    input.MonthlyPayment,
		DueDate:           input.DueDate,
		PaidInstallments:  0,
		TotalInstallments: model.InstallmentCount(input.TotalAmount, input.MonthlyPayment),
	}

	if err := s.storage.SaveDebt(ctx, debt); err != nil {
		return nil, common.NewPersistenceError("save debt", err)
	}

	slog.Info("Added debt",
		"id", debt.ID,
		"name", debt.Name,
		"total", debt.TotalAmount,
		"installments", debt.TotalInstallments)
	return debt, nil
}

// DeleteDebt removes a debt by id.
func (s *Service) DeleteDebt(ctx context.Context, id string) error {
	if err := s.storage.DeleteDebt(ctx, id); err != nil {
		if common.IsNotFound(err) {
			return err
		}
		return common.NewPersistenceError("delete debt", err)
	}

	slog.Info("Deleted debt", "id", id)
	return nil
}

// PayDebt records one monthly payment: a debit expense in the debt
// payment category plus the debt's own counters, as one logical unit. The
// payment never exceeds what remains, and a cleared debt rejects further
// payments.
func (s *Service) PayDebt(ctx context.Context, debtID string) (*model.Debt, error) {
	debt, err := s.storage.GetDebtByID(ctx, debtID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, err
		}
		return nil, common.NewPersistenceError("get debt", err)
	}

	if debt.IsPaid() {
		return nil, common.NewValidationError("debt", "already fully paid")
	}

	paymentAmount := debt.MonthlyPayment
	if debt.RemainingAmount < paymentAmount {
		paymentAmount = debt.RemainingAmount
	}

	expense := model.Expense{
		ID:            uuid.NewString(),
		Amount:        paymentAmount,
		Description:   fmt.Sprintf("Pagamento: %s", debt.Name),
		Category:      model.CategoryPagamentoDivida,
		Date:          s.now(),
		PaymentMethod: model.PaymentDebito,
	}

	remaining := debt.RemainingAmount - paymentAmount
	paid := debt.PaidInstallments + 1

	err = s.withTx(ctx, "pay debt", func(tx service.Transaction) error {
		if err := tx.SaveExpenses(ctx, []model.Expense{expense}); err != nil {
			return err
		}
		return tx.UpdateDebtPayment(ctx, debt.ID, remaining, paid)
	})
	if err != nil {
		return nil, err
	}

	debt.RemainingAmount = remaining
	debt.PaidInstallments = paid

	slog.Info("Paid debt installment",
		"debt_id", debt.ID,
		"payment", paymentAmount,
		"remaining", debt.RemainingAmount)
	return debt, nil
}

// withTx runs fn inside a storage transaction so cross-entity mutations
// land together or not at all. A commit failure after partial work is
// reported distinctly from a clean failure.
func (s *Service) withTx(ctx context.Context, op string, fn func(tx service.Transaction) error) error {
	tx, err := s.storage.BeginTx(ctx)
	if err != nil {
		return common.NewPersistenceError(op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			common.LogError(rbErr, "Rollback failed; stored state may be inconsistent",
				common.Fields{"op": op})
		}
		if common.IsNotFound(err) {
			return err
		}
		return common.NewPersistenceError(op, err)
	}

	if err := tx.Commit(); err != nil {
		return common.NewPersistenceError(op+" (commit)", err)
	}
	return nil
}
