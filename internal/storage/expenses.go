package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

const expenseColumns = `id, amount, description, category, date, payment_method,
	card_id, installment_group_id, total_installment_amount`

// ListExpenses returns all expenses, most recent first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listExpenses(ctx, s.db)
}

// GetExpenseByID returns one expense, or a not-found error when absent.
func (s *SQLiteStorage) GetExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getExpenseByID(ctx, s.db, id)
}

// SaveExpenses inserts one or more expenses in a single batch.
func (s *SQLiteStorage) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return err
	}
	return s.saveExpenses(ctx, s.db, expenses)
}

// DeleteExpense removes a single expense by id.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return s.deleteExpense(ctx, s.db, id)
}

// DeleteExpensesByGroup removes every expense sharing an installment group id.
func (s *SQLiteStorage) DeleteExpensesByGroup(ctx context.Context, groupID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(groupID, "groupID"); err != nil {
		return err
	}
	return s.deleteExpensesByGroup(ctx, s.db, groupID)
}

func (s *SQLiteStorage) listExpenses(ctx context.Context, q dbtx) ([]model.Expense, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE profile = ?
		ORDER BY date DESC`, expenseColumns)

	rows, err := q.QueryContext(ctx, query, s.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "count", len(expenses))
	return expenses, nil
}

func (s *SQLiteStorage) getExpenseByID(ctx context.Context, q dbtx, id string) (*model.Expense, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE profile = ? AND id = ?`, expenseColumns)

	exp, err := scanExpense(q.QueryRowContext(ctx, query, s.profile, id))
	if err == sql.ErrNoRows {
		return nil, common.NewNotFoundError("expense", id)
	}
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *SQLiteStorage) saveExpenses(ctx context.Context, q dbtx, expenses []model.Expense) error {
	query := `
		INSERT INTO expenses (id, profile, amount, description, category, date,
			payment_method, card_id, installment_group_id, total_installment_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range expenses {
		e := &expenses[i]
		if _, err := q.ExecContext(ctx, query,
			e.ID, s.profile, e.Amount, e.Description, string(e.Category), e.Date,
			string(e.PaymentMethod),
			nullString(e.CardID),
			nullString(e.InstallmentGroupID),
			nullFloat(e.TotalInstallmentAmount),
		); err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: expense %s", common.ErrDuplicateEntry, e.ID)
			}
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}
	}

	slog.Debug("saved expenses", "count", len(expenses))
	return nil
}

func (s *SQLiteStorage) deleteExpense(ctx context.Context, q dbtx, id string) error {
	result, err := q.ExecContext(ctx,
		`DELETE FROM expenses WHERE profile = ? AND id = ?`, s.profile, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return common.NewNotFoundError("expense", id)
	}

	slog.Debug("deleted expense", "id", id)
	return nil
}

func (s *SQLiteStorage) deleteExpensesByGroup(ctx context.Context, q dbtx, groupID string) error {
	result, err := q.ExecContext(ctx,
		`DELETE FROM expenses WHERE profile = ? AND installment_group_id = ?`,
		s.profile, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete installment group: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return common.NewNotFoundError("installment group", groupID)
	}

	slog.Debug("deleted installment group", "group_id", groupID, "count", affected)
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*model.Expense, error) {
	var (
		exp      model.Expense
		category string
		method   string
		cardID   sql.NullString
		groupID  sql.NullString
		total    sql.NullFloat64
	)

	err := row.Scan(&exp.ID, &exp.Amount, &exp.Description, &category, &exp.Date,
		&method, &cardID, &groupID, &total)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	exp.Category = model.Category(category)
	exp.PaymentMethod = model.PaymentMethod(method)
	exp.CardID = cardID.String
	exp.InstallmentGroupID = groupID.String
	exp.TotalInstallmentAmount = total.Float64
	return &exp, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}

// Transaction implementations for expense operations

func (t *sqliteTransaction) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.listExpenses(ctx, t.tx)
}

func (t *sqliteTransaction) GetExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getExpenseByID(ctx, t.tx, id)
}

func (t *sqliteTransaction) SaveExpenses(ctx context.Context, expenses []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpenses(expenses); err != nil {
		return err
	}
	return t.storage.saveExpenses(ctx, t.tx, expenses)
}

func (t *sqliteTransaction) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return t.storage.deleteExpense(ctx, t.tx, id)
}

func (t *sqliteTransaction) DeleteExpensesByGroup(ctx context.Context, groupID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(groupID, "groupID"); err != nil {
		return err
	}
	return t.storage.deleteExpensesByGroup(ctx, t.tx, groupID)
}
