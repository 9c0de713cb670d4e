package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

// ListDebts returns all debts in insertion order.
func (s *SQLiteStorage) ListDebts(ctx context.Context) ([]model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listDebts(ctx, s.db)
}

// GetDebtByID returns one debt, or a not-found error when absent.
func (s *SQLiteStorage) GetDebtByID(ctx context.Context, id string) (*model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getDebtByID(ctx, s.db, id)
}

// SaveDebt inserts a new debt.
func (s *SQLiteStorage) SaveDebt(ctx context.Context, debt *model.Debt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDebt(debt); err != nil {
		return err
	}
	return s.saveDebt(ctx, s.db, debt)
}

// UpdateDebtPayment records a payment against a debt.
func (s *SQLiteStorage) UpdateDebtPayment(ctx context.Context, id string, remainingAmount float64, paidInstallments int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if remainingAmount < 0 {
		return fmt.Errorf("%w: negative remaining amount", ErrInvalidDebt)
	}
	return s.updateDebtPayment(ctx, s.db, id, remainingAmount, paidInstallments)
}

// DeleteDebt removes a debt by id.
func (s *SQLiteStorage) DeleteDebt(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return s.deleteDebt(ctx, s.db, id)
}

func (s *SQLiteStorage) listDebts(ctx context.Context, q dbtx) ([]model.Debt, error) {
	query := `
		SELECT id, name, total_amount, remaining_amount, monthly_payment,
			due_date, paid_installments, total_installments
		FROM debts
		WHERE profile = ?
		ORDER BY created_at`

	rows, err := q.QueryContext(ctx, query, s.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []model.Debt
	for rows.Next() {
		var d model.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.TotalAmount, &d.RemainingAmount,
			&d.MonthlyPayment, &d.DueDate, &d.PaidInstallments, &d.TotalInstallments); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}

	slog.Debug("retrieved debts", "count", len(debts))
	return debts, nil
}

func (s *SQLiteStorage) getDebtByID(ctx context.Context, q dbtx, id string) (*model.Debt, error) {
	query := `
		SELECT id, name, total_amount, remaining_amount, monthly_payment,
			due_date, paid_installments, total_installments
		FROM debts
		WHERE profile = ? AND id = ?`

	var d model.Debt
	err := q.QueryRowContext(ctx, query, s.profile, id).Scan(
		&d.ID, &d.Name, &d.TotalAmount, &d.RemainingAmount,
		&d.MonthlyPayment, &d.DueDate, &d.PaidInstallments, &d.TotalInstallments,
	)
	if err == sql.ErrNoRows {
		return nil, common.NewNotFoundError("debt", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query debt: %w", err)
	}
	return &d, nil
}

func (s *SQLiteStorage) saveDebt(ctx context.Context, q dbtx, debt *model.Debt) error {
	query := `
		INSERT INTO debts (id, profile, name, total_amount, remaining_amount,
			monthly_payment, due_date, paid_installments, total_installments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := q.ExecContext(ctx, query,
		debt.ID, s.profile, debt.Name, debt.TotalAmount, debt.RemainingAmount,
		debt.MonthlyPayment, debt.DueDate, debt.PaidInstallments, debt.TotalInstallments); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: debt %s", common.ErrDuplicateEntry, debt.ID)
		}
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	slog.Debug("saved debt", "id", debt.ID, "name", debt.Name)
	return nil
}

func (s *SQLiteStorage) updateDebtPayment(ctx context.Context, q dbtx, id string, remainingAmount float64, paidInstallments int) error {
	result, err := q.ExecContext(ctx,
		`UPDATE debts SET remaining_amount = ?, paid_installments = ? WHERE profile = ? AND id = ?`,
		remainingAmount, paidInstallments, s.profile, id)
	if err != nil {
		return fmt.Errorf("failed to update debt payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return common.NewNotFoundError("debt", id)
	}

	slog.Debug("updated debt payment",
		"id", id,
		"remaining_amount", remainingAmount,
		"paid_installments", paidInstallments)
	return nil
}

func (s *SQLiteStorage) deleteDebt(ctx context.Context, q dbtx, id string) error {
	result, err := q.ExecContext(ctx,
		`DELETE FROM debts WHERE profile = ? AND id = ?`, s.profile, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return common.NewNotFoundError("debt", id)
	}

	slog.Debug("deleted debt", "id", id)
	return nil
}

// Transaction implementations for debt operations

func (t *sqliteTransaction) ListDebts(ctx context.Context) ([]model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.listDebts(ctx, t.tx)
}

func (t *sqliteTransaction) GetDebtByID(ctx context.Context, id string) (*model.Debt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getDebtByID(ctx, t.tx, id)
}

func (t *sqliteTransaction) SaveDebt(ctx context.Context, debt *model.Debt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDebt(debt); err != nil {
		return err
	}
	return t.storage.saveDebt(ctx, t.tx, debt)
}

func (t *sqliteTransaction) UpdateDebtPayment(ctx context.Context, id string, remainingAmount float64, paidInstallments int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if remainingAmount < 0 {
		return fmt.Errorf("%w: negative remaining amount", ErrInvalidDebt)
	}
	return t.storage.updateDebtPayment(ctx, t.tx, id, remainingAmount, paidInstallments)
}

func (t *sqliteTransaction) DeleteDebt(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return t.storage.deleteDebt(ctx, t.tx, id)
}
