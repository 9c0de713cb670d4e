package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

// ListBudgets returns all budgets for the profile.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listBudgets(ctx, s.db)
}

// GetBudgetByCategory returns the budget for a category, or a not-found
// error when none is set.
func (s *SQLiteStorage) GetBudgetByCategory(ctx context.Context, category model.Category) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.getBudgetByCategory(ctx, s.db, category)
}

// UpsertBudget inserts a budget or replaces the amount for an existing
// (profile, category) pair. At most one budget row per category survives.
func (s *SQLiteStorage) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}
	return s.upsertBudget(ctx, s.db, budget)
}

// DeleteBudget removes the budget for a category. Removing a category with
// no budget is a no-op.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return s.deleteBudget(ctx, s.db, category)
}

func (s *SQLiteStorage) listBudgets(ctx context.Context, q dbtx) ([]model.Budget, error) {
	query := `
		SELECT id, category, amount
		FROM budgets
		WHERE profile = ?
		ORDER BY category`

	rows, err := q.QueryContext(ctx, query, s.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var (
			b        model.Budget
			category string
		)
		if err := rows.Scan(&b.ID, &category, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Category = model.Category(category)
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	slog.Debug("retrieved budgets", "count", len(budgets))
	return budgets, nil
}

func (s *SQLiteStorage) getBudgetByCategory(ctx context.Context, q dbtx, category model.Category) (*model.Budget, error) {
	query := `
		SELECT id, category, amount
		FROM budgets
		WHERE profile = ? AND category = ?`

	var (
		b   model.Budget
		cat string
	)
	err := q.QueryRowContext(ctx, query, s.profile, string(category)).Scan(&b.ID, &cat, &b.Amount)
	if err == sql.ErrNoRows {
		return nil, common.NewNotFoundError("budget", string(category))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	b.Category = model.Category(cat)
	return &b, nil
}

func (s *SQLiteStorage) upsertBudget(ctx context.Context, q dbtx, budget *model.Budget) error {
	query := `
		INSERT INTO budgets (id, profile, category, amount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile, category) DO UPDATE SET amount = excluded.amount`

	if _, err := q.ExecContext(ctx, query,
		budget.ID, s.profile, string(budget.Category), budget.Amount); err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	slog.Debug("upserted budget", "category", budget.Category, "amount", budget.Amount)
	return nil
}

func (s *SQLiteStorage) deleteBudget(ctx context.Context, q dbtx, category model.Category) error {
	if _, err := q.ExecContext(ctx,
		`DELETE FROM budgets WHERE profile = ? AND category = ?`,
		s.profile, string(category)); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	slog.Debug("deleted budget", "category", category)
	return nil
}

// Transaction implementations for budget operations

func (t *sqliteTransaction) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.listBudgets(ctx, t.tx)
}

func (t *sqliteTransaction) GetBudgetByCategory(ctx context.Context, category model.Category) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return t.storage.getBudgetByCategory(ctx, t.tx, category)
}

func (t *sqliteTransaction) UpsertBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}
	return t.storage.upsertBudget(ctx, t.tx, budget)
}

func (t *sqliteTransaction) DeleteBudget(ctx context.Context, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return t.storage.deleteBudget(ctx, t.tx, category)
}
