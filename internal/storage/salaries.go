package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

// ListSalaries returns all salary entries, most recent first.
func (s *SQLiteStorage) ListSalaries(ctx context.Context) ([]model.Salary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listSalaries(ctx, s.db)
}

// SaveSalary inserts a new salary entry.
func (s *SQLiteStorage) SaveSalary(ctx context.Context, salary *model.Salary) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSalary(salary); err != nil {
		return err
	}
	return s.saveSalary(ctx, s.db, salary)
}

func (s *SQLiteStorage) listSalaries(ctx context.Context, q dbtx) ([]model.Salary, error) {
	query := `
		SELECT id, amount, description, date
		FROM salaries
		WHERE profile = ?
		ORDER BY date DESC`

	rows, err := q.QueryContext(ctx, query, s.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	var salaries []model.Salary
	for rows.Next() {
		var sal model.Salary
		if err := rows.Scan(&sal.ID, &sal.Amount, &sal.Description, &sal.Date); err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, sal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salaries: %w", err)
	}

	slog.Debug("retrieved salaries", "count", len(salaries))
	return salaries, nil
}

func (s *SQLiteStorage) saveSalary(ctx context.Context, q dbtx, salary *model.Salary) error {
	query := `
		INSERT INTO salaries (id, profile, amount, description, date)
		VALUES (?, ?, ?, ?, ?)`

	if _, err := q.ExecContext(ctx, query,
		salary.ID, s.profile, salary.Amount, salary.Description, salary.Date); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: salary %s", common.ErrDuplicateEntry, salary.ID)
		}
		return fmt.Errorf("failed to insert salary: %w", err)
	}

	slog.Debug("saved salary", "id", salary.ID, "amount", salary.Amount)
	return nil
}

// Transaction implementations for salary operations

func (t *sqliteTransaction) ListSalaries(ctx context.Context) ([]model.Salary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.listSalaries(ctx, t.tx)
}

func (t *sqliteTransaction) SaveSalary(ctx context.Context, salary *model.Salary) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSalary(salary); err != nil {
		return err
	}
	return t.storage.saveSalary(ctx, t.tx, salary)
}
