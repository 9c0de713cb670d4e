package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

func TestSQLiteStorage_SaveExpenses(t *testing.T) {
	tests := []struct {
		name     string
		expenses []model.Expense
		wantErr  bool
	}{
		{
			name:     "save batch",
			expenses: createTestExpenses(3),
			wantErr:  false,
		},
		{
			name:     "nil slice",
			expenses: nil,
			wantErr:  true,
		},
		{
			name:     "empty slice",
			expenses: []model.Expense{},
			wantErr:  true,
		},
		{
			name: "missing id",
			expenses: []model.Expense{{
				Amount:        10,
				Category:      model.CategoryOutros,
				Date:          time.Now(),
				PaymentMethod: model.PaymentDinheiro,
			}},
			wantErr: true,
		},
		{
			name: "zero amount",
			expenses: []model.Expense{{
				ID:            uuid.NewString(),
				Category:      model.CategoryOutros,
				Date:          time.Now(),
				PaymentMethod: model.PaymentDinheiro,
			}},
			wantErr: true,
		},
		{
			name: "credit without card",
			expenses: []model.Expense{{
				ID:            uuid.NewString(),
				Amount:        10,
				Category:      model.CategoryOutros,
				Date:          time.Now(),
				PaymentMethod: model.PaymentCredito,
			}},
			wantErr: true,
		},
		{
			name: "card on cash expense",
			expenses: []model.Expense{{
				ID:            uuid.NewString(),
				Amount:        10,
				Category:      model.CategoryOutros,
				Date:          time.Now(),
				PaymentMethod: model.PaymentDinheiro,
				CardID:        "card-1",
			}},
			wantErr: true,
		},
		{
			name: "unknown category",
			expenses: []model.Expense{{
				ID:            uuid.NewString(),
				Amount:        10,
				Category:      model.Category("viagem"),
				Date:          time.Now(),
				PaymentMethod: model.PaymentDinheiro,
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			err := store.SaveExpenses(ctx, tt.expenses)
			if (err != nil) != tt.wantErr {
				t.Errorf("SaveExpenses() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			got, err := store.ListExpenses(ctx)
			if err != nil {
				t.Fatalf("Failed to list expenses: %v", err)
			}
			if len(got) != len(tt.expenses) {
				t.Errorf("Expected %d expenses, got %d", len(tt.expenses), len(got))
			}
		})
	}
}

func TestSQLiteStorage_SaveExpenses_DuplicateID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(1)
	if err := store.SaveExpenses(ctx, expenses); err != nil {
		t.Fatalf("Failed to save expenses: %v", err)
	}

	err := store.SaveExpenses(ctx, expenses)
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected duplicate entry error, got %v", err)
	}
}

func TestSQLiteStorage_ListExpenses_Ordering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(3)
	if err := store.SaveExpenses(ctx, expenses); err != nil {
		t.Fatalf("Failed to save expenses: %v", err)
	}

	got, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 expenses, got %d", len(got))
	}

	// Most recent first.
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Errorf("Expenses out of order at index %d", i)
		}
	}
}

func TestSQLiteStorage_GetExpenseByID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := model.Expense{
		ID:                     uuid.NewString(),
		Amount:                 33.33,
		Description:            "Notebook (1/3)",
		Category:               model.CategoryTecnologia,
		Date:                   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod:          model.PaymentCredito,
		CardID:                 "card-1",
		InstallmentGroupID:     uuid.NewString(),
		TotalInstallmentAmount: 100,
	}
	if err := store.SaveExpenses(ctx, []model.Expense{expense}); err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}

	got, err := store.GetExpenseByID(ctx, expense.ID)
	if err != nil {
		t.Fatalf("Failed to get expense: %v", err)
	}
	if got.Description != expense.Description {
		t.Errorf("Expected description %q, got %q", expense.Description, got.Description)
	}
	if got.CardID != expense.CardID {
		t.Errorf("Expected card id %q, got %q", expense.CardID, got.CardID)
	}
	if got.InstallmentGroupID != expense.InstallmentGroupID {
		t.Errorf("Expected group id %q, got %q", expense.InstallmentGroupID, got.InstallmentGroupID)
	}
	if got.TotalInstallmentAmount != expense.TotalInstallmentAmount {
		t.Errorf("Expected total %v, got %v", expense.TotalInstallmentAmount, got.TotalInstallmentAmount)
	}
	if !got.IsInstallment() {
		t.Error("Expected expense to be part of an installment group")
	}

	_, err = store.GetExpenseByID(ctx, "missing")
	if !common.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestSQLiteStorage_GetExpenseByID_NullColumns(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expense := createTestExpenses(1)[0]
	if err := store.SaveExpenses(ctx, []model.Expense{expense}); err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}

	got, err := store.GetExpenseByID(ctx, expense.ID)
	if err != nil {
		t.Fatalf("Failed to get expense: %v", err)
	}
	if got.CardID != "" || got.InstallmentGroupID != "" || got.TotalInstallmentAmount != 0 {
		t.Errorf("Expected empty optional columns, got card=%q group=%q total=%v",
			got.CardID, got.InstallmentGroupID, got.TotalInstallmentAmount)
	}
	if got.IsInstallment() {
		t.Error("Expected a standalone expense")
	}
}

func TestSQLiteStorage_DeleteExpense(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	expenses := createTestExpenses(2)
	if err := store.SaveExpenses(ctx, expenses); err != nil {
		t.Fatalf("Failed to save expenses: %v", err)
	}

	if err := store.DeleteExpense(ctx, expenses[0].ID); err != nil {
		t.Fatalf("Failed to delete expense: %v", err)
	}

	got, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 expense, got %d", len(got))
	}

	err = store.DeleteExpense(ctx, expenses[0].ID)
	if !common.IsNotFound(err) {
		t.Errorf("Expected not-found error on repeated delete, got %v", err)
	}
}

func TestSQLiteStorage_DeleteExpensesByGroup(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	groupID := uuid.NewString()
	batch := make([]model.Expense, 3)
	for i := range batch {
		batch[i] = model.Expense{
			ID:                     uuid.NewString(),
			Amount:                 33.33,
			Description:            "Notebook",
			Category:               model.CategoryTecnologia,
			Date:                   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			PaymentMethod:          model.PaymentCredito,
			CardID:                 "card-1",
			InstallmentGroupID:     groupID,
			TotalInstallmentAmount: 100,
		}
	}
	outsider := createTestExpenses(1)
	if err := store.SaveExpenses(ctx, append(batch, outsider...)); err != nil {
		t.Fatalf("Failed to save expenses: %v", err)
	}

	if err := store.DeleteExpensesByGroup(ctx, groupID); err != nil {
		t.Fatalf("Failed to delete group: %v", err)
	}

	got, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected only the standalone expense, got %d rows", len(got))
	}

	err = store.DeleteExpensesByGroup(ctx, groupID)
	if !common.IsNotFound(err) {
		t.Errorf("Expected not-found error for deleted group, got %v", err)
	}
}
