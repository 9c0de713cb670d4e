package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dindin-app/dindin/internal/model"
)

func TestSQLiteStorage_SaveSalary(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	salary := &model.Salary{
		ID:          uuid.NewString(),
		Amount:      5000,
		Description: "Salário",
		Date:        time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := store.SaveSalary(ctx, salary); err != nil {
		t.Fatalf("Failed to save salary: %v", err)
	}

	got, err := store.ListSalaries(ctx)
	if err != nil {
		t.Fatalf("Failed to list salaries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 salary, got %d", len(got))
	}
	if got[0].Amount != 5000 {
		t.Errorf("Expected amount 5000, got %v", got[0].Amount)
	}
	if !got[0].Date.Equal(salary.Date) {
		t.Errorf("Expected date %v, got %v", salary.Date, got[0].Date)
	}

	if err := store.SaveSalary(ctx, nil); err == nil {
		t.Error("Expected error for nil salary")
	}
	if err := store.SaveSalary(ctx, &model.Salary{ID: uuid.NewString()}); err == nil {
		t.Error("Expected error for zero amount")
	}
	if err := store.SaveSalary(ctx, &model.Salary{Amount: 100}); err == nil {
		t.Error("Expected error for missing id")
	}
}

func TestSQLiteStorage_ListSalaries_Ordering(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		salary := &model.Salary{ID: uuid.NewString(), Amount: 5000, Description: "Salário", Date: d}
		if err := store.SaveSalary(ctx, salary); err != nil {
			t.Fatalf("Failed to save salary: %v", err)
		}
	}

	got, err := store.ListSalaries(ctx)
	if err != nil {
		t.Fatalf("Failed to list salaries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 salaries, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Errorf("Salaries out of order at index %d", i)
		}
	}
}
