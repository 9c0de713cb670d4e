package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

func TestSQLiteStorage_UpsertBudget(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := &model.Budget{ID: uuid.NewString(), Category: model.CategoryAlimentacao, Amount: 800}
	require.NoError(t, store.UpsertBudget(ctx, first))

	// Same category again replaces the amount instead of adding a row.
	second := &model.Budget{ID: uuid.NewString(), Category: model.CategoryAlimentacao, Amount: 650}
	require.NoError(t, store.UpsertBudget(ctx, second))

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.InDelta(t, 650, budgets[0].Amount, 1e-9)
	assert.Equal(t, model.CategoryAlimentacao, budgets[0].Category)

	assert.Error(t, store.UpsertBudget(ctx, nil))
	assert.Error(t, store.UpsertBudget(ctx, &model.Budget{ID: uuid.NewString(), Category: "viagem", Amount: 100}))
	assert.Error(t, store.UpsertBudget(ctx, &model.Budget{ID: uuid.NewString(), Category: model.CategoryLazer}))
}

func TestSQLiteStorage_GetBudgetByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first := &model.Budget{ID: uuid.NewString(), Category: model.CategoryAlimentacao, Amount: 800}
	require.NoError(t, store.UpsertBudget(ctx, first))

	got, err := store.GetBudgetByCategory(ctx, model.CategoryAlimentacao)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.InDelta(t, 800, got.Amount, 1e-9)

	// Replacing the amount keeps the original row's id.
	second := &model.Budget{ID: uuid.NewString(), Category: model.CategoryAlimentacao, Amount: 650}
	require.NoError(t, store.UpsertBudget(ctx, second))

	got, err = store.GetBudgetByCategory(ctx, model.CategoryAlimentacao)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.InDelta(t, 650, got.Amount, 1e-9)

	_, err = store.GetBudgetByCategory(ctx, model.CategoryLazer)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetBudgetByCategory(ctx, model.Category("viagem"))
	assert.Error(t, err)
}

func TestSQLiteStorage_ListBudgets_SortedByCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for _, c := range []model.Category{model.CategoryLazer, model.CategoryAlimentacao, model.CategoryEducacao} {
		b := &model.Budget{ID: uuid.NewString(), Category: c, Amount: 100}
		require.NoError(t, store.UpsertBudget(ctx, b))
	}

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, model.CategoryAlimentacao, budgets[0].Category)
	assert.Equal(t, model.CategoryEducacao, budgets[1].Category)
	assert.Equal(t, model.CategoryLazer, budgets[2].Category)
}

func TestSQLiteStorage_DeleteBudget(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	b := &model.Budget{ID: uuid.NewString(), Category: model.CategoryLazer, Amount: 200}
	require.NoError(t, store.UpsertBudget(ctx, b))

	require.NoError(t, store.DeleteBudget(ctx, model.CategoryLazer))

	budgets, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)

	// Absent category is a silent no-op; bad category is not.
	assert.NoError(t, store.DeleteBudget(ctx, model.CategoryLazer))
	assert.Error(t, store.DeleteBudget(ctx, model.Category("viagem")))
}
