package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dindin-app/dindin/internal/common"
	"github.com/dindin-app/dindin/internal/model"
)

// ListCreditCards returns all credit cards in insertion order.
func (s *SQLiteStorage) ListCreditCards(ctx context.Context) ([]model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listCreditCards(ctx, s.db)
}

// GetCreditCardByID returns one card, or a not-found error when absent.
func (s *SQLiteStorage) GetCreditCardByID(ctx context.Context, id string) (*model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getCreditCardByID(ctx, s.db, id)
}

// SaveCreditCard inserts a new credit card.
func (s *SQLiteStorage) SaveCreditCard(ctx context.Context, card *model.CreditCard) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCard(card); err != nil {
		return err
	}
	return s.saveCreditCard(ctx, s.db, card)
}

// UpdateCardBalance sets a card's running balance.
func (s *SQLiteStorage) UpdateCardBalance(ctx context.Context, id string, currentAmount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if currentAmount < 0 {
		return fmt.Errorf("%w: negative current amount", ErrInvalidCard)
	}
	return s.updateCardBalance(ctx, s.db, id, currentAmount)
}

// DeleteCreditCard removes a card by id.
func (s *SQLiteStorage) DeleteCreditCard(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return s.deleteCreditCard(ctx, s.db, id)
}

func (s *SQLiteStorage) listCreditCards(ctx context.Context, q dbtx) ([]model.CreditCard, error) {
	query := `
		SELECT id, name, card_limit, current_amount, color
		FROM credit_cards
		WHERE profile = ?
		ORDER BY created_at`

	rows, err := q.QueryContext(ctx, query, s.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit cards: %w", err)
	}
	defer rows.Close()

	var cards []model.CreditCard
	for rows.Next() {
		var card model.CreditCard
		if err := rows.Scan(&card.ID, &card.Name, &card.Limit, &card.CurrentAmount, &card.Color); err != nil {
			return nil, fmt.Errorf("failed to scan credit card: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit cards: %w", err)
	}

	slog.Debug("retrieved credit cards", "count", len(cards))
	return cards, nil
}

func (s *SQLiteStorage) getCreditCardByID(ctx context.Context, q dbtx, id string) (*model.CreditCard, error) {
	query := `
		SELECT id, name, card_limit, current_amount, color
		FROM credit_cards
		WHERE profile = ? AND id = ?`

	var card model.CreditCard
	err := q.QueryRowContext(ctx, query, s.profile, id).Scan(
		&card.ID, &card.Name, &card.Limit, &card.CurrentAmount, &card.Color,
	)
	if err == sql.ErrNoRows {
		return nil, common.NewNotFoundError("credit card", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query credit card: %w", err)
	}
	return &card, nil
}

func (s *SQLiteStorage) saveCreditCard(ctx context.Context, q dbtx, card *model.CreditCard) error {
	query := `
		INSERT INTO credit_cards (id, profile, name, card_limit, current_amount, color)
		VALUES (?, ?, ?, ?, ?, ?)`

	if _, err := q.ExecContext(ctx, query,
		card.ID, s.profile, card.Name, card.Limit, card.CurrentAmount, card.Color); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: credit card %s", common.ErrDuplicateEntry, card.ID)
		}
		return fmt.Errorf("failed to insert credit card: %w", err)
	}

	slog.Debug("saved credit card", "id", card.ID, "name", card.Name)
	return nil
}

func (s *SQLiteStorage) updateCardBalance(ctx context.Context, q dbtx, id string, currentAmount float64) error {
	result, err := q.ExecContext(ctx,
		`UPDATE credit_cards SET current_amount = ? WHERE profile = ? AND id = ?`,
		currentAmount, s.profile, id)
	if err != nil {
		return fmt.Errorf("failed to update card balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return common.NewNotFoundError("credit card", id)
	}

	slog.Debug("updated card balance", "id", id, "current_amount", currentAmount)
	return nil
}

func (s *SQLiteStorage) deleteCreditCard(ctx context.Context, q dbtx, id string) error {
	result, err := q.ExecContext(ctx,
		`DELETE FROM credit_cards WHERE profile = ? AND id = ?`, s.profile, id)
	if err != nil {
		return fmt.Errorf("failed to delete credit card: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return common.NewNotFoundError("credit card", id)
	}

	slog.Debug("deleted credit card", "id", id)
	return nil
}

// Transaction implementations for credit card operations

func (t *sqliteTransaction) ListCreditCards(ctx context.Context) ([]model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.listCreditCards(ctx, t.tx)
}

func (t *sqliteTransaction) GetCreditCardByID(ctx context.Context, id string) (*model.CreditCard, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return t.storage.getCreditCardByID(ctx, t.tx, id)
}

func (t *sqliteTransaction) SaveCreditCard(ctx context.Context, card *model.CreditCard) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCard(card); err != nil {
		return err
	}
	return t.storage.saveCreditCard(ctx, t.tx, card)
}

func (t *sqliteTransaction) UpdateCardBalance(ctx context.Context, id string, currentAmount float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if currentAmount < 0 {
		return fmt.Errorf("%w: negative current amount", ErrInvalidCard)
	}
	return t.storage.updateCardBalance(ctx, t.tx, id, currentAmount)
}

func (t *sqliteTransaction) DeleteCreditCard(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	return t.storage.deleteCreditCard(ctx, t.tx, id)
}
