package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
	"github.com/google/uuid"
)

// ListAccounts returns a user's accounts in creation order.
func (s *SQLiteStorage) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM accounts WHERE user_id = ? ORDER BY created_at, rowid`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []model.Account{}
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.UserID, &acc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// GetAccount returns one account or common.ErrNotFound.
func (s *SQLiteStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var acc model.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM accounts WHERE id = ?`, id,
	).Scan(&acc.ID, &acc.UserID, &acc.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &acc, nil
}

// CreateAccount stores acc under a fresh id and writes the id back.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, acc *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(acc); err != nil {
		return err
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		id, acc.UserID, acc.Name, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	acc.ID = id
	return nil
}

// DeleteAccount removes an account together with its transactions.
func (s *SQLiteStorage) DeleteAccount(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
