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

// ListTransactions returns an account's transactions, oldest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, name, type, sum, created_at
		FROM transactions WHERE account_id = ? ORDER BY created_at, rowid`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	txns := []model.Transaction{}
	for rows.Next() {
		var (
			txn     model.Transaction
			created string
		)
		if err := rows.Scan(&txn.ID, &txn.AccountID, &txn.Name, &txn.Type, &txn.Sum, &created); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if txn.CreatedAt, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// GetTransaction returns one transaction or common.ErrNotFound.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		txn     model.Transaction
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, type, sum, created_at FROM transactions WHERE id = ?`, id,
	).Scan(&txn.ID, &txn.AccountID, &txn.Name, &txn.Type, &txn.Sum, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	return &txn, nil
}

// CreateTransaction stores txn under a fresh id and creation time and
// writes both back. The account must exist.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if _, err := s.GetAccount(ctx, txn.AccountID); err != nil {
		return err
	}

	id := uuid.NewString()
	created := now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, name, type, sum, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, txn.AccountID, txn.Name, string(txn.Type), txn.Sum.String(), created,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	ts, err := parseTimestamp(created)
	if err != nil {
		return err
	}
	txn.ID = id
	txn.CreatedAt = ts
	return nil
}

// DeleteTransaction removes one transaction.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(res)
}
