package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/Veraticus/spice-ledger/internal/model"
)

func now() string {
	return time.Now().UTC().Format(model.TimestampLayout)
}

func parseTimestamp(s string) (model.Timestamp, error) {
	t, err := time.Parse(model.TimestampLayout, s)
	if err != nil {
		return model.Timestamp{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return model.NewTimestamp(t), nil
}

// CurrentUser returns the oldest user. Without authentication every
// session belongs to it.
func (s *SQLiteStorage) CurrentUser(ctx context.Context) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var u model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM users ORDER BY created_at, rowid LIMIT 1`,
	).Scan(&u.ID, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &u, nil
}
