// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType says whether money entered or left an account.
type TransactionType string

// Transaction type constants.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense entry tied to an account.
// It is never edited after creation, only deleted.
type Transaction struct {
	CreatedAt Timestamp       `json:"created_at"`
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Sum       decimal.Decimal `json:"sum"`
}

// TimestampLayout is the wire format of transaction creation times.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a time encoded as TimestampLayout on the wire.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, truncated to whole seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ts.Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. RFC 3339 is accepted as well.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		ts.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{TimestampLayout, time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			ts.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}
