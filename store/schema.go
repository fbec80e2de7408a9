package store

import (
	"context"
	"fmt"
)

// The accounts table holds the conceptual "limit" in a column named
// overdraft_limit because LIMIT is a reserved word. The wire format still
// says limit.
const schemaAccounts = `
CREATE TABLE IF NOT EXISTS accounts (
	id              BIGINT PRIMARY KEY,
	balance         BIGINT NOT NULL DEFAULT 0,
	overdraft_limit BIGINT NOT NULL DEFAULT 0 CHECK (overdraft_limit >= 0),
	CHECK (balance >= -overdraft_limit)
);`

// transactions.id is the monotonically increasing tie-breaker for records
// that share an occurred_at instant.
const schemaTransactions = `
CREATE TABLE IF NOT EXISTS transactions (
	id          BIGSERIAL PRIMARY KEY,
	account_id  BIGINT NOT NULL REFERENCES accounts (id),
	amount      BIGINT NOT NULL CHECK (amount > 0),
	kind        CHAR(1) NOT NULL CHECK (kind IN ('c', 'd')),
	description VARCHAR(10) NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
);`

const schemaRecencyIndex = `
CREATE INDEX IF NOT EXISTS idx_transactions_account_recency
	ON transactions (account_id, occurred_at DESC, id DESC);`

// EnsureSchema creates the two relations and the statement lookup index if
// they do not exist. Account rows themselves are seeded externally.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{schemaAccounts, schemaTransactions, schemaRecencyIndex} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
