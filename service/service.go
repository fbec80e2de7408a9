// Package service holds the transaction and statement use cases. It owns
// the cache key layout and the read-your-writes rule: every committed
// write invalidates the account's cached views before the response goes
// out, so the next statement read rebuilds from the ledger.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yashasviy/overdraft-ledger-api/models"
)

// Ledger is the durable side: the atomic transaction unit and the
// statement read. *store.Store satisfies it.
type Ledger interface {
	ApplyTransaction(ctx context.Context, accountID, amount int64, kind models.TransactionKind, description string) (*models.TransactionResult, error)
	FetchStatement(ctx context.Context, accountID int64) (*models.Statement, error)
}

// Cache is the view cache. *cache.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func balanceKey(accountID int64) string {
	return fmt.Sprintf("balance:%d", accountID)
}

func statementKey(accountID int64) string {
	return fmt.Sprintf("statement:%d", accountID)
}
