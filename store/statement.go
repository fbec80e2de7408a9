package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yashasviy/overdraft-ledger-api/models"
)

const (
	qReadAccount = `SELECT balance, overdraft_limit FROM accounts WHERE id = $1`

	qRecentTransactions = `SELECT amount, kind, description, occurred_at FROM transactions
		WHERE account_id = $1 ORDER BY occurred_at DESC, id DESC LIMIT 10`
)

// FetchStatement reads the current balance plus the ten most recent
// transaction records over a single pooled connection. It takes no locks and
// never blocks writers; the snapshot timestamp is stamped by the caller.
func (s *Store) FetchStatement(ctx context.Context, accountID int64) (*models.Statement, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	acc := models.Account{ID: accountID}
	err = conn.QueryRowContext(ctx, qReadAccount, accountID).Scan(&acc.Balance, &acc.Limit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read account %d: %w", accountID, err)
	}

	rows, err := conn.QueryContext(ctx, qRecentTransactions, accountID)
	if err != nil {
		return nil, fmt.Errorf("read transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	recent := make([]models.StatementTransaction, 0, 10)
	for rows.Next() {
		var t models.StatementTransaction
		if err := rows.Scan(&t.Amount, &t.Kind, &t.Description, &t.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		recent = append(recent, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions for account %d: %w", accountID, err)
	}

	return &models.Statement{
		Balance:          models.BalanceInfo{Total: acc.Balance, Limit: acc.Limit},
		LastTransactions: recent,
	}, nil
}
