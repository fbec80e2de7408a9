package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yashasviy/overdraft-ledger-api/models"
)

const (
	qLockAccount = `SELECT balance, overdraft_limit FROM accounts WHERE id = $1 FOR UPDATE`

	qUpdateBalance = `UPDATE accounts SET balance = $1 WHERE id = $2`

	qAppendTransaction = `INSERT INTO transactions (account_id, amount, kind, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`
)

// ApplyTransaction runs the balance update and the log append as one atomic
// unit. The FOR UPDATE lock serializes concurrent writers on the same
// account; writers on different accounts proceed in parallel. A debit that
// would push the balance below -limit aborts the unit with
// ErrInsufficientLimit and persists nothing.
func (s *Store) ApplyTransaction(ctx context.Context, accountID, amount int64, kind models.TransactionKind, description string) (*models.TransactionResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit; releases the row lock on every other exit path

	acc := models.Account{ID: accountID}
	err = tx.QueryRowContext(ctx, qLockAccount, accountID).Scan(&acc.Balance, &acc.Limit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock account %d: %w", accountID, err)
	}

	delta := amount
	if kind == models.KindDebit {
		delta = -amount
	}
	newBalance := acc.Balance + delta
	if kind == models.KindDebit && newBalance < -acc.Limit {
		return nil, ErrInsufficientLimit
	}

	if _, err := tx.ExecContext(ctx, qUpdateBalance, newBalance, accountID); err != nil {
		return nil, fmt.Errorf("update balance for account %d: %w", accountID, err)
	}

	rec := models.Transaction{
		AccountID:   accountID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		OccurredAt:  time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx, qAppendTransaction, rec.AccountID, rec.Amount, string(rec.Kind), rec.Description, rec.OccurredAt); err != nil {
		return nil, fmt.Errorf("append transaction for account %d: %w", accountID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction for account %d: %w", accountID, err)
	}

	return &models.TransactionResult{Balance: newBalance, Limit: acc.Limit}, nil
}
