package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/models"
)

// ErrInvalidAmount rejects a transaction before it reaches the ledger.
var ErrInvalidAmount = errors.New("amount must be a positive integer")

// TransactionService records credits and debits and keeps the cached
// views consistent with what was committed.
type TransactionService struct {
	ledger Ledger
	cache  Cache
	log    zerolog.Logger
}

func NewTransactionService(ledger Ledger, cache Cache, log zerolog.Logger) *TransactionService {
	return &TransactionService{ledger: ledger, cache: cache, log: log}
}

// Record applies one transaction to the account. On commit it drops the
// account's cached balance and statement views; an invalidation failure
// is logged but never turns a committed write into an error.
func (s *TransactionService) Record(ctx context.Context, accountID int64, req models.TransactionRequest) (*models.TransactionResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	res, err := s.ledger.ApplyTransaction(ctx, accountID, req.Amount, req.Kind, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, balanceKey(accountID), statementKey(accountID)); err != nil {
		s.log.Error().Err(err).Int64("account_id", accountID).Msg("cache invalidation failed after commit")
	}
	return res, nil
}
