package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/cache"
	"github.com/yashasviy/overdraft-ledger-api/models"
)

// StatementService serves account statements, preferring the cached
// snapshot and rebuilding it from the ledger on a miss.
type StatementService struct {
	ledger Ledger
	cache  Cache
	ttl    time.Duration
	log    zerolog.Logger
}

// NewStatementService builds the service. Snapshots live twice as long
// as baseTTL: a statement is the expensive view, and every write to the
// account drops it anyway.
func NewStatementService(ledger Ledger, cache Cache, baseTTL time.Duration, log zerolog.Logger) *StatementService {
	return &StatementService{ledger: ledger, cache: cache, ttl: 2 * baseTTL, log: log}
}

// Get returns the account statement. A cached snapshot is returned
// verbatim, timestamp included. On a miss the statement is rebuilt from
// the ledger, stamped, and cached best-effort; cache trouble degrades to
// store reads, it never fails the request.
func (s *StatementService) Get(ctx context.Context, accountID int64) (*models.Statement, error) {
	key := statementKey(accountID)

	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var st models.Statement
		if err := json.Unmarshal(raw, &st); err == nil {
			return &st, nil
		}
		s.log.Warn().Int64("account_id", accountID).Msg("undecodable statement cache entry, rebuilding")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn().Err(err).Int64("account_id", accountID).Msg("statement cache read failed, serving from store")
	}

	st, err := s.ledger.FetchStatement(ctx, accountID)
	if err != nil {
		return nil, err
	}
	st.Balance.StatementTimestamp = time.Now().UTC()

	if payload, err := json.Marshal(st); err == nil {
		if err := s.cache.SetWithTTL(ctx, key, payload, s.ttl); err != nil {
			s.log.Warn().Err(err).Int64("account_id", accountID).Msg("statement cache write failed")
		}
	}
	return st, nil
}
