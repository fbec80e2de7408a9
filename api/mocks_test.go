package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/yashasviy/overdraft-ledger-api/cache"
	"github.com/yashasviy/overdraft-ledger-api/models"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, accountID int64, req models.TransactionRequest) (*models.TransactionResult, error) {
	args := m.Called(ctx, accountID, req)
	var res *models.TransactionResult
	if v := args.Get(0); v != nil {
		res = v.(*models.TransactionResult)
	}
	return res, args.Error(1)
}

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) Get(ctx context.Context, accountID int64) (*models.Statement, error) {
	args := m.Called(ctx, accountID)
	var st *models.Statement
	if v := args.Get(0); v != nil {
		st = v.(*models.Statement)
	}
	return st, args.Error(1)
}

type stubStore struct {
	stats sql.DBStats
}

func (s stubStore) Stats() sql.DBStats { return s.stats }

type stubCache struct {
	stats   cache.Stats
	keys    int64
	keysErr error
}

func (s stubCache) Stats() cache.Stats { return s.stats }

func (s stubCache) KeyCount(ctx context.Context) (int64, error) { return s.keys, s.keysErr }

func newTestRouter(rec TransactionRecorder, get StatementGetter, db StoreReporter, kv CacheReporter) http.Handler {
	return NewRouter(Deps{
		Transactions:   rec,
		Statements:     get,
		Store:          db,
		Cache:          kv,
		CacheKeyBudget: 500,
		Logger:         zerolog.Nop(),
	})
}
