package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yashasviy/overdraft-ledger-api/models"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) ApplyTransaction(ctx context.Context, accountID, amount int64, kind models.TransactionKind, description string) (*models.TransactionResult, error) {
	args := m.Called(ctx, accountID, amount, kind, description)
	var res *models.TransactionResult
	if v := args.Get(0); v != nil {
		res = v.(*models.TransactionResult)
	}
	return res, args.Error(1)
}

func (m *mockLedger) FetchStatement(ctx context.Context, accountID int64) (*models.Statement, error) {
	args := m.Called(ctx, accountID)
	var st *models.Statement
	if v := args.Get(0); v != nil {
		st = v.(*models.Statement)
	}
	return st, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var val []byte
	if v := args.Get(0); v != nil {
		val = v.([]byte)
	}
	return val, args.Error(1)
}

func (m *mockCache) SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, val, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}
