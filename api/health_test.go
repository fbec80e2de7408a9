package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashasviy/overdraft-ledger-api/cache"
)

func TestHealthHandler(t *testing.T) {
	kv := stubCache{stats: cache.Stats{Hits: 3, Misses: 1, HitRate: 75}}
	h := newTestRouter(nil, nil, stubStore{}, kv)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)

	var body struct {
		Status    string      `json:"status"`
		Timestamp time.Time   `json:"timestamp"`
		Cache     cache.Stats `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.WithinDuration(t, time.Now().UTC(), body.Timestamp, 5*time.Second)
	assert.EqualValues(t, 3, body.Cache.Hits)
	assert.EqualValues(t, 1, body.Cache.Misses)
	assert.InDelta(t, 75.0, body.Cache.HitRate, 0.001)
}

type metricsBody struct {
	DatabasePool struct {
		MaxOpenConnections int   `json:"maxOpenConnections"`
		OpenConnections    int   `json:"openConnections"`
		InUse              int   `json:"inUse"`
		Idle               int   `json:"idle"`
		WaitCount          int64 `json:"waitCount"`
	} `json:"databasePool"`
	Cache     cache.Stats `json:"cache"`
	CacheKeys struct {
		Count  int64 `json:"count"`
		Budget int   `json:"budget"`
	} `json:"cacheKeys"`
}

func TestMetricsHandler(t *testing.T) {
	db := stubStore{stats: sql.DBStats{MaxOpenConnections: 15, OpenConnections: 4, InUse: 2, Idle: 2, WaitCount: 7}}
	kv := stubCache{stats: cache.Stats{Hits: 10, Misses: 10, HitRate: 50}, keys: 42}
	h := newTestRouter(nil, nil, db, kv)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)

	var body metricsBody
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.Equal(t, 15, body.DatabasePool.MaxOpenConnections)
	assert.Equal(t, 4, body.DatabasePool.OpenConnections)
	assert.Equal(t, 2, body.DatabasePool.InUse)
	assert.EqualValues(t, 7, body.DatabasePool.WaitCount)
	assert.EqualValues(t, 10, body.Cache.Hits)
	assert.EqualValues(t, 42, body.CacheKeys.Count)
	assert.Equal(t, 500, body.CacheKeys.Budget)
}

func TestMetricsHandlerKeyCountUnavailable(t *testing.T) {
	kv := stubCache{keysErr: errors.New("redis: connection refused")}
	h := newTestRouter(nil, nil, stubStore{}, kv)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)

	var body metricsBody
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	assert.EqualValues(t, -1, body.CacheKeys.Count)
}
