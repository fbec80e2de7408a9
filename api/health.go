package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/cache"
)

// StoreReporter exposes database pool statistics.
type StoreReporter interface {
	Stats() sql.DBStats
}

// CacheReporter exposes cache traffic counters and the current key
// count.
type CacheReporter interface {
	Stats() cache.Stats
	KeyCount(ctx context.Context) (int64, error)
}

// HealthHandler reports liveness plus a cache traffic snapshot.
func HealthHandler(kv CacheReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"cache":     kv.Stats(),
		})
	}
}

// MetricsHandler reports database pool usage and cache key pressure
// against the configured budget.
func MetricsHandler(db StoreReporter, kv CacheReporter, keyBudget int, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := kv.KeyCount(r.Context())
		if err != nil {
			log.Warn().Err(err).Msg("cache key count unavailable")
			count = -1
		}

		stats := db.Stats()
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"databasePool": map[string]interface{}{
				"maxOpenConnections": stats.MaxOpenConnections,
				"openConnections":    stats.OpenConnections,
				"inUse":              stats.InUse,
				"idle":               stats.Idle,
				"waitCount":          stats.WaitCount,
			},
			"cache": kv.Stats(),
			"cacheKeys": map[string]interface{}{
				"count":  count,
				"budget": keyBudget,
			},
		})
	}
}
