// Package api is the HTTP edge: request decoding, the error taxonomy,
// and the route table.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/middleware"
)

// Deps bundles everything the router serves from.
type Deps struct {
	Transactions   TransactionRecorder
	Statements     StatementGetter
	Store          StoreReporter
	Cache          CacheReporter
	CacheKeyBudget int
	Logger         zerolog.Logger
}

// NewRouter assembles the HTTP surface.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(chimiddleware.Compress(5))

	r.Post("/accounts/{id}/transactions", TransactionsHandler(d.Transactions, d.Logger))
	r.Get("/accounts/{id}/statement", StatementHandler(d.Statements, d.Logger))
	r.Get("/health", HealthHandler(d.Cache))
	r.Get("/metrics", MetricsHandler(d.Store, d.Cache, d.CacheKeyBudget, d.Logger))

	return r
}
