package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/models"
	"github.com/yashasviy/overdraft-ledger-api/store"
)

// StatementGetter is the slice of the statement service the handler
// needs.
type StatementGetter interface {
	Get(ctx context.Context, accountID int64) (*models.Statement, error)
}

// StatementHandler serves the balance plus recent transactions view.
func StatementHandler(getter StatementGetter, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "malformed account id")
			return
		}

		st, err := getter.Get(r.Context(), accountID)
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "account not found")
		case err != nil:
			log.Error().Err(err).Int64("account_id", accountID).Msg("statement fetch failed")
			respondError(w, http.StatusInternalServerError, "internal server error")
		default:
			respondJSON(w, http.StatusOK, st)
		}
	}
}
