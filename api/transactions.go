package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/models"
	"github.com/yashasviy/overdraft-ledger-api/service"
	"github.com/yashasviy/overdraft-ledger-api/store"
)

// TransactionRecorder is the slice of the transaction service the
// handler needs.
type TransactionRecorder interface {
	Record(ctx context.Context, accountID int64, req models.TransactionRequest) (*models.TransactionResult, error)
}

// TransactionsHandler records one credit or debit against an account.
func TransactionsHandler(recorder TransactionRecorder, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "malformed account id")
			return
		}

		var req models.TransactionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			respondError(w, http.StatusUnprocessableEntity, "malformed request body")
			return
		}
		if err := req.Validate(); err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		res, err := recorder.Record(r.Context(), accountID, req)
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, store.ErrInsufficientLimit):
			respondError(w, http.StatusUnprocessableEntity, "insufficient limit")
		case errors.Is(err, service.ErrInvalidAmount):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case err != nil:
			log.Error().Err(err).Int64("account_id", accountID).Msg("transaction failed")
			respondError(w, http.StatusInternalServerError, "internal server error")
		default:
			respondJSON(w, http.StatusOK, models.TransactionResponse{Limit: res.Limit, Balance: res.Balance})
		}
	}
}
