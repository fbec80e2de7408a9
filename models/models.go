// Package models defines the ledger domain types and the JSON wire shapes.
package models

import (
	"errors"
	"time"
	"unicode/utf8"
)

// TransactionKind tags a transaction as a credit or a debit.
type TransactionKind string

const (
	KindCredit TransactionKind = "c"
	KindDebit  TransactionKind = "d"
)

// Valid reports whether the kind is one of the two wire values.
func (k TransactionKind) Valid() bool {
	return k == KindCredit || k == KindDebit
}

// Account is a ledger entity with a balance and an overdraft limit, both in
// minor currency units. Rows are seeded externally; this service only ever
// mutates the balance.
type Account struct {
	ID      int64
	Balance int64
	Limit   int64
}

// Transaction is one immutable ledger record, append-only once committed.
type Transaction struct {
	AccountID   int64
	Amount      int64
	Kind        TransactionKind
	Description string
	OccurredAt  time.Time
}

// TransactionResult is what the atomic unit reports back after a commit.
type TransactionResult struct {
	Balance int64
	Limit   int64
}

// TransactionRequest is what the user sends to record a transaction.
type TransactionRequest struct {
	Amount      int64           `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
}

var (
	errAmountNotPositive = errors.New("amount must be a positive integer")
	errUnknownKind       = errors.New(`kind must be "c" or "d"`)
	errBadDescription    = errors.New("description must be 1 to 10 characters")
)

// Validate enforces the request shape constraints. Description length is
// counted in runes, not bytes.
func (r TransactionRequest) Validate() error {
	if r.Amount <= 0 {
		return errAmountNotPositive
	}
	if !r.Kind.Valid() {
		return errUnknownKind
	}
	if n := utf8.RuneCountInString(r.Description); n < 1 || n > 10 {
		return errBadDescription
	}
	return nil
}

// TransactionResponse is the success body for a recorded transaction.
type TransactionResponse struct {
	Limit   int64 `json:"limit"`
	Balance int64 `json:"balance"`
}

// BalanceInfo is the balance block of a statement. StatementTimestamp is the
// instant the underlying data was fetched, not when the request was served.
type BalanceInfo struct {
	Total              int64     `json:"total"`
	StatementTimestamp time.Time `json:"statementTimestamp"`
	Limit              int64     `json:"limit"`
}

// StatementTransaction is one entry of the recent-transactions list.
type StatementTransaction struct {
	Amount      int64           `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

// Statement is the statement response body and, serialized, the cached
// statement snapshot.
type Statement struct {
	Balance          BalanceInfo            `json:"balance"`
	LastTransactions []StatementTransaction `json:"last10Transactions"`
}

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
