package store

import "errors"

// ErrAccountNotFound is returned when the target account does not exist.
// Accounts are seeded externally, so this is never retried.
var ErrAccountNotFound = errors.New("account not found")

// ErrInsufficientLimit is returned when a debit would push the balance below
// the negated overdraft limit. The atomic unit is rolled back; nothing is
// persisted.
var ErrInsufficientLimit = errors.New("insufficient limit")
