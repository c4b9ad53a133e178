package ledger

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input shape. Nothing has been written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Reason)
}

// NotFoundError reports a stale or forged reference.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InsufficientStockError is returned on create when a sale would consume more than is on hand.
// Row is 1-based, matching what the user sees on the form.
type InsufficientStockError struct {
	ProductName string
	Row         int
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (row %d): requested %d, available %d", e.ProductName, e.Row, e.Requested, e.Available)
}

// NumberConflictError means another transaction took the invoice number first. It is retryable.
type NumberConflictError struct {
	Number string
	Err    error
}

func (e *NumberConflictError) Error() string {
	return fmt.Sprintf("invoice number %s already taken", e.Number)
}

func (e *NumberConflictError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a storage failure. The transaction has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// wrapPersistence leaves the typed ledger errors alone and wraps everything else.
func wrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		validation *ValidationError
		notFound   *NotFoundError
		stock      *InsufficientStockError
		conflict   *NumberConflictError
		persist    *PersistenceError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &notFound), errors.As(err, &stock),
		errors.As(err, &conflict), errors.As(err, &persist):
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
