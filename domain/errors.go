package domain

import "errors"

// Storage-level sentinels shared by the store and the ledger.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
