package models

import "errors"

// Engine errors. Handlers map these onto HTTP status codes; callers match
// them with errors.Is.
var (
	// ErrInvalidCount rejects a negative physical count. Caller error, not retryable.
	ErrInvalidCount = errors.New("physical count must be zero or greater")
	// ErrItemNotFound means the ledger has no such inventory item.
	ErrItemNotFound = errors.New("inventory item not found")
	// ErrAlertNotFound means no alert exists with the given id.
	ErrAlertNotFound = errors.New("stock alert not found")
	// ErrWarehouseNotFound means the referenced warehouse does not exist.
	ErrWarehouseNotFound = errors.New("warehouse not found")
	// ErrAlreadyResolved rejects manual resolution of a non-active alert.
	ErrAlreadyResolved = errors.New("stock alert already resolved")
	// ErrConcurrentModification is an optimistic-lock conflict: another writer
	// changed the item between the snapshot read and the write. Retry with a
	// fresh read.
	ErrConcurrentModification = errors.New("item was modified concurrently, retry with a fresh read")
	// ErrLedgerUnavailable is a timeout or outage of the backing store. No
	// partial write was committed.
	ErrLedgerUnavailable = errors.New("item ledger unavailable")
)
