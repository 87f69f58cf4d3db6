package services

import "errors"

// Error kinds surfaced to the API layer. Handlers classify with errors.Is and
// map to HTTP status codes; they never inspect transaction internals.
var (
	// ErrInvalidArgument covers malformed identifiers, missing required fields
	// and fields exceeding their length limits. Raised before any write.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means a referenced project, board, column or task is absent.
	ErrNotFound = errors.New("not found")

	// ErrTransactionFailed means the store aborted a transaction; no partial
	// state persists.
	ErrTransactionFailed = errors.New("transaction failed")
)
