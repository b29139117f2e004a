package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAlertNotFound indicates that an alert with the given ID does not exist.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrAllocationNotFound indicates that no target allocation plan has been saved.
	ErrAllocationNotFound = errors.New("allocation plan not found")

	// ErrSettingNotFound indicates that a system setting key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidTransactionDate indicates a transaction whose date could not
	// be parsed into a calendar day. Tax calculations refuse to run over
	// such data instead of silently producing zeros.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidYear indicates a tax year outside the plausible range.
	ErrInvalidYear = errors.New("invalid tax year")

	// ErrInvalidAllocation indicates target percentages that do not add up
	// within tolerance, or a negative percentage.
	ErrInvalidAllocation = errors.New("invalid target allocation")

	// ErrInvalidCSVHeaders indicates an import file whose header row does
	// not match the expected transaction columns.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")

	// ErrMissingAPIKey indicates the insight endpoint was called without a
	// configured LLM API key.
	ErrMissingAPIKey = errors.New("LLM API key not configured")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrievePrices       = errors.New("failed to retrieve prices")
	ErrFailedToRetrieveHistory      = errors.New("failed to retrieve price history")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
)
