package lending

import "errors"

// Error taxonomy for the lending core. Adapters map these to transport
// status codes with errors.Is; no error is ever coerced into another kind.
var (
	// ErrUnauthorized rejects a caller that is not the configured admin.
	ErrUnauthorized = errors.New("only the admin can perform this action")
	// ErrUnauthorizedAccess rejects a caller that does not own the record.
	ErrUnauthorizedAccess = errors.New("caller does not own this account")

	ErrInvalidTokenMint    = errors.New("token mint does not match")
	ErrInvalidTokenOwner   = errors.New("token account owner does not match user")
	ErrInvalidVaultAddress = errors.New("vault address does not match collateral vault")

	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidTokenIndex = errors.New("invalid token index")

	ErrInsufficientCollateral = errors.New("insufficient collateral")
	ErrLoanAlreadyActive      = errors.New("an active loan already exists for this borrower and vault")

	// ErrArithmetic reports a checked add/subtract that would wrap.
	ErrArithmetic = errors.New("arithmetic overflow or underflow")

	ErrInvalidPrice = errors.New("invalid or stale price feed")
	// ErrWrongProgramOwner guards against spoofed oracle accounts. Currently
	// unused; reserved so the code stays stable when feed ownership checks land.
	ErrWrongProgramOwner = errors.New("account is owned by a different program than expected")

	ErrNotFound = errors.New("record not found")
)
