package fund

import "errors"

var (
	// ErrInsufficientValue rejects a deposit whose converted value is below
	// the pool minimum.
	ErrInsufficientValue = errors.New("insufficient value")

	// ErrUnauthorized rejects a privileged call from a non-owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrArithmeticOverflow signals a conversion or balance update that would
	// exceed the 256-bit unsigned range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrTransferFailed signals a withdrawal payout rejected by the settler.
	// The ledger is rolled back to its pre-call state.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrIndexOutOfRange rejects a funder lookup past the current count.
	ErrIndexOutOfRange = errors.New("index out of range")
)
