package services

import "errors"

// Sentinel errors for the service layer. Persistence failures are wrapped
// with fmt.Errorf("...: %w", err) around the store's error so the original
// message survives to the caller; these sentinels classify everything else.
var (
	// ErrAuthRequired means the operation needs a user and none was supplied.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation means the input was malformed or inconsistent.
	ErrValidation = errors.New("validation failed")

	// ErrPartialOrder means the order header was created but one or more
	// lines failed to insert. The order exists; callers should treat this as
	// a warning, not a failed checkout.
	ErrPartialOrder = errors.New("order created with missing lines")

	// ErrInvalidTransition means a status change is not allowed from the
	// order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)
