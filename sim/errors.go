package sim

import "errors"

var (
	// ErrInsufficientFunds means the account cash cannot cover a buy or
	// a short cover plus commission.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares means a sell asked for more long shares than
	// are open.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrShortPosition means a cover asked for more short shares than are
	// open.
	ErrShortPosition = errors.New("not enough short shares to cover")

	// ErrInvalidCommissionType means the commission scheme tag is not one
	// of the recognized schemes.
	ErrInvalidCommissionType = errors.New("invalid commission type")

	// ErrInvalidOrder means the trade kind or its parameters are unusable
	// (non-positive shares or price, missing limit price, unknown kind).
	ErrInvalidOrder = errors.New("invalid order")
)
