package engine

import "errors"

// Failure taxonomy for the swap pipeline. The HTTP layer maps these with
// errors.Is onto client statuses; anything that matches none of them is a
// downstream failure and surfaces as a server error.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("missing signer credential")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoLiquidity         = errors.New("no liquidity on any fee tier")
)
