package transaction

import "errors"

var (
	ErrNotFound     = errors.New("transaction not found")
	ErrInvalidInput = errors.New("invalid transaction")
	ErrZeroAmount   = errors.New("transaction amount must not be zero")
	ErrBadDate      = errors.New("transaction date must be YYYY-MM-DD")
)
