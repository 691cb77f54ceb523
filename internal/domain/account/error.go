package account

import "errors"

var (
	ErrNotFound     = errors.New("account not found")
	ErrInvalidInput = errors.New("invalid account")
)
