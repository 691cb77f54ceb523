package budget

import "errors"

var (
	ErrInvalidInput = errors.New("invalid allocation")
	ErrBadMonth     = errors.New("month must be YYYY-MM")
)
