package core

import "errors"

// Errors
var (
	ErrInvalidTraderID     = errors.New("invalid trader id")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrMismatchedAssetType = errors.New("mismatched asset type")
	ErrMismatchedMarket    = errors.New("mismatched market")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrDuplicateOrder      = errors.New("duplicate order")
	ErrTickNotFound        = errors.New("tick not found")
)
