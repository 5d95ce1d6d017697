package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrDuplicateItem      = errors.New("duplicate menu item")
	ErrInvalidItem        = errors.New("invalid menu item")
	ErrUnrecognizedAnswer = errors.New("unrecognized answer")
	ErrInputClosed        = errors.New("input closed")
)
