package domain

import "errors"

var (
	ErrRowNotFound  = errors.New("line item not found")
	ErrUnknownField = errors.New("unknown line item field")
	ErrNameRequired = errors.New("client name is required")
)
