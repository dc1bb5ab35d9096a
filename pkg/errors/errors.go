package errors

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("resource already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPaymentNotVerified = errors.New("payment not verified")
	ErrUpstream           = errors.New("upstream service failure")
)
