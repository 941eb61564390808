package utils

import "errors"

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrBundleNotFound        = errors.New("bundle not found")
	ErrForbidden             = errors.New("access denied")
	ErrUnauthorizedSignature = errors.New("invalid HMAC signature")
	ErrInvalidPage           = errors.New("invalid page parameter")
	ErrInvalidPageSize       = errors.New("invalid page size parameter")
)
