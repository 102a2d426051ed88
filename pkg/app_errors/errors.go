package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrEventNotFound       = errors.New("event not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrFlagNotFound        = errors.New("feature flag not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrRestockExceedsTotal = errors.New("restock exceeds total quantity")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrForbidden           = errors.New("forbidden")
	ErrLockTimeout         = errors.New("lock wait timeout")
	ErrInternalServerError = errors.New("internal server error")
)
