package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken = errors.New("account with this email already exists")

	ErrNotFound = errors.New("not found")

	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrItemUnavailable = errors.New("menu item is not available")
	ErrInvalidPayment  = errors.New("payment details do not match payment method")

	ErrInvalidStatus     = errors.New("invalid status value")
	ErrIllegalTransition = errors.New("illegal status transition")
)
