package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInvalidOrder        = errors.New("invalid order payload")
	ErrInvalidSelection    = errors.New("invalid meal selection")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrOrderTerminal       = errors.New("order already delivered or cancelled")
	ErrCancelWindowExpired = errors.New("cancellation window expired")
	ErrNoBoxesLeft         = errors.New("no subscription boxes left")
)
