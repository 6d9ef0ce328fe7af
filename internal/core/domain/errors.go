package domain

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrCarerNotFound         = errors.New("carer not found")
	ErrClientNotFound        = errors.New("client not found")
	ErrServiceNotFound       = errors.New("service not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrDeleteRequestNotFound = errors.New("account delete request not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrDuplicate          = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("access forbidden")
)
