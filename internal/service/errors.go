package service

import "errors"

var (
	// ErrInvalidCredentials is the only error a failed login produces. An
	// unknown email and a wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("unable to login")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrSignKeyIsNotSpecified   = errors.New("token sign key is not specified")

	ErrNothingToUpdate = errors.New("nothing to update")
	ErrForbidden       = errors.New("access denied")

	ErrVersionIsNotSpecified = errors.New("version is not specified")

	// client side
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
)
