package crypto

import "errors"

var (
	ErrHashingFailed   = errors.New("failed to generate password hash")
	ErrMalformedHash   = errors.New("stored password hash is malformed")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
