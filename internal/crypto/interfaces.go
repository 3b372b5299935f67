// Package crypto holds the password hashing primitives of the identity core.
package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into one-way, salted hashes and
// checks plaintexts against them.
//
// Hash and Verify are CPU-bound and honor ctx only while waiting for a free
// worker; once started, a computation runs to completion.
type PasswordHasher interface {
	// Hash returns the encoded hash of plaintext. Two calls with the same
	// input produce different hashes.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A mismatch is not an
	// error; a malformed hash is.
	Verify(ctx context.Context, plaintext, hash string) (bool, error)

	// VerifyDummy spends the same effort as Verify against a fixed hash and
	// always reports a mismatch. It lets a caller make a lookup miss cost as
	// much as a wrong password.
	VerifyDummy(ctx context.Context, plaintext string)
}
