package service

import (
	"context"

	"github.com/MKhiriev/go-shelf-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenIssuer mints session tokens and checks their signatures.
type TokenIssuer interface {
	// Issue signs a new token for userID and records it as the user's newest
	// token before returning it.
	Issue(ctx context.Context, userID string) (models.Token, error)

	// Parse verifies signature, algorithm and issuer of tokenString. It does
	// not consult the user's token list.
	Parse(ctx context.Context, tokenString string) (models.Token, error)
}

// CredentialVerifier checks an (email, password) pair.
type CredentialVerifier interface {
	// Verify returns the matching user, or ErrInvalidCredentials when the
	// email is unknown or the password is wrong.
	Verify(ctx context.Context, email, password string) (models.User, error)
}

// AuthService drives registration, login and the session token lifecycle.
type AuthService interface {
	// Register validates req, hashes the password once, creates the account
	// and issues its first token.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)

	// Login verifies the credentials and issues a new token.
	Login(ctx context.Context, creds models.Credentials) (models.User, models.Token, error)

	// Authenticate accepts tokenString only if its signature is valid and it
	// is still recorded for its subject.
	Authenticate(ctx context.Context, tokenString string) (models.Token, error)

	// Logout revokes one token.
	Logout(ctx context.Context, userID, tokenString string) error

	// LogoutAll revokes every token of userID and reports how many there were.
	LogoutAll(ctx context.Context, userID string) (int64, error)
}

// UserService manages profiles, follow edges and moderation.
type UserService interface {
	Get(ctx context.Context, userID string) (models.User, error)

	// UpdateProfile applies upd to the caller's profile. The password is
	// rehashed only when upd carries one. Concurrent saves are retried.
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (models.User, error)

	// Delete removes the account together with its tokens and follow edges.
	Delete(ctx context.Context, userID string) error

	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error

	// SetUserType records a moderation decision. actorID must be an admin.
	SetUserType(ctx context.Context, actorID, targetID string, userType models.UserType) error
}

// AppInfoService reports static information about the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator produces identifiers for new users.
type IDGenerator interface {
	Generate() string
}
