package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-shelf-auth/models"
)

// ClientAuthService defines the client-side contract for registration,
// login and the locally remembered session.
type ClientAuthService interface {
	// Register creates an account on the server and remembers the session.
	Register(ctx context.Context, req models.RegisterRequest) (models.Session, error)

	// Login authenticates against the server and remembers the session.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// RestoreSession loads the remembered session and hands its token to the
	// server adapter. Returns ErrNotLoggedIn when there is none.
	RestoreSession(ctx context.Context) (models.Session, error)

	// Logout revokes the current token, or every token of the account when
	// all is set, and forgets the local session.
	Logout(ctx context.Context, all bool) error
}

// ClientProfileService defines the client-side profile operations. A session
// must have been restored first.
type ClientProfileService interface {
	Me(ctx context.Context) (models.PublicUser, error)
	Update(ctx context.Context, upd models.ProfileUpdate) (models.PublicUser, error)
	Get(ctx context.Context, userID string) (models.PublicUser, error)
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error

	// DeleteAccount deletes the account on the server and forgets the local
	// session.
	DeleteAccount(ctx context.Context) error

	SetUserType(ctx context.Context, userID string, userType models.UserType) error
	ServerVersion(ctx context.Context) (models.VersionResponse, error)
}
