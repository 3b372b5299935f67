// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-shelf-auth server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Non-2xx responses are returned as *[ResponseError], which wraps a status
// sentinel from errors.go so that callers can use [errors.Is] (e.g.
// [ErrConflict] for 409, [ErrUnauthorized] for 401) and [errors.As] to read
// the server's message and per-field reasons.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-shelf-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-shelf-auth server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. On success the issued token is stored via
	// SetToken.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login exchanges credentials for a token, stored via SetToken.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Logout revokes the current token on the server.
	Logout(ctx context.Context) error

	// LogoutAll revokes every token of the current user.
	LogoutAll(ctx context.Context) error

	// Me returns the caller's public profile.
	Me(ctx context.Context) (models.PublicUser, error)

	// UpdateProfile applies a partial profile update.
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.PublicUser, error)

	// DeleteAccount deletes the caller's account.
	DeleteAccount(ctx context.Context) error

	// GetUser returns another user's public profile.
	GetUser(ctx context.Context, userID string) (models.PublicUser, error)

	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error

	// SetUserType is the moderation call; the caller must be an admin.
	SetUserType(ctx context.Context, userID string, userType models.UserType) error

	// Version returns the server build version.
	Version(ctx context.Context) (models.VersionResponse, error)
}
