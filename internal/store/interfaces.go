// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-shelf-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists users together with their session tokens and
// follow edges. Every method is safe for concurrent use.
type UserRepository interface {
	// FindByID loads a user with tokens (in issue order), followers and
	// following. Returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (models.User, error)

	// FindByEmail is FindByID keyed by the normalized email.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// ExistsByEmail reports whether an account uses the normalized email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts a new user and returns it with the server-maintained
	// columns (version, timestamps) filled in. Tokens and follow edges on the
	// input are ignored.
	Create(ctx context.Context, user models.User) (models.User, error)

	// Save writes the mutable profile columns if the stored version still
	// equals user.Version, and bumps the version. Returns ErrVersionConflict
	// when it does not.
	Save(ctx context.Context, user models.User) (models.User, error)

	// AppendToken atomically records token as the newest token of userID.
	AppendToken(ctx context.Context, userID, token string) error

	// HasToken reports whether token is currently recorded for userID.
	HasToken(ctx context.Context, userID, token string) (bool, error)

	// RevokeToken removes one token and reports how many rows went away.
	RevokeToken(ctx context.Context, userID, token string) (int64, error)

	// RevokeAllTokens removes every token of userID.
	RevokeAllTokens(ctx context.Context, userID string) (int64, error)

	// Delete removes the user; tokens and follow edges go with it.
	Delete(ctx context.Context, userID string) error

	// SetUserType stores a moderation decision and bumps the version.
	SetUserType(ctx context.Context, userID string, userType models.UserType) error

	// AddFollow records that followerID follows followeeID.
	AddFollow(ctx context.Context, followerID, followeeID string) error

	// RemoveFollow deletes the follow edge.
	RemoveFollow(ctx context.Context, followerID, followeeID string) error
}

// SessionStore keeps the CLI client's current session between invocations.
type SessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Load(ctx context.Context) (models.Session, error)
	Clear(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
