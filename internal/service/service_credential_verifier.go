package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/models"
)

type credentialVerifier struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
}

// NewCredentialVerifier constructs a [CredentialVerifier].
func NewCredentialVerifier(userRepository store.UserRepository, hasher crypto.PasswordHasher) CredentialVerifier {
	return &credentialVerifier{
		userRepository: userRepository,
		hasher:         hasher,
	}
}

// Verify looks the user up by normalized email and compares the password.
// A lookup miss still pays for one bcrypt comparison, so both failure paths
// take about the same time and return the same error.
func (v *credentialVerifier) Verify(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := v.userRepository.FindByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, store.ErrUserNotFound) {
		v.hasher.VerifyDummy(ctx, password)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "credentialVerifier.Verify").Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	ok, err := v.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "credentialVerifier.Verify").Str("user_id", user.ID).Msg("password verification failed")
		return models.User{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
