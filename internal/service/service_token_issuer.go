package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
)

// tokenIssuer signs HS256 session tokens and records them in the user's
// token list.
type tokenIssuer struct {
	userRepository store.UserRepository

	// signKey is the process-wide HMAC secret. It is set once at startup.
	signKey  string
	issuer   string
	duration time.Duration

	metrics *metrics.Metrics
}

// NewTokenIssuer constructs a [TokenIssuer]. A zero duration issues tokens
// without expiry.
func NewTokenIssuer(userRepository store.UserRepository, signKey, issuer string, duration time.Duration, m *metrics.Metrics) (TokenIssuer, error) {
	if signKey == "" {
		return nil, ErrSignKeyIsNotSpecified
	}

	return &tokenIssuer{
		userRepository: userRepository,
		signKey:        signKey,
		issuer:         issuer,
		duration:       duration,
		metrics:        m,
	}, nil
}

// Issue mints a token for userID and appends it to the stored token list.
// The token is returned only after the append has been committed.
func (t *tokenIssuer) Issue(ctx context.Context, userID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.issuer, userID, t.duration, t.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = t.userRepository.AppendToken(ctx, userID, token.SignedString); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenIssuer.Issue").Str("user_id", userID).Msg("failed to record token")
		return models.Token{}, fmt.Errorf("error recording token: %w", err)
	}
	t.metrics.RecordTokenIssued()

	return token, nil
}

// Parse validates tokenString. Every failure is reported as
// ErrTokenIsExpiredOrInvalid.
func (t *tokenIssuer) Parse(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.signKey, t.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "tokenIssuer.Parse").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
