package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/models"
)

// authService is the concrete implementation of AuthService.
// It composes the validator, the password hasher, the credential verifier
// and the token issuer around a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create users and to
	// check and revoke their tokens.
	userRepository store.UserRepository

	validator   validators.Validator
	hasher      crypto.PasswordHasher
	verifier    CredentialVerifier
	tokenIssuer TokenIssuer
	ids         IDGenerator

	metrics *metrics.Metrics

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	validator validators.Validator,
	hasher crypto.PasswordHasher,
	tokenIssuer TokenIssuer,
	ids IDGenerator,
	m *metrics.Metrics,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validator,
		hasher:         hasher,
		verifier:       NewCredentialVerifier(userRepository, hasher),
		tokenIssuer:    tokenIssuer,
		ids:            ids,
		metrics:        m,
		logger:         logger,
	}
}

// Register creates a new account and issues its first token.
//
// The email is normalized before validation, so the uniqueness check is
// case-insensitive. The password is hashed exactly once.
//
// Returns the persisted user or:
//   - *validators.ValidationError if any field breaks a rule.
//   - store.ErrEmailAlreadyExists (wrapped) if a concurrent registration won
//     the race for the same email.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	req.Email = models.NormalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		a.recordAuth(metrics.FlowRegister, err)
		return models.User{}, models.Token{}, err
	}

	hash, err := a.hasher.Hash(ctx, req.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("password hashing failed")
		a.recordAuth(metrics.FlowRegister, err)
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.NewUser(req.Name, req.Email, req.Age)
	user.ID = a.ids.Generate()
	user.PasswordHash = hash

	created, err := a.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "authService.Register").Msg("user creation ended with error")
		a.recordAuth(metrics.FlowRegister, err)
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.tokenIssuer.Issue(ctx, created.ID)
	if err != nil {
		a.recordAuth(metrics.FlowRegister, err)
		return models.User{}, models.Token{}, err
	}
	created.Tokens = append(created.Tokens, token.SignedString)

	a.recordAuth(metrics.FlowRegister, nil)
	log.Info().Str("func", "authService.Register").Str("user_id", created.ID).Msg("user registered")

	return created, token, nil
}

// Login verifies creds and issues a new token. Every credential failure is
// ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, models.Token, error) {
	user, err := a.verifier.Verify(ctx, creds.Email, creds.Password)
	if err != nil {
		a.recordAuth(metrics.FlowLogin, err)
		return models.User{}, models.Token{}, err
	}

	token, err := a.tokenIssuer.Issue(ctx, user.ID)
	if err != nil {
		a.recordAuth(metrics.FlowLogin, err)
		return models.User{}, models.Token{}, err
	}
	user.Tokens = append(user.Tokens, token.SignedString)

	a.recordAuth(metrics.FlowLogin, nil)
	return user, token, nil
}

// Authenticate parses tokenString and checks that it has not been revoked.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := a.tokenIssuer.Parse(ctx, tokenString)
	if err != nil {
		a.recordAuth(metrics.FlowToken, err)
		return models.Token{}, err
	}

	active, err := a.userRepository.HasToken(ctx, token.UserID, tokenString)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.Authenticate").Msg("token lookup failed")
		a.recordAuth(metrics.FlowToken, err)
		return models.Token{}, fmt.Errorf("token lookup failed: %w", err)
	}
	if !active {
		a.recordAuth(metrics.FlowToken, ErrTokenIsExpiredOrInvalid)
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	a.recordAuth(metrics.FlowToken, nil)
	return token, nil
}

// Logout revokes tokenString. Revoking a token that is already gone is not an
// error.
func (a *authService) Logout(ctx context.Context, userID, tokenString string) error {
	n, err := a.userRepository.RevokeToken(ctx, userID, tokenString)
	if err != nil {
		return fmt.Errorf("token revocation failed: %w", err)
	}
	a.metrics.RecordTokensRevoked(int(n))

	return nil
}

// LogoutAll revokes every token of userID.
func (a *authService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	n, err := a.userRepository.RevokeAllTokens(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("token revocation failed: %w", err)
	}
	a.metrics.RecordTokensRevoked(int(n))

	logger.FromContext(ctx).Info().Str("func", "authService.LogoutAll").Str("user_id", userID).Int64("revoked", n).Msg("all sessions revoked")
	return n, nil
}

func (a *authService) recordAuth(flow string, err error) {
	switch {
	case err == nil:
		a.metrics.RecordAuth(flow, metrics.ResultSuccess)
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrTokenIsExpiredOrInvalid),
		errors.Is(err, validators.ErrValidation),
		errors.Is(err, store.ErrEmailAlreadyExists):
		a.metrics.RecordAuth(flow, metrics.ResultFailure)
	default:
		a.metrics.RecordAuth(flow, metrics.ResultError)
	}
}
