package service

import (
	"testing"

	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/internal/workers"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-shelf-auth-test"
	testPass    = "Secur3Pass"
)

type testEnv struct {
	repo    *memoryRepository
	hasher  *crypto.BcryptHasher
	issuer  TokenIssuer
	auth    AuthService
	users   UserService
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pool := workers.NewPool(4)
	t.Cleanup(pool.Close)

	m := metrics.New()
	repo := newMemoryRepository()
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost, pool, m)
	validator := validators.NewUserValidator(repo)

	issuer, err := NewTokenIssuer(repo, testSignKey, testIssuer, 0, m)
	require.NoError(t, err)

	return &testEnv{
		repo:    repo,
		hasher:  hasher,
		issuer:  issuer,
		auth:    NewAuthService(repo, validator, hasher, issuer, utils.NewUUIDGenerator(), m, logger.Nop()),
		users:   NewUserService(repo, validator, hasher, 3, m, logger.Nop()),
		metrics: m,
	}
}

func ptr[T any](v T) *T { return &v }
