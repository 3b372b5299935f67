package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/mock"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewTokenIssuer_RequiresKey(t *testing.T) {
	_, err := NewTokenIssuer(newMemoryRepository(), "", testIssuer, 0, nil)
	assert.ErrorIs(t, err, ErrSignKeyIsNotSpecified)
}

func TestTokenIssuer_IssueAppendsExactlyOneToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.repo.Create(ctx, models.NewUser("Alice", "alice@example.com", 30))
	require.NoError(t, err)

	token, err := env.issuer.Issue(ctx, user.ID)
	require.NoError(t, err)

	stored, err := env.repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{token.SignedString}, stored.Tokens)

	parsed, err := env.issuer.Parse(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed.UserID)
}

func TestTokenIssuer_ConcurrentIssueKeepsBothTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.repo.Create(ctx, models.NewUser("Alice", "alice@example.com", 30))
	require.NoError(t, err)

	var (
		wg     sync.WaitGroup
		tokens [2]models.Token
		errs   [2]error
	)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = env.issuer.Issue(ctx, user.ID)
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored, err := env.repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Tokens, 2)
	assert.ElementsMatch(t, []string{tokens[0].SignedString, tokens[1].SignedString}, stored.Tokens)
}

func TestTokenIssuer_IssueUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.issuer.Issue(context.Background(), "0190c3e4-5d6f-7a8b-9c0d-1e2f3a4b5c6d")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestTokenIssuer_IssueRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	issuer, err := NewTokenIssuer(repo, testSignKey, testIssuer, time.Hour, nil)
	require.NoError(t, err)

	repo.EXPECT().AppendToken(gomock.Any(), "user-1", gomock.Any()).Return(store.ErrExecutingQuery)

	_, err = issuer.Issue(context.Background(), "user-1")
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestTokenIssuer_IssueInvalidUserID(t *testing.T) {
	issuer, err := NewTokenIssuer(newMemoryRepository(), testSignKey, testIssuer, 0, nil)
	require.NoError(t, err)

	_, err = issuer.Issue(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestTokenIssuer_Parse(t *testing.T) {
	issuer, err := NewTokenIssuer(newMemoryRepository(), testSignKey, testIssuer, 0, nil)
	require.NoError(t, err)

	foreign, err := utils.GenerateJWTToken(testIssuer, "user-1", 0, "another-key")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWTToken("someone-else", "user-1", 0, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong key", foreign.SignedString},
		{"wrong issuer", otherIssuer.SignedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Parse(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
