package service

import (
	"context"
	"sync"
	"testing"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/mock"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func registerUser(t *testing.T, env *testEnv, name, email string) models.User {
	t.Helper()
	user, _, err := env.auth.Register(context.Background(), models.RegisterRequest{
		Name: name, Email: email, Password: testPass, Age: 20,
	})
	require.NoError(t, err)
	return user
}

func TestUserService_UpdateProfile_NothingToUpdate(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "Alice", "alice@example.com")

	_, err := env.users.UpdateProfile(context.Background(), user.ID, models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestUserService_UpdateProfile_KeepsHashWithoutPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := registerUser(t, env, "Alice", "alice@example.com")

	updated, err := env.users.UpdateProfile(ctx, user.ID, models.ProfileUpdate{Name: ptr("Alicia"), Age: ptr(31)})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
	assert.Equal(t, user.Version+1, updated.Version)
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := registerUser(t, env, "Alice", "alice@example.com")

	updated, err := env.users.UpdateProfile(ctx, user.ID, models.ProfileUpdate{Password: ptr("N3wSecret")})
	require.NoError(t, err)
	assert.NotEqual(t, user.PasswordHash, updated.PasswordHash)
	assert.NotEqual(t, "N3wSecret", updated.PasswordHash)

	_, _, err = env.auth.Login(ctx, models.Credentials{Email: "alice@example.com", Password: "N3wSecret"})
	assert.NoError(t, err)
	_, _, err = env.auth.Login(ctx, models.Credentials{Email: "alice@example.com", Password: testPass})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_UpdateProfile_HasherNotCalledWithoutPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	ctx := context.Background()

	current := models.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$old", Version: 4}
	repo.EXPECT().FindByID(ctx, "u1").Return(current, nil)
	repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, "$2a$old", u.PasswordHash)
		assert.Equal(t, int64(4), u.Version)
		u.Version++
		return u, nil
	})

	svc := NewUserService(repo, validators.NewUserValidator(nil), hasher, 3, nil, logger.Nop())
	updated, err := svc.UpdateProfile(ctx, "u1", models.ProfileUpdate{Name: ptr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.Version)
}

func TestUserService_UpdateProfile_UnchangedEmail(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "Alice", "alice@example.com")

	updated, err := env.users.UpdateProfile(context.Background(), user.ID, models.ProfileUpdate{Email: ptr(" ALICE@example.com")})
	require.NoError(t, err)
	assert.Equal(t, user.Version, updated.Version)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "Bobby", "bob@example.com")
	alice := registerUser(t, env, "Alice", "alice@example.com")

	_, err := env.users.UpdateProfile(context.Background(), alice.ID, models.ProfileUpdate{Email: ptr("Bob@Example.com")})
	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is already taken", verr.Fields["email"])
}

func TestUserService_UpdateProfile_RetriesOnVersionConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := registerUser(t, env, "Alice", "alice@example.com")

	var once sync.Once
	env.repo.beforeSave = func(models.User) {
		once.Do(func() {
			// a competing writer lands between load and save
			env.repo.mu.Lock()
			u := env.repo.users[user.ID]
			u.Age = 99
			u.Version++
			env.repo.users[user.ID] = u
			env.repo.mu.Unlock()
		})
	}

	updated, err := env.users.UpdateProfile(ctx, user.ID, models.ProfileUpdate{Name: ptr("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, 99, updated.Age, "the competing write must not be lost")
	assert.Equal(t, user.Version+2, updated.Version)
}

func TestUserService_UpdateProfile_RetriesExhausted(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "Alice", "alice@example.com")

	env.repo.beforeSave = func(models.User) {
		env.repo.mu.Lock()
		u := env.repo.users[user.ID]
		u.Version++
		env.repo.users[user.ID] = u
		env.repo.mu.Unlock()
	}

	_, err := env.users.UpdateProfile(context.Background(), user.ID, models.ProfileUpdate{Name: ptr("Alicia")})
	assert.ErrorIs(t, err, store.ErrVersionConflict)
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.UpdateProfile(context.Background(), "missing", models.ProfileUpdate{Name: ptr("Alicia")})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_Follow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "Alice", "alice@example.com")
	bob := registerUser(t, env, "Bobby", "bob@example.com")

	assert.ErrorIs(t, env.users.Follow(ctx, alice.ID, alice.ID), store.ErrSelfFollow)

	require.NoError(t, env.users.Follow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, env.users.Follow(ctx, alice.ID, bob.ID), store.ErrAlreadyFollowing)
	assert.ErrorIs(t, env.users.Follow(ctx, alice.ID, "missing"), store.ErrUserNotFound)

	gotBob, err := env.users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, gotBob.Followers)

	gotAlice, err := env.users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, gotAlice.Following)

	require.NoError(t, env.users.Unfollow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, env.users.Unfollow(ctx, alice.ID, bob.ID), store.ErrNotFollowing)
}

func TestUserService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "Alice", "alice@example.com")
	bob := registerUser(t, env, "Bobby", "bob@example.com")
	require.NoError(t, env.users.Follow(ctx, bob.ID, alice.ID))

	require.NoError(t, env.users.Delete(ctx, alice.ID))

	_, err := env.users.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	gotBob, err := env.users.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, gotBob.Following)

	assert.ErrorIs(t, env.users.Delete(ctx, alice.ID), store.ErrUserNotFound)
}

func TestUserService_SetUserType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := registerUser(t, env, "Admin", "admin@example.com")
	alice := registerUser(t, env, "Alice", "alice@example.com")
	env.repo.promote(admin.ID)

	err := env.users.SetUserType(ctx, alice.ID, admin.ID, models.UserTypeAuthor)
	assert.ErrorIs(t, err, ErrForbidden)

	err = env.users.SetUserType(ctx, admin.ID, alice.ID, models.UserType("superuser"))
	assert.ErrorIs(t, err, validators.ErrValidation)

	require.NoError(t, env.users.SetUserType(ctx, admin.ID, alice.ID, models.UserTypeAuthor))
	got, err := env.users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAuthor, got.UserType)

	err = env.users.SetUserType(ctx, admin.ID, "missing", models.UserTypeAuthor)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
