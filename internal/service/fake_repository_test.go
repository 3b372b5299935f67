package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/models"
)

// memoryRepository is an in-memory store.UserRepository with the same error
// contract as the SQL implementation.
type memoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User

	// beforeSave, when set, runs under no lock right before Save compares
	// versions. Tests use it to interleave a competing writer.
	beforeSave func(models.User)
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: map[string]models.User{}}
}

func (r *memoryRepository) snapshot(u models.User) models.User {
	u.Tokens = slices.Clone(u.Tokens)
	u.Followers = slices.Clone(u.Followers)
	u.Following = slices.Clone(u.Following)
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	return u
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return r.snapshot(u), nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return r.snapshot(u), nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (r *memoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memoryRepository) Create(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}

	now := time.Now().UTC()
	user.Version = 1
	user.CreatedAt, user.UpdatedAt = now, now
	user.Tokens, user.Followers, user.Following = []string{}, []string{}, []string{}
	r.users[user.ID] = user

	return r.snapshot(user), nil
}

func (r *memoryRepository) Save(_ context.Context, user models.User) (models.User, error) {
	if r.beforeSave != nil {
		r.beforeSave(user)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	if stored.Version != user.Version {
		return models.User{}, store.ErrVersionConflict
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}

	stored.Name = user.Name
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.Age = user.Age
	stored.IsVerified = user.IsVerified
	stored.AvatarURL = user.AvatarURL
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = stored

	return r.snapshot(stored), nil
}

func (r *memoryRepository) AppendToken(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	if slices.Contains(u.Tokens, token) {
		return store.ErrDuplicateToken
	}
	u.Tokens = append(u.Tokens, token)
	r.users[userID] = u

	return nil
}

func (r *memoryRepository) HasToken(_ context.Context, userID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Contains(r.users[userID].Tokens, token), nil
}

func (r *memoryRepository) RevokeToken(_ context.Context, userID, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return 0, nil
	}
	before := len(u.Tokens)
	u.Tokens = slices.DeleteFunc(u.Tokens, func(t string) bool { return t == token })
	r.users[userID] = u

	return int64(before - len(u.Tokens)), nil
}

func (r *memoryRepository) RevokeAllTokens(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return 0, nil
	}
	n := len(u.Tokens)
	u.Tokens = []string{}
	r.users[userID] = u

	return int64(n), nil
}

func (r *memoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return store.ErrUserNotFound
	}
	delete(r.users, userID)

	for id, u := range r.users {
		u.Followers = slices.DeleteFunc(u.Followers, func(s string) bool { return s == userID })
		u.Following = slices.DeleteFunc(u.Following, func(s string) bool { return s == userID })
		r.users[id] = u
	}

	return nil
}

func (r *memoryRepository) SetUserType(_ context.Context, userID string, userType models.UserType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.UserType = userType
	u.Version++
	r.users[userID] = u

	return nil
}

func (r *memoryRepository) AddFollow(_ context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return store.ErrSelfFollow
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	follower, ok := r.users[followerID]
	if !ok {
		return store.ErrUserNotFound
	}
	followee, ok := r.users[followeeID]
	if !ok {
		return store.ErrUserNotFound
	}
	if slices.Contains(follower.Following, followeeID) {
		return store.ErrAlreadyFollowing
	}

	follower.Following = append(follower.Following, followeeID)
	followee.Followers = append(followee.Followers, followerID)
	r.users[followerID] = follower
	r.users[followeeID] = followee

	return nil
}

func (r *memoryRepository) RemoveFollow(_ context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	follower := r.users[followerID]
	if !slices.Contains(follower.Following, followeeID) {
		return store.ErrNotFollowing
	}

	followee := r.users[followeeID]
	follower.Following = slices.DeleteFunc(follower.Following, func(s string) bool { return s == followeeID })
	followee.Followers = slices.DeleteFunc(followee.Followers, func(s string) bool { return s == followerID })
	r.users[followerID] = follower
	r.users[followeeID] = followee

	return nil
}

// promote flips the admin flag directly; there is no service operation for it.
func (r *memoryRepository) promote(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.users[userID]
	u.IsAdmin = true
	r.users[userID] = u
}
