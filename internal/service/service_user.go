package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/crypto"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/sethvargo/go-retry"
)

const updateRetryBase = 10 * time.Millisecond

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	hasher         crypto.PasswordHasher

	// updateRetries bounds how many times a profile update is reapplied
	// after losing an optimistic-locking race.
	updateRetries uint64

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewUserService constructs a [UserService].
func NewUserService(
	userRepository store.UserRepository,
	validator validators.Validator,
	hasher crypto.PasswordHasher,
	updateRetries int,
	m *metrics.Metrics,
	logger *logger.Logger,
) UserService {
	if updateRetries < 0 {
		updateRetries = 0
	}

	return &userService{
		userRepository: userRepository,
		validator:      validator,
		hasher:         hasher,
		updateRetries:  uint64(updateRetries),
		metrics:        m,
		logger:         logger,
	}
}

func (s *userService) Get(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}

	return user, nil
}

// UpdateProfile loads the caller's record, applies upd and saves it with a
// version check. On a conflict the record is reloaded and upd reapplied, up
// to updateRetries times with exponential backoff.
func (s *userService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if upd.IsEmpty() {
		return models.User{}, ErrNothingToUpdate
	}

	current, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}

	// an unchanged email must not trip the uniqueness check against itself
	if upd.Email != nil {
		email := models.NormalizeEmail(*upd.Email)
		upd.Email = &email
		if email == current.Email {
			upd.Email = nil
		}
	}
	if upd.IsEmpty() {
		return current, nil
	}

	if err = s.validator.Validate(ctx, upd); err != nil {
		return models.User{}, err
	}

	var newHash string
	if upd.Password != nil {
		if newHash, err = s.hasher.Hash(ctx, *upd.Password); err != nil {
			log.Err(err).Str("func", "userService.UpdateProfile").Str("user_id", userID).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
	}

	var saved models.User
	backoff := retry.WithMaxRetries(s.updateRetries, retry.WithJitterPercent(20, retry.NewExponential(updateRetryBase)))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate := applyProfileUpdate(current, upd, newHash)

		var saveErr error
		saved, saveErr = s.userRepository.Save(ctx, candidate)
		if !errors.Is(saveErr, store.ErrVersionConflict) {
			return saveErr
		}

		s.metrics.RecordVersionConflict()
		log.Debug().Str("func", "userService.UpdateProfile").Str("user_id", userID).Msg("version conflict, reloading")

		reloaded, loadErr := s.userRepository.FindByID(ctx, userID)
		if loadErr != nil {
			return loadErr
		}
		current = reloaded

		return retry.RetryableError(saveErr)
	})
	if err != nil {
		log.Err(err).Str("func", "userService.UpdateProfile").Str("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}

	return saved, nil
}

func applyProfileUpdate(u models.User, upd models.ProfileUpdate, newHash string) models.User {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if newHash != "" {
		u.PasswordHash = newHash
	}

	return u
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	if err := s.userRepository.Delete(ctx, userID); err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "userService.Delete").Str("user_id", userID).Msg("user deleted")
	return nil
}

func (s *userService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return store.ErrSelfFollow
	}

	if err := s.userRepository.AddFollow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("error following user: %w", err)
	}

	return nil
}

func (s *userService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := s.userRepository.RemoveFollow(ctx, followerID, followeeID); err != nil {
		return fmt.Errorf("error unfollowing user: %w", err)
	}

	return nil
}

// SetUserType only checks that userType is one of the known values; it does
// not restrict which transitions are allowed.
func (s *userService) SetUserType(ctx context.Context, actorID, targetID string, userType models.UserType) error {
	if err := s.validator.Validate(ctx, models.UserTypeChange{UserType: userType}); err != nil {
		return err
	}

	actor, err := s.userRepository.FindByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("error getting user: %w", err)
	}
	if !actor.IsAdmin {
		return ErrForbidden
	}

	if err = s.userRepository.SetUserType(ctx, targetID, userType); err != nil {
		return fmt.Errorf("error setting user type: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "userService.SetUserType").
		Str("actor_id", actorID).
		Str("user_id", targetID).
		Str("user_type", string(userType)).
		Msg("user type changed")
	return nil
}
