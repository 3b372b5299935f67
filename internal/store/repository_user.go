package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/models"
)

// userRepository is the SQL implementation of [UserRepository]. The same
// code serves PostgreSQL and SQLite; only the placeholder format of the
// generated statements differs.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, "userRepository.FindByID", sq.Eq{"id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "userRepository.FindByEmail", sq.Eq{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSelectUserQuery(where)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to create query")
		return models.User{}, err
	}

	var user models.User
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return scanUser(r.QueryRowContext(ctx, query, args...), &user)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to load user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = r.loadRelations(ctx, &user); err != nil {
		log.Err(err).Str("func", fn).Str("user_id", user.ID).Msg("failed to load tokens and follows")
		return models.User{}, err
	}

	return user, nil
}

// loadRelations fills the token list and both follow sets of user.
func (r *userRepository) loadRelations(ctx context.Context, user *models.User) error {
	var err error

	if user.Tokens, err = r.selectStrings(ctx, r.buildSelectTokensQuery, user.ID); err != nil {
		return err
	}
	if user.Followers, err = r.selectStrings(ctx, r.buildSelectFollowersQuery, user.ID); err != nil {
		return err
	}
	if user.Following, err = r.selectStrings(ctx, r.buildSelectFollowingQuery, user.ID); err != nil {
		return err
	}

	return nil
}

func (r *userRepository) selectStrings(ctx context.Context, build func(string) (string, []any, error), userID string) ([]string, error) {
	query, args, err := build(userID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0)
	err = r.withRetry(ctx, func(ctx context.Context) error {
		out = out[:0]

		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var s string
			if err := rows.Scan(&s); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			out = append(out, s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})

	return out, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := r.buildEmailExistsQuery(email)
	if err != nil {
		return false, err
	}

	return r.exists(ctx, "userRepository.ExistsByEmail", query, args)
}

func (r *userRepository) HasToken(ctx context.Context, userID, token string) (bool, error) {
	query, args, err := r.buildHasTokenQuery(userID, token)
	if err != nil {
		return false, err
	}

	return r.exists(ctx, "userRepository.HasToken", query, args)
}

func (r *userRepository) exists(ctx context.Context, fn, query string, args []any) (bool, error) {
	var found bool
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(&found)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("existence check failed")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Create").Msg("failed to create query")
		return models.User{}, err
	}

	err = r.QueryRowContext(ctx, query, args...).Scan(&user.Version, timestamp{&user.CreatedAt}, timestamp{&user.UpdatedAt})
	if err != nil {
		if violatedConstraint(err) == constraintUnique {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "userRepository.Create").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	user.Tokens = []string{}
	user.Followers = []string{}
	user.Following = []string{}

	log.Debug().Str("func", "userRepository.Create").Str("user_id", user.ID).Msg("user created")
	return user, nil
}

func (r *userRepository) Save(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSaveUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Save").Msg("failed to create query")
		return models.User{}, err
	}

	loadedVersion := user.Version
	err = r.QueryRowContext(ctx, query, args...).Scan(&user.Version, timestamp{&user.UpdatedAt})
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, sql.ErrNoRows):
		// either the row is gone or someone else saved first
		exists, existsErr := r.userExists(ctx, user.ID)
		if existsErr != nil {
			return models.User{}, existsErr
		}
		if !exists {
			return models.User{}, ErrUserNotFound
		}
		log.Debug().
			Str("func", "userRepository.Save").
			Str("user_id", user.ID).
			Int64("loaded_version", loadedVersion).
			Msg("version conflict")
		return models.User{}, ErrVersionConflict
	case violatedConstraint(err) == constraintUnique:
		return models.User{}, ErrEmailAlreadyExists
	default:
		log.Err(err).Str("func", "userRepository.Save").Str("user_id", user.ID).Msg("failed to update user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

func (r *userRepository) userExists(ctx context.Context, userID string) (bool, error) {
	query, args, err := r.buildUserExistsQuery(userID)
	if err != nil {
		return false, err
	}

	return r.exists(ctx, "userRepository.userExists", query, args)
}

// AppendToken is a single INSERT, so concurrent logins of the same user can
// never overwrite each other's tokens.
func (r *userRepository) AppendToken(ctx context.Context, userID, token string) error {
	query, args, err := r.buildInsertTokenQuery(userID, token)
	if err != nil {
		return err
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	switch violatedConstraint(err) {
	case constraintNone:
	case constraintForeignKey:
		return ErrUserNotFound
	case constraintUnique:
		return ErrDuplicateToken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.AppendToken").Str("user_id", userID).Msg("failed to record token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *userRepository) RevokeToken(ctx context.Context, userID, token string) (int64, error) {
	return r.deleteTokens(ctx, "userRepository.RevokeToken", userID, token)
}

func (r *userRepository) RevokeAllTokens(ctx context.Context, userID string) (int64, error) {
	return r.deleteTokens(ctx, "userRepository.RevokeAllTokens", userID, "")
}

func (r *userRepository) deleteTokens(ctx context.Context, fn, userID, token string) (int64, error) {
	query, args, err := r.buildDeleteTokensQuery(userID, token)
	if err != nil {
		return 0, err
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("user_id", userID).Msg("failed to delete tokens")
		return 0, err
	}

	return affected, nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	query, args, err := r.buildDeleteUserQuery(userID)
	if err != nil {
		return err
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.Delete").Str("user_id", userID).Msg("failed to delete user")
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) SetUserType(ctx context.Context, userID string, userType models.UserType) error {
	query, args, err := r.buildSetUserTypeQuery(userID, userType)
	if err != nil {
		return err
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.SetUserType").Str("user_id", userID).Msg("failed to set user type")
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) AddFollow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	query, args, err := r.buildInsertFollowQuery(followerID, followeeID)
	if err != nil {
		return err
	}

	_, err = r.ExecContext(ctx, query, args...)
	switch violatedConstraint(err) {
	case constraintNone:
	case constraintUnique:
		return ErrAlreadyFollowing
	case constraintForeignKey:
		return ErrUserNotFound
	case constraintCheck:
		return ErrSelfFollow
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.AddFollow").Msg("failed to insert follow edge")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *userRepository) RemoveFollow(ctx context.Context, followerID, followeeID string) error {
	query, args, err := r.buildDeleteFollowQuery(followerID, followeeID)
	if err != nil {
		return err
	}

	affected, err := r.execAffected(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "userRepository.RemoveFollow").Msg("failed to delete follow edge")
		return err
	}
	if affected == 0 {
		return ErrNotFollowing
	}

	return nil
}

func (r *userRepository) execAffected(ctx context.Context, query string, args []any) (int64, error) {
	var affected int64
	err := r.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *models.User) error {
	var userType string
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&userType,
		&u.Age,
		&u.IsAdmin,
		&u.IsVerified,
		&u.AvatarURL,
		&u.Version,
		timestamp{&u.CreatedAt},
		timestamp{&u.UpdatedAt},
	); err != nil {
		return err
	}
	u.UserType = models.UserType(userType)

	return nil
}
