package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/models"
)

// sessionStore keeps the single CLI session row in a local SQLite file.
type sessionStore struct {
	*DB
	logger *logger.Logger
}

// NewSessionStore returns a [SessionStore] backed by db. db must have the
// client session schema applied.
func NewSessionStore(db *DB, logger *logger.Logger) SessionStore {
	return &sessionStore{
		DB:     db,
		logger: logger,
	}
}

// Save replaces the stored session.
func (s *sessionStore) Save(ctx context.Context, session models.Session) error {
	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now().UTC()
	}

	query, args, err := s.buildUpsertSessionQuery(session)
	if err != nil {
		return err
	}

	err = s.withRetry(ctx, func(ctx context.Context) error {
		_, err := s.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionStore.Save").Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Load returns the stored session or ErrSessionNotFound.
func (s *sessionStore) Load(ctx context.Context) (models.Session, error) {
	query, args, err := s.buildSelectSessionQuery()
	if err != nil {
		return models.Session{}, err
	}

	var session models.Session
	err = s.withRetry(ctx, func(ctx context.Context) error {
		return s.QueryRowContext(ctx, query, args...).Scan(
			&session.UserID,
			&session.Name,
			&session.Email,
			&session.Token,
			&session.Server,
			timestamp{&session.SavedAt},
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionStore.Load").Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// Clear forgets the stored session. Clearing an empty store is not an error.
func (s *sessionStore) Clear(ctx context.Context) error {
	query, args, err := s.buildDeleteSessionQuery()
	if err != nil {
		return err
	}

	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionStore.Clear").Msg("failed to clear session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
