package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/migrations"
	"github.com/sethvargo/go-retry"
)

// Retry policy for transient database failures.
const (
	retryBase     = 25 * time.Millisecond
	retryAttempts = 3
)

// DB wraps a connection pool with the pieces that differ per backend: the
// placeholder style of generated SQL, the migration set and the error
// classifier.
type DB struct {
	*sql.DB
	target             migrations.Target
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, target migrations.Target, classifier ErrorClassificator, log *logger.Logger) *DB {
	placeholder := sq.PlaceholderFormat(sq.Question)
	if target == migrations.Postgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		target:             target,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies the pending schema migrations of the backend.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.target)
}

// withRetry runs fn, retrying with exponential backoff while the classifier
// calls the failure transient.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "DB.withRetry").Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
