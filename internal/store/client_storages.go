package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/migrations"
)

// ClientStorages groups the storage used by the CLI client. The client only
// remembers its current session.
type ClientStorages struct {
	SessionStore SessionStore

	db *DB
}

// NewClientStorages opens the SQLite session file at cfg.SessionDSN,
// creating it if needed, and applies the session schema.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Debug().Str("dsn", cfg.SessionDSN).Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.SessionDSN, migrations.ClientSession, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionStore: NewSessionStore(db, logger),
		db:           db,
	}, nil
}

// Close releases the session database.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
