// Package migrations embeds the SQL schema of every supported backend and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql client/*.sql
var embedMigrations embed.FS

// Target names one migration set.
type Target string

const (
	// Postgres is the server schema on PostgreSQL.
	Postgres Target = "postgres"
	// SQLite is the server schema on SQLite.
	SQLite Target = "sqlite"
	// ClientSession is the CLI client's local session schema on SQLite.
	ClientSession Target = "client"
)

var (
	ErrNilDB         = errors.New("migration error: db is nil")
	ErrUnknownTarget = errors.New("migration error: unknown target")
)

func (t Target) dialect() (goose.Dialect, string, error) {
	switch t {
	case Postgres:
		return goose.DialectPostgres, "postgres", nil
	case SQLite:
		return goose.DialectSQLite3, "sqlite", nil
	case ClientSession:
		return goose.DialectSQLite3, "client", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTarget, string(t))
	}
}

// Migrate applies every pending migration of target to db.
func Migrate(ctx context.Context, db *sql.DB, target Target) error {
	if db == nil {
		return ErrNilDB
	}

	dialect, dir, err := target.dialect()
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
