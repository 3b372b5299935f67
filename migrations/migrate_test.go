// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: the first statement goose sends fails
	err = Migrate(context.Background(), db, Postgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(context.Background(), db, Postgres)
	assert.ErrorIs(t, err, ErrNilDB)
}

func TestMigrate_UnknownTarget(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db, Target("mysql"))
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

// TestEmbeddedMigrations keeps the dialect sets in step with each other.
func TestEmbeddedMigrations(t *testing.T) {
	names := func(dir string) []string {
		entries, err := fs.ReadDir(embedMigrations, dir)
		require.NoError(t, err)
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	pg := names("postgres")
	lite := names("sqlite")
	assert.Equal(t, pg, lite)
	assert.NotEmpty(t, names("client"))

	for _, dir := range []string{"postgres", "sqlite", "client"} {
		for _, name := range names(dir) {
			body, err := fs.ReadFile(embedMigrations, dir+"/"+name)
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(body), "-- +goose Up"), "%s/%s lacks an Up section", dir, name)
			assert.True(t, strings.Contains(string(body), "-- +goose Down"), "%s/%s lacks a Down section", dir, name)
		}
	}
}
