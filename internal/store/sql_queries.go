package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shelf-auth/models"
)

const (
	usersTable   = "users"
	tokensTable  = "user_tokens"
	followsTable = "user_follows"
	sessionTable = "session"
)

// userColumns is the column order scanned by scanUser.
var userColumns = []string{
	"id",
	"name",
	"email",
	"password_hash",
	"user_type",
	"age",
	"is_admin",
	"is_verified",
	"avatar_url",
	"version",
	"created_at",
	"updated_at",
}

// currentTimestamp is understood by both PostgreSQL and SQLite.
var currentTimestamp = sq.Expr("CURRENT_TIMESTAMP")

func wrapBuild(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildSelectUserQuery(where sq.Eq) (string, []any, error) {
	return wrapBuild(db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql())
}

func (db *DB) buildEmailExistsQuery(email string) (string, []any, error) {
	return wrapBuild(db.builder.
		Select("1").
		From(usersTable).
		Where(sq.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql())
}

func (db *DB) buildInsertUserQuery(u models.User) (string, []any, error) {
	return wrapBuild(db.builder.
		Insert(usersTable).
		Columns("id", "name", "email", "password_hash", "user_type", "age", "is_admin", "is_verified", "avatar_url").
		Values(u.ID, u.Name, u.Email, u.PasswordHash, string(u.UserType), u.Age, u.IsAdmin, u.IsVerified, u.AvatarURL).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql())
}

// buildSaveUserQuery builds the optimistic update: it matches only while the
// stored version equals the one the caller loaded.
func (db *DB) buildSaveUserQuery(u models.User) (string, []any, error) {
	return wrapBuild(db.builder.
		Update(usersTable).
		Set("name", u.Name).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("age", u.Age).
		Set("is_verified", u.IsVerified).
		Set("avatar_url", u.AvatarURL).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", currentTimestamp).
		Where(sq.Eq{"id": u.ID, "version": u.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql())
}

func (db *DB) buildSetUserTypeQuery(userID string, userType models.UserType) (string, []any, error) {
	return wrapBuild(db.builder.
		Update(usersTable).
		Set("user_type", string(userType)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", currentTimestamp).
		Where(sq.Eq{"id": userID}).
		ToSql())
}

func (db *DB) buildDeleteUserQuery(userID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Delete(usersTable).
		Where(sq.Eq{"id": userID}).
		ToSql())
}

func (db *DB) buildUserExistsQuery(userID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Select("1").
		From(usersTable).
		Where(sq.Eq{"id": userID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql())
}

// tokens

func (db *DB) buildSelectTokensQuery(userID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Select("token").
		From(tokensTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql())
}

func (db *DB) buildInsertTokenQuery(userID, token string) (string, []any, error) {
	return wrapBuild(db.builder.
		Insert(tokensTable).
		Columns("user_id", "token").
		Values(userID, token).
		ToSql())
}

func (db *DB) buildHasTokenQuery(userID, token string) (string, []any, error) {
	return wrapBuild(db.builder.
		Select("1").
		From(tokensTable).
		Where(sq.Eq{"user_id": userID, "token": token}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql())
}

// buildDeleteTokensQuery deletes one token, or every token of the user when
// token is empty.
func (db *DB) buildDeleteTokensQuery(userID, token string) (string, []any, error) {
	where := sq.Eq{"user_id": userID}
	if token != "" {
		where["token"] = token
	}

	return wrapBuild(db.builder.
		Delete(tokensTable).
		Where(where).
		ToSql())
}

// follows

func (db *DB) buildSelectFollowersQuery(userID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Select("follower_id").
		From(followsTable).
		Where(sq.Eq{"followee_id": userID}).
		OrderBy("created_at", "follower_id").
		ToSql())
}

func (db *DB) buildSelectFollowingQuery(userID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Select("followee_id").
		From(followsTable).
		Where(sq.Eq{"follower_id": userID}).
		OrderBy("created_at", "followee_id").
		ToSql())
}

func (db *DB) buildInsertFollowQuery(followerID, followeeID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Insert(followsTable).
		Columns("follower_id", "followee_id").
		Values(followerID, followeeID).
		ToSql())
}

func (db *DB) buildDeleteFollowQuery(followerID, followeeID string) (string, []any, error) {
	return wrapBuild(db.builder.
		Delete(followsTable).
		Where(sq.Eq{"follower_id": followerID, "followee_id": followeeID}).
		ToSql())
}

// client session

func (db *DB) buildUpsertSessionQuery(s models.Session) (string, []any, error) {
	return wrapBuild(db.builder.
		Insert(sessionTable).
		Columns("id", "user_id", "name", "email", "token", "server", "saved_at").
		Values(1, s.UserID, s.Name, s.Email, s.Token, s.Server, s.SavedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"user_id = excluded.user_id, name = excluded.name, email = excluded.email, " +
			"token = excluded.token, server = excluded.server, saved_at = excluded.saved_at").
		ToSql())
}

func (db *DB) buildSelectSessionQuery() (string, []any, error) {
	return wrapBuild(db.builder.
		Select("user_id", "name", "email", "token", "server", "saved_at").
		From(sessionTable).
		Where(sq.Eq{"id": 1}).
		ToSql())
}

func (db *DB) buildDeleteSessionQuery() (string, []any, error) {
	return wrapBuild(db.builder.
		Delete(sessionTable).
		ToSql())
}
