package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an INSERT or UPDATE would give a
	// second account the same normalized email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when the targeted user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version the caller loaded no longer matches the stored one, meaning
	// another writer saved the record in between.
	ErrVersionConflict = errors.New("user version conflict occurred")

	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following")

	// ErrNotFollowing is returned when removing a follow edge that does not
	// exist.
	ErrNotFollowing = errors.New("not following")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrDuplicateToken is returned when the very same token string is
	// recorded twice.
	ErrDuplicateToken = errors.New("token already recorded")

	// ErrSessionNotFound is returned by the client session store when no
	// session has been saved.
	ErrSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDriver is returned by NewStorages for an unknown driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
