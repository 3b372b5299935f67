// Package workers provides a bounded pool for CPU-bound units of work.
//
// Password hashing is the main client: each hash runs as its own task on the
// pool so that an expensive computation never blocks the request goroutines
// of unrelated users, and the total CPU spent on hashing stays bounded.
package workers

import "context"

// Executor runs a unit of work with bounded concurrency.
//
// Do blocks until fn has returned or ctx is done, whichever comes first.
// When ctx ends first, Do returns ctx.Err() and fn keeps running to
// completion in the background.
//
// Example:
//
//	err := pool.Do(ctx, func() error {
//	    hash, err = bcrypt.GenerateFromPassword(pw, cost)
//	    return err
//	})
type Executor interface {
	Do(ctx context.Context, fn func() error) error
}
