package crypto

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/metrics"
	"github.com/MKhiriev/go-shelf-auth/internal/workers"
	"golang.org/x/crypto/bcrypt"
)

// dummyPlaintext seeds the hash used by VerifyDummy. Its value is irrelevant;
// only the cost of comparing against it matters.
const dummyPlaintext = "shelf-auth-dummy-credential"

// BcryptHasher implements [PasswordHasher] with bcrypt. Every computation is
// submitted to a bounded worker pool.
type BcryptHasher struct {
	cost    int
	pool    workers.Executor
	metrics *metrics.Metrics

	dummyOnce sync.Once
	dummyHash []byte
	dummyErr  error
}

// NewBcryptHasher returns a hasher with the given work factor. Costs outside
// bcrypt's range fall back to bcrypt.DefaultCost. m may be nil.
func NewBcryptHasher(cost int, pool workers.Executor, m *metrics.Metrics) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{
		cost:    cost,
		pool:    pool,
		metrics: m,
	}
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	var hashed []byte

	err := h.run(ctx, metrics.OpHash, func() error {
		var err error
		hashed, err = bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		return err
	})
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		if ctx.Err() != nil {
			return "", err
		}
		logger.FromContext(ctx).Err(err).Str("func", "BcryptHasher.Hash").Msg("bcrypt failed")
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}

	return string(hashed), nil
}

func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	var cmpErr error

	err := h.run(ctx, metrics.OpVerify, func() error {
		cmpErr = bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
		return nil
	})
	if err != nil {
		return false, err
	}

	switch {
	case cmpErr == nil:
		return true, nil
	case errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword),
		errors.Is(cmpErr, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, cmpErr)
	}
}

func (h *BcryptHasher) VerifyDummy(ctx context.Context, plaintext string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, h.dummyErr = bcrypt.GenerateFromPassword([]byte(dummyPlaintext), h.cost)
	})
	if h.dummyErr != nil {
		logger.FromContext(ctx).Err(h.dummyErr).Str("func", "BcryptHasher.VerifyDummy").Msg("dummy hash unavailable")
		return
	}

	_, _ = h.Verify(ctx, plaintext, string(h.dummyHash))
}

func (h *BcryptHasher) run(ctx context.Context, op string, fn func() error) error {
	start := time.Now()
	defer func() { h.metrics.RecordHash(op, time.Since(start)) }()

	if h.pool == nil {
		return fn()
	}
	return h.pool.Do(ctx, fn)
}
