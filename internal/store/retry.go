package store

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"

	"github.com/citypass-labs/ticketd/internal/domain"
)

// retryOnce runs op and, when it fails with a transient storage error, runs it
// one more time after a short jittered backoff. Callers are read-only lookups
// and the claim transaction, which rolls back fully on failure; plain write
// paths never go through here, a half-applied write must not be re-run.
func retryOnce(ctx context.Context, op func() error) error {
	attempt := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !retryableStoreError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.RandomizationFactor = 0.5 // jitter to prevent thundering herd

	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(b, 1), ctx))
}

// retryableStoreError reports whether a storage error is worth a second
// attempt. Deterministic outcomes fail the same way twice: business
// sentinels, missing rows, duplicate keys and cancelled contexts are
// surfaced immediately.
func retryableStoreError(err error) bool {
	for _, sentinel := range []error{
		gorm.ErrRecordNotFound,
		gorm.ErrDuplicatedKey,
		context.Canceled,
		context.DeadlineExceeded,
		domain.ErrTemplateNotFound,
		domain.ErrAlreadyClaimed,
		domain.ErrOutOfStock,
		domain.ErrLinkNotFound,
		domain.ErrLinkFinalized,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}
