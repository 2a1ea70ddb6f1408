// Package lock provides locks shared between instances of the service so a
// periodic job runs on at most one of them at a time.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotHeld is returned when a lease has expired or been taken by another
// holder
var ErrNotHeld = errors.New("lock is no longer held")

// Locker acquires named locks that expire after a ttl. When the lock is held
// elsewhere acquired is false and the lease is nil.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (lease Lease, acquired bool, err error)
}

// Lease is a held lock. Refresh extends it by its ttl, Release gives it up
// early.
type Lease interface {
	Refresh(ctx context.Context) error
	Release(ctx context.Context) error
}
