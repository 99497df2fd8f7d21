package repository

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/sirupsen/logrus"
)

// AdvisoryLock implements the admission lock on Postgres session-level
// advisory locks, keyed per scope string. Each Acquire pins a dedicated
// connection so the lock lives exactly as long as the caller holds the
// release func; closing the connection releases the lock even if the
// process dies mid-admission.
type AdvisoryLock struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewAdvisoryLock(database *sql.DB, timeout time.Duration) *AdvisoryLock {
	return &AdvisoryLock{DB: database, Timeout: timeout}
}

// Acquire blocks until the lock for key is held or the timeout elapses.
// The returned release func is safe to call exactly once from any path.
func (l *AdvisoryLock) Acquire(ctx context.Context, key string) (func(), error) {
	lockID := lockKeyID(key)

	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	conn, err := l.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obtaining connection for lock %q: %w", key, err)
	}

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		// Closing the connection drops any lock a raced grant may have left.
		conn.Close()
		return nil, fmt.Errorf("error acquiring advisory lock %q: %w", key, err)
	}

	release := func() {
		// Unlock on a fresh context: the caller's ctx may already be done.
		unlockCtx, unlockCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer unlockCancel()

		if _, err := conn.ExecContext(unlockCtx, `SELECT pg_advisory_unlock($1)`, lockID); err != nil {
			logrus.WithField("lock_key", key).WithError(err).Warn("advisory unlock failed, closing connection instead")
		}
		conn.Close()
	}

	return release, nil
}

// lockKeyID folds the scope string into the signed 64-bit space Postgres
// advisory locks use.
func lockKeyID(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64())
}
