package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"
	sqlite "modernc.org/sqlite"
)

const (
	maxWriteAttempts = 5
	baseRetryDelay   = 50 * time.Millisecond
)

// SQLite primary result codes for lock contention.
const (
	codeBusy   = 5
	codeLocked = 6
)

// isBusy reports whether err is a transient lock-contention failure
// from a concurrently-running writer.
func isBusy(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code() & 0xff
		return code == codeBusy || code == codeLocked
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

// withBusyRetry runs op, retrying on SQLITE_BUSY/SQLITE_LOCKED with
// exponential backoff and jitter. This sits on top of the engine's
// busy_timeout pragma: the pragma handles short waits, the retry loop
// handles a writer that holds the lock across several statements.
// After the schedule is exhausted the error is classified as ErrBusy so
// the boundary can tell the user to re-run.
func withBusyRetry(ctx context.Context, logger zerolog.Logger, op func() error) error {
	var err error
	delay := baseRetryDelay
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err = op()
		if err == nil || !isBusy(err) {
			return err
		}
		if attempt == maxWriteAttempts {
			break
		}

		// Jitter of +/-50% keeps two contending processes from retrying in
		// lock-step.
		jittered := delay/2 + time.Duration(rand.Int63n(int64(delay)))
		logger.Debug().
			Int("attempt", attempt).
			Dur("backoff", jittered).
			Msg("database busy, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jittered):
		}
		delay *= 2
	}
	return fmt.Errorf("%w: %v", ErrBusy, err)
}
