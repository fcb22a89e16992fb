package connector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eklix/mysql-faker/internal/config"
	"go.uber.org/zap"
)

// ErrGaveUp is returned once the backoff ceiling has been exceeded.
var ErrGaveUp = errors.New("giving up on connecting to the database")

// Opener opens and verifies a connection to dsn.
type Opener func(ctx context.Context, dsn string) (*sql.DB, error)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

type Connector struct {
	dsn     string
	open    Opener
	sleep   Sleeper
	backoff *Backoff
	logger  *zap.Logger
}

func New(dsn string, retry config.Retry, open Opener, logger *zap.Logger) *Connector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connector{
		dsn:     dsn,
		open:    open,
		sleep:   Sleep,
		backoff: NewBackoff(retry),
		logger:  logger,
	}
}

// WithSleeper replaces the wait between attempts.
func (c *Connector) WithSleeper(s Sleeper) *Connector {
	c.sleep = s
	return c
}

// Connect keeps trying to open a connection until one succeeds, the backoff
// is exhausted, or ctx is cancelled.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	c.backoff.Reset()

	for {
		db, err := c.open(ctx, c.dsn)
		if err == nil {
			c.logger.Debug("connected to database server", zap.Int("failed_attempts", c.backoff.Attempt()))
			return db, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		wait, ok := c.backoff.Next()
		if !ok {
			c.logger.Error("connection retries exhausted",
				zap.Int("attempt", c.backoff.Attempt()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrGaveUp, c.backoff.Attempt(), err)
		}

		c.logger.Warn("couldn't connect to the MySQL instance, retrying",
			zap.Int("attempt", c.backoff.Attempt()),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
