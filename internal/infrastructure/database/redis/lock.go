package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/solhycool/visualizations/internal/infrastructure/monitoring/logging"
	"github.com/solhycool/visualizations/pkg/errors"
)

var ErrLockNotHeld = errors.New(errors.ErrCodeConflict, "lock not held by this owner")

// LockOption configures a RunLock.
type LockOption func(*lockConfig)

// WithLockTTL overrides the lease taken from RedisConfig.LockTTL.
func WithLockTTL(ttl time.Duration) LockOption {
	return func(c *lockConfig) { c.ttl = ttl }
}

// WithWatchdogInterval sets how often a held lease is extended. Zero
// disables the watchdog.
func WithWatchdogInterval(interval time.Duration) LockOption {
	return func(c *lockConfig) {
		c.watchdogInterval = interval
		c.watchdogSet = true
	}
}

type lockConfig struct {
	ttl              time.Duration
	watchdogInterval time.Duration
	watchdogSet      bool
}

// RunLock is a non-reentrant lease on <prefix>lock:<name>. The stored value
// identifies the owner so only the holder can release or extend it.
type RunLock struct {
	client *Client
	name   string
	value  string
	config lockConfig
	logger logging.Logger

	mu             sync.Mutex
	watchdogCancel context.CancelFunc
	watchdogDone   chan struct{}
}

var lockReleaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

var lockExtendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// NewRunLock creates a lock handle. Nothing is acquired until TryLock.
func NewRunLock(client *Client, name string, log logging.Logger, opts ...LockOption) *RunLock {
	if log == nil {
		log = logging.NewNopLogger()
	}
	cfg := lockConfig{ttl: client.config.LockTTL}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ttl <= 0 {
		cfg.ttl = 2 * time.Minute
	}
	if !cfg.watchdogSet {
		cfg.watchdogInterval = cfg.ttl / 3
	}
	return &RunLock{
		client: client,
		name:   name,
		value:  uuid.New().String(),
		config: cfg,
		logger: log,
	}
}

// Key returns the Redis key of the lock.
func (l *RunLock) Key() string {
	return l.client.Key("lock", l.name)
}

// TryLock acquires the lease without waiting.
func (l *RunLock) TryLock(ctx context.Context) (bool, error) {
	if l.client.isClosed() {
		return false, ErrClientClosed
	}
	ok, err := l.client.rdb.SetNX(ctx, l.Key(), l.value, l.config.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeUnavailable, "acquire run lock").WithDetail(l.name)
	}
	if ok && l.config.watchdogInterval > 0 {
		l.startWatchdog()
	}
	return ok, nil
}

// Unlock releases the lease if this handle still owns it.
func (l *RunLock) Unlock(ctx context.Context) error {
	l.stopWatchdog()
	res, err := lockReleaseScript.Run(ctx, l.client.rdb, []string{l.Key()}, l.value).Int64()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUnavailable, "release run lock").WithDetail(l.name)
	}
	if res == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Extend resets the lease to ttl. It reports false when the lock was lost.
func (l *RunLock) Extend(ctx context.Context, ttl time.Duration) (bool, error) {
	res, err := lockExtendScript.Run(ctx, l.client.rdb, []string{l.Key()}, l.value, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// TTL returns the remaining lease.
func (l *RunLock) TTL(ctx context.Context) (time.Duration, error) {
	return l.client.rdb.PTTL(ctx, l.Key()).Result()
}

func (l *RunLock) startWatchdog() {
	l.mu.Lock()
	defer l.mu.Unlock()
	ctx, cancel := context.WithCancel(context.Background())
	l.watchdogCancel = cancel
	l.watchdogDone = make(chan struct{})

	go runWatchdog(ctx, l.Extend, l.config.watchdogInterval, l.config.ttl, l.logger, l.watchdogDone)
}

func (l *RunLock) stopWatchdog() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watchdogCancel != nil {
		l.watchdogCancel()
		<-l.watchdogDone
		l.watchdogCancel = nil
	}
}

func runWatchdog(ctx context.Context, extendFn func(context.Context, time.Duration) (bool, error), interval time.Duration, ttl time.Duration, log logging.Logger, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := extendFn(ctx, ttl)
			if err != nil {
				if ctx.Err() == nil {
					log.Error("Watchdog failed to extend lock", logging.Err(err))
				}
				return
			}
			if !ok {
				log.Warn("Watchdog lost lock")
				return
			}
		}
	}
}

//Personal.AI order the ending
