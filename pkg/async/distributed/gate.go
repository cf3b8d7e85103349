package distributed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/asyncfn/pkg/common/errors"
	"github.com/vnykmshr/asyncfn/pkg/common/validation"
)

// Config holds configuration for a WindowGate.
type Config struct {
	// Redis client for coordination
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this gate
	Key string

	// InstanceID uniquely identifies this application instance
	InstanceID string

	// Window is the length of the coalescing window
	Window time.Duration

	// RedisTimeout is the timeout for Redis operations
	RedisTimeout time.Duration
}

// DefaultConfig returns a default window gate configuration.
func DefaultConfig() Config {
	return Config{
		InstanceID:   generateInstanceID(),
		RedisTimeout: 500 * time.Millisecond,
	}
}

// WindowGate coordinates a debounce window across application
// instances. At most one instance owns the window at a time: the
// instance whose TryOpen succeeds should run the shared function,
// everyone else coalesces onto its result. The window key expires on
// its own after Window, so a crashed owner cannot wedge the gate.
type WindowGate struct {
	config Config

	windowKey string

	extendScript  *redis.Script
	releaseScript *redis.Script
}

// NewGateSafe creates a window gate with validation that returns an
// error instead of panicking.
func NewGateSafe(config Config) (*WindowGate, error) {
	if config.Redis == nil {
		return nil, errors.NewValidationError("distributed", "redis", nil, "redis client is required")
	}
	if err := validation.ValidateNotEmpty("distributed", "key", config.Key); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveDuration("distributed", "window", config.Window); err != nil {
		return nil, err
	}
	if config.InstanceID == "" {
		config.InstanceID = generateInstanceID()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}

	return &WindowGate{
		config:        config,
		windowKey:     config.Key + ":window",
		extendScript:  redis.NewScript(luaExtendIfOwner),
		releaseScript: redis.NewScript(luaReleaseIfOwner),
	}, nil
}

// InstanceID returns the identity this gate claims windows under.
func (wg *WindowGate) InstanceID() string {
	return wg.config.InstanceID
}

// TryOpen attempts to claim the window for this instance. It returns
// true iff the window was closed and is now owned by this instance.
// The claim expires after the configured Window unless extended.
func (wg *WindowGate) TryOpen(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, wg.config.RedisTimeout)
	defer cancel()

	claimed, err := wg.config.Redis.SetNX(ctx, wg.windowKey, wg.config.InstanceID, wg.config.Window).Result()
	if err != nil {
		return false, errors.NewOperationError("distributed", "try_open", err)
	}
	return claimed, nil
}

// Extend pushes the window's expiry back out to the full Window
// length, the distributed form of a trailing-edge debounce reset. It
// returns true iff this instance still owned the window.
func (wg *WindowGate) Extend(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, wg.config.RedisTimeout)
	defer cancel()

	result, err := wg.extendScript.Run(ctx, wg.config.Redis,
		[]string{wg.windowKey},
		wg.config.InstanceID,
		wg.config.Window.Milliseconds(),
	).Result()
	if err != nil {
		return false, errors.NewOperationError("distributed", "extend", err)
	}

	extended, ok := result.(int64)
	return ok && extended == 1, nil
}

// Release closes the window early. Only the owning instance's release
// takes effect; a stale release from a previous owner is a no-op.
func (wg *WindowGate) Release(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, wg.config.RedisTimeout)
	defer cancel()

	err := wg.releaseScript.Run(ctx, wg.config.Redis,
		[]string{wg.windowKey},
		wg.config.InstanceID,
	).Err()
	if err != nil {
		return errors.NewOperationError("distributed", "release", err)
	}
	return nil
}

// Owner returns the instance ID currently holding the window, or ""
// when the window is closed.
func (wg *WindowGate) Owner(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, wg.config.RedisTimeout)
	defer cancel()

	owner, err := wg.config.Redis.Get(ctx, wg.windowKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewOperationError("distributed", "owner", err)
	}
	return owner, nil
}

// Lua script for owner-checked expiry extension
const luaExtendIfOwner = `
-- KEYS[1]: window key
-- ARGV[1]: instance id
-- ARGV[2]: window length (milliseconds)

if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('PEXPIRE', KEYS[1], tonumber(ARGV[2]))
else
    return 0
end
`

// Lua script for owner-checked release
const luaReleaseIfOwner = `
-- KEYS[1]: window key
-- ARGV[1]: instance id

if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
else
    return 0
end
`
