// Package kb provides the optional external knowledge-base boundary used to
// sanity-check extracted candidate names. Lookups are rate-limited and
// cached; every failure degrades to "assume valid" so the batch run never
// stalls or errors on a flaky upstream.
package kb

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client looks up whether a name is a known entity of the given kind.
// Implementations wrap an external service; the zero answer is (false, err).
type Client interface {
	Lookup(ctx context.Context, name, kind string) (bool, error)
}

// cacheEntry is one memoized lookup answer.
type cacheEntry struct {
	valid   bool
	expires time.Time
}

// Validator rate-limits, caches and fail-opens knowledge-base lookups.
type Validator struct {
	client  Client
	limiter *rate.Limiter
	timeout time.Duration
	ttl     time.Duration
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// ValidatorOption customizes a Validator.
type ValidatorOption func(*Validator)

// WithRateLimit sets the sustained lookup rate and burst.
func WithRateLimit(perSecond float64, burst int) ValidatorOption {
	return func(v *Validator) { v.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithTTL sets how long lookup answers stay cached.
func WithTTL(ttl time.Duration) ValidatorOption {
	return func(v *Validator) { v.ttl = ttl }
}

// WithTimeout sets the per-call service timeout.
func WithTimeout(d time.Duration) ValidatorOption {
	return func(v *Validator) { v.timeout = d }
}

// NewValidator creates a Validator around the given client. Defaults: 10
// lookups per second with burst 20, 5 minute cache TTL, 2 second per-call
// timeout.
func NewValidator(client Client, logger *slog.Logger, opts ...ValidatorOption) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Validator{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		timeout: 2 * time.Second,
		ttl:     5 * time.Minute,
		logger:  logger,
		cache:   make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reports whether the name is plausible for the given kind.
// Returns true on every failure path: nil client, rate-limiter wait error,
// lookup timeout or lookup error. A false answer only ever comes from a
// successful lookup that rejected the name.
func (v *Validator) Validate(ctx context.Context, name, kind string) bool {
	if v.client == nil {
		return true
	}

	key := kind + "\x00" + name
	v.mu.Lock()
	if entry, ok := v.cache[key]; ok && time.Now().Before(entry.expires) {
		v.mu.Unlock()
		return entry.valid
	}
	v.mu.Unlock()

	if err := v.limiter.Wait(ctx); err != nil {
		v.logger.Debug("kb rate limiter interrupted", "error", err)
		return true
	}

	lookupCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	valid, err := v.client.Lookup(lookupCtx, name, kind)
	if err != nil {
		v.logger.Debug("kb lookup failed, assuming valid",
			"name", name,
			"kind", kind,
			"error", err)
		return true
	}

	v.mu.Lock()
	v.cache[key] = cacheEntry{valid: valid, expires: time.Now().Add(v.ttl)}
	v.mu.Unlock()

	return valid
}
