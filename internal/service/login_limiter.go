package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/config"
)

const loginFailuresKeyPrefix = "login:failures:"

// LoginLimiter counts failed logins per username in Redis. A limiter without a client, or one
// whose Redis is unreachable, lets every attempt through.
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginLimiter builds a limiter. client may be nil.
func NewLoginLimiter(client *redis.Client, cfg config.LoginConfig, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{
		client:      client,
		maxFailures: cfg.MaxFailedAttempts,
		window:      cfg.Window(),
		logger:      logger,
	}
}

func (l *LoginLimiter) enabled() bool {
	return l != nil && l.client != nil && l.maxFailures > 0
}

func loginFailuresKey(username string) string {
	return loginFailuresKeyPrefix + strings.ToLower(username)
}

// Allow reports whether username may attempt another login.
func (l *LoginLimiter) Allow(ctx context.Context, username string) bool {
	if !l.enabled() {
		return true
	}
	count, err := l.client.Get(ctx, loginFailuresKey(username)).Int()
	if errors.Is(err, redis.Nil) {
		return true
	}
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	return count < l.maxFailures
}

// RecordFailure counts one failed attempt. The window starts at the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	if !l.enabled() {
		return
	}
	key := loginFailuresKey(username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("record login failure", zap.Error(err))
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("set login failure window", zap.Error(err))
		}
	}
}

// Reset clears the failure count after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if !l.enabled() {
		return
	}
	if err := l.client.Del(ctx, loginFailuresKey(username)).Err(); err != nil {
		l.logger.Warn("reset login failures", zap.Error(err))
	}
}
