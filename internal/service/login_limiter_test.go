package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/config"
)

func TestLoginLimiter_CountsAndResets(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewLoginLimiter(client, config.LoginConfig{MaxFailedAttempts: 3, WindowSeconds: 30}, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "Root"))
		l.RecordFailure(ctx, "Root")
	}
	assert.False(t, l.Allow(ctx, "root"))

	ttl := mr.TTL("login:failures:root")
	assert.Equal(t, 30*time.Second, ttl)

	l.Reset(ctx, "root")
	assert.True(t, l.Allow(ctx, "root"))
	assert.False(t, mr.Exists("login:failures:root"))
}

func TestLoginLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewLoginLimiter(client, config.LoginConfig{MaxFailedAttempts: 1}, zap.NewNop())
	ctx := context.Background()

	l.RecordFailure(ctx, "root")
	require.False(t, l.Allow(ctx, "root"))

	mr.Close()
	assert.True(t, l.Allow(ctx, "root"))
}

func TestLoginLimiter_Disabled(t *testing.T) {
	var nilLimiter *LoginLimiter
	assert.True(t, nilLimiter.Allow(context.Background(), "root"))
	nilLimiter.RecordFailure(context.Background(), "root")
	nilLimiter.Reset(context.Background(), "root")

	noClient := NewLoginLimiter(nil, config.LoginConfig{MaxFailedAttempts: 1}, zap.NewNop())
	noClient.RecordFailure(context.Background(), "root")
	assert.True(t, noClient.Allow(context.Background(), "root"))
}
