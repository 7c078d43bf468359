// AngelaMos | 2026
// redis_test.go

package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/drycleaning-api/internal/config"
)

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.RedisConfig
		wantPool    int
		wantIdle    int
		wantReadTTL time.Duration
	}{
		{
			name:     "configured",
			cfg:      config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 10, MinIdleConns: 5},
			wantPool: 10,
			wantIdle: 5,
		},
		{
			name:     "pool floor",
			cfg:      config.RedisConfig{URL: "redis://localhost:6379", PoolSize: 0, MinIdleConns: 8},
			wantPool: redisMinPoolSize,
			wantIdle: redisMinPoolSize,
		},
		{
			name:        "read timeout",
			cfg:         config.RedisConfig{URL: "redis://localhost:6379", PoolSize: 4, ReadTimeout: time.Second},
			wantPool:    4,
			wantReadTTL: time.Second,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := redisOptions(tc.cfg)
			require.NoError(t, err)

			assert.Equal(t, 30*time.Second, opts.PoolTimeout)
			assert.Equal(t, tc.wantPool, opts.PoolSize)
			assert.Equal(t, tc.wantIdle, opts.MinIdleConns)
			if tc.wantReadTTL > 0 {
				assert.Equal(t, tc.wantReadTTL, opts.ReadTimeout)
			}
		})
	}

	_, err := redisOptions(config.RedisConfig{URL: "postgres://nope"})
	assert.ErrorContains(t, err, "parse redis url")
}

func TestNewRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	r, err := NewRedis(ctx, config.RedisConfig{URL: "redis://" + mr.Addr(), PoolSize: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	require.NoError(t, r.Ping(ctx))
	assert.NotNil(t, r.PoolStats())

	mr.Close()
	assert.ErrorContains(t, r.Ping(ctx), "ping redis")
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), config.RedisConfig{URL: "redis://" + addr})
	assert.ErrorContains(t, err, "ping redis")
}
