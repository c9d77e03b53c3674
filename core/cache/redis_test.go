package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("URL", func(t *testing.T) {
		opt, err := options("redis://:secret@cache:6380/2")
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opt.Addr)
		assert.Equal(t, "secret", opt.Password)
		assert.Equal(t, 2, opt.DB)
	})

	t.Run("Address", func(t *testing.T) {
		opt, err := options("localhost:6379")
		require.NoError(t, err)
		assert.Equal(t, "localhost:6379", opt.Addr)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := options("")
		assert.Error(t, err)
	})

	t.Run("Bad URL", func(t *testing.T) {
		_, err := options("redis://cache:notaport/x")
		assert.Error(t, err)
	})
}

func TestConnect_Unreachable(t *testing.T) {
	// Reserve a port and close it so nothing listens there
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = Connect(context.Background(), Config{RedisURL: addr})
	assert.ErrorContains(t, err, "ping redis")
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{RedisURL: "localhost:6379"}.Enabled())
}

func TestTokenCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewTokenCache(client, "test:")
	_, found, err := c.Get(context.Background(), "token")
	assert.Error(t, err)
	assert.False(t, found)

	assert.Error(t, c.Set(context.Background(), "token", "abc", time.Minute))
}
