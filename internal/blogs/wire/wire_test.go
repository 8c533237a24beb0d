package wire_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/blogs/config"
	"bloglist/internal/blogs/wire"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory, Cache: config.DriverMemory},
		JWT:     config.JWTConfig{SecretKey: "secret", TokenTTL: "1h", BCryptCost: 4},
		Redis: config.RedisConfig{
			ListTTL:        time.Minute,
			BreakerErrors:  3,
			BreakerTimeout: time.Second,
			BreakerProbes:  1,
		},
	}
}

func TestBuild_Memory(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig()

	c, err := wire.Build(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(ctx) })

	assert.Nil(t, c.Testing)

	user, err := c.Auth.Register(ctx, "smart", "sabi", "Rahim")
	require.NoError(t, err)

	session, err := c.Auth.Login(ctx, "sabi", "Rahim")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	_, err = c.Blogs.Create(ctx, session, "Wired", "a", "u", "3")
	require.NoError(t, err)

	blogs, err := c.Blogs.OrderedList(ctx)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
}

func TestBuild_TestingEnabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.Testing.Enabled = true

	c, err := wire.Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, c.Testing)
}

func TestNewCache_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Storage.Cache = config.DriverRedis
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mustPort(t, mr.Port())
	cfg.Redis.ConnectTimeout = time.Second
	cfg.Redis.ReadTimeout = time.Second
	cfg.Redis.WriteTimeout = time.Second

	ctx := context.Background()
	c, err := wire.NewCache(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	n, err := c.Incr(ctx, "blogs:ordered:gen")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNewCache_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Storage.Cache = config.DriverRedis
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mustPort(t, mr.Port())
	cfg.Redis.ConnectTimeout = 100 * time.Millisecond
	mr.Close()

	_, err := wire.NewCache(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewRepositories_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Driver = "mongo"

	_, _, err := wire.NewRepositories(context.Background(), cfg)
	require.ErrorIs(t, err, config.ErrUnknownDriver)
}

func mustPort(t *testing.T, port string) int {
	t.Helper()
	n, err := strconv.Atoi(port)
	require.NoError(t, err)
	return n
}
