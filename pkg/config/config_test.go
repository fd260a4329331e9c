package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/driftline/dispatch/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "localhost:8100", cfg.Addr)
	assert.Equal(t, 2*time.Minute, cfg.HeartbeatTimeout)
	assert.Equal(t, 30*time.Second, cfg.ReapFrequency)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, int64(3), cfg.DefaultMaxAttempts)
	assert.Equal(t, 720*time.Hour, cfg.Retention)
	assert.False(t, cfg.Debug)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DISPATCH_ADDR", "0.0.0.0:9000")
	t.Setenv("DISPATCH_HEARTBEAT_TIMEOUT", "45s")
	t.Setenv("DISPATCH_DEFAULT_MAX_ATTEMPTS", "5")
	t.Setenv("DISPATCH_DEBUG", "true")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.Equal(t, 45*time.Second, cfg.HeartbeatTimeout)
	assert.Equal(t, int64(5), cfg.DefaultMaxAttempts)
	assert.True(t, cfg.Debug)
}
