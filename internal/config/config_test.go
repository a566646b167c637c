package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 3, cfg.Sweeper.RetentionDays)
	assert.Equal(t, 24, cfg.Sweeper.IntervalHours)
	assert.True(t, cfg.Sweeper.Enabled)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "account-events", cfg.Redis.EventChannel)
}

func TestSweeperConfig(t *testing.T) {
	t.Run("ConfiguredWindow", func(t *testing.T) {
		cfg := SweeperConfig{RetentionDays: 3, IntervalHours: 24}
		assert.Equal(t, 72*time.Hour, cfg.Retention())
		assert.Equal(t, 24*time.Hour, cfg.Interval())
	})

	t.Run("FallbackOnZero", func(t *testing.T) {
		cfg := SweeperConfig{}
		assert.Equal(t, 72*time.Hour, cfg.Retention())
		assert.Equal(t, 24*time.Hour, cfg.Interval())
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SWEEPER_RETENTION_DAYS", "7")
	t.Setenv("SWEEPER_ENABLED", "false")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 7, cfg.Sweeper.RetentionDays)
	assert.False(t, cfg.Sweeper.Enabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}
