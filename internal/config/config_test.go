package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"PULSE_APP_ID", "PULSE_PROVIDER_CONFIG", "PULSE_AUTH_TOKEN",
		"PULSE_STORE_URL", "PULSE_LOG_FILE",
	} {
		t.Setenv(key, "") // register restore, then clear so defaults apply
		os.Unsetenv(key)
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "default-app", cfg.AppID)
	assert.Empty(t, cfg.ProviderConfig)
	assert.Empty(t, cfg.AuthToken)
	assert.Equal(t, "redis://localhost:6379/0", cfg.StoreURL)
	assert.NotEmpty(t, cfg.LogFile, "log file must always have a destination")
}

func TestFromEnvReadsValues(t *testing.T) {
	t.Setenv("PULSE_APP_ID", "census-prod")
	t.Setenv("PULSE_PROVIDER_CONFIG", `{"signingKey":"k"}`)
	t.Setenv("PULSE_AUTH_TOKEN", "bearer-token")
	t.Setenv("PULSE_STORE_URL", "redis://db.internal:6380/2")
	t.Setenv("PULSE_LOG_FILE", "/tmp/pulse-test.log")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "census-prod", cfg.AppID)
	assert.Equal(t, `{"signingKey":"k"}`, cfg.ProviderConfig)
	assert.Equal(t, "bearer-token", cfg.AuthToken)
	assert.Equal(t, "redis://db.internal:6380/2", cfg.StoreURL)
	assert.Equal(t, "/tmp/pulse-test.log", cfg.LogFile)
}
