package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/kbsync/config"
)

func TestServeSettingsPrecedence(t *testing.T) {
	cfg := &config.Config{
		Service: config.ServiceConfig{
			ListenAddr:        ":9999",
			RequestsPerSecond: 50,
			Burst:             4,
		},
	}

	// No flags set: config values flow through untouched.
	listen, rps, burst := serveSettings(ServeCmd, cfg)
	assert.Equal(t, ":9999", listen)
	assert.Equal(t, 50.0, rps)
	assert.Equal(t, 4, burst)

	// An explicit --rps 0 must disable the config-set limit, not fall
	// back to it.
	require.NoError(t, ServeCmd.Flags().Set("rps", "0"))
	_, rps, burst = serveSettings(ServeCmd, cfg)
	assert.Zero(t, rps)
	assert.Equal(t, 4, burst, "untouched flags still defer to config")

	require.NoError(t, ServeCmd.Flags().Set("listen", ":7000"))
	require.NoError(t, ServeCmd.Flags().Set("burst", "2"))
	listen, _, burst = serveSettings(ServeCmd, cfg)
	assert.Equal(t, ":7000", listen)
	assert.Equal(t, 2, burst)
}
