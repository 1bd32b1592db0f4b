package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/dao-janny/internal/config"
	"github.com/alanyang/dao-janny/internal/domain/chain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.FeeCacheTTL)
	assert.Equal(t, 15*time.Second, cfg.WatchPoll)
	assert.Equal(t, "https://mainnet.optimism.io", cfg.RPCURLs[chain.OPMainnet])
	assert.Equal(t, "https://sepolia.optimism.io", cfg.RPCURLs[chain.OPSepolia])
	assert.Empty(t, cfg.WatchChains)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/janny")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RPC_URL_11155420", "https://rpc.example")
	t.Setenv("SIGNER_RPC_URL", "http://localhost:8550")
	t.Setenv("LIGHTHOUSE_API_KEY", "lh-key")
	t.Setenv("REGISTRY_BASE_URL", "https://registry.example")
	t.Setenv("PROPOSALS_BASE_URL", "https://proposals.example")
	t.Setenv("FEE_CACHE_TTL_SECONDS", "5")
	t.Setenv("WATCH_CHAINS", "10, 11155420")
	t.Setenv("WATCH_POLL_SECONDS", "-3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/janny", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "https://rpc.example", cfg.RPCURLs[chain.OPSepolia])
	assert.Equal(t, "http://localhost:8550", cfg.SignerRPCURL)
	assert.Equal(t, "lh-key", cfg.LighthouseAPIKey)
	assert.Equal(t, "https://registry.example", cfg.MembershipURL)
	assert.Equal(t, "https://proposals.example", cfg.ProposalsURL)
	assert.Equal(t, 5*time.Second, cfg.FeeCacheTTL)
	assert.Equal(t, []chain.ID{chain.OPMainnet, chain.OPSepolia}, cfg.WatchChains)
	assert.Equal(t, 15*time.Second, cfg.WatchPoll)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "janny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
log_level: warn
lighthouse_api_key: from-file
fee_cache_ttl_seconds: 30
watch_chains: "10"
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Port, "env wins over file")
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.LighthouseAPIKey)
	assert.Equal(t, 30*time.Second, cfg.FeeCacheTTL)
	assert.Equal(t, []chain.ID{chain.OPMainnet}, cfg.WatchChains)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad watch chain", env: map[string]string{"WATCH_CHAINS": "ten"}},
		{name: "unsupported watch chain", env: map[string]string{"WATCH_CHAINS": "1"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/nonexistent/janny.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			require.Error(t, err)
		})
	}
}
