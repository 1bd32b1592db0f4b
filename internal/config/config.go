// Package config loads server and CLI settings from the environment and an
// optional YAML file. Environment variables win over the file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/alanyang/dao-janny/internal/domain/chain"
)

const (
	KeyConfigFile     = "config_file"
	KeyDatabaseURL    = "database_url"
	KeyPort           = "port"
	KeyLogLevel       = "log_level"
	KeySignerRPCURL   = "signer_rpc_url"
	KeyLighthouseKey  = "lighthouse_api_key"
	KeyRegistryURL    = "registry_base_url"
	KeyMembershipURL  = "membership_base_url"
	KeyProposalsURL   = "proposals_base_url"
	KeyFeeCacheTTL    = "fee_cache_ttl_seconds"
	KeyWatchChains    = "watch_chains"
	KeyWatchPoll      = "watch_poll_seconds"
	KeyHTTPTimeout    = "http_timeout_seconds"
	rpcURLKeyTemplate = "rpc_url_%d"
)

const (
	defaultFeeCacheTTL = 60 * time.Second
	defaultWatchPoll   = 15 * time.Second
	defaultHTTPTimeout = 15 * time.Second
)

var defaultRPCURLs = map[chain.ID]string{
	chain.OPMainnet: "https://mainnet.optimism.io",
	chain.OPSepolia: "https://sepolia.optimism.io",
}

type Config struct {
	DatabaseURL  string
	Port         string
	LogLevel     slog.Level
	RPCURLs      map[chain.ID]string
	SignerRPCURL string

	LighthouseAPIKey string
	MembershipURL    string
	ProposalsURL     string

	FeeCacheTTL time.Duration
	WatchChains []chain.ID
	WatchPoll   time.Duration
	HTTPTimeout time.Duration
}

// New returns a viper instance with env binding and defaults applied. The
// CLI binds its flags onto the same instance.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyLogLevel, "info")
	for id, url := range defaultRPCURLs {
		v.SetDefault(fmt.Sprintf(rpcURLKeyTemplate, id), url)
	}
	return v
}

// Load reads CONFIG_FILE when set and resolves every setting.
func Load() (Config, error) {
	return FromViper(New())
}

func FromViper(v *viper.Viper) (Config, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	level, err := parseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, err
	}

	watch, err := parseChains(v.GetString(KeyWatchChains))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DatabaseURL:      v.GetString(KeyDatabaseURL),
		Port:             v.GetString(KeyPort),
		LogLevel:         level,
		RPCURLs:          make(map[chain.ID]string),
		SignerRPCURL:     v.GetString(KeySignerRPCURL),
		LighthouseAPIKey: v.GetString(KeyLighthouseKey),
		MembershipURL:    firstSet(v.GetString(KeyMembershipURL), v.GetString(KeyRegistryURL)),
		ProposalsURL:     firstSet(v.GetString(KeyProposalsURL), v.GetString(KeyRegistryURL)),
		FeeCacheTTL:      seconds(v, KeyFeeCacheTTL, defaultFeeCacheTTL),
		WatchChains:      watch,
		WatchPoll:        seconds(v, KeyWatchPoll, defaultWatchPoll),
		HTTPTimeout:      seconds(v, KeyHTTPTimeout, defaultHTTPTimeout),
	}
	for _, id := range chain.Supported() {
		if url := v.GetString(fmt.Sprintf(rpcURLKeyTemplate, id)); url != "" {
			cfg.RPCURLs[id] = url
		}
	}
	for _, id := range cfg.WatchChains {
		if _, ok := cfg.RPCURLs[id]; !ok {
			return Config{}, fmt.Errorf("watch chain %d: %w", id, chain.ErrUnsupportedChain)
		}
	}
	return cfg, nil
}

// seconds reads an integer-seconds setting, falling back to def when unset or
// not positive.
func seconds(v *viper.Viper, key string, def time.Duration) time.Duration {
	if secs := v.GetInt(key); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// parseChains reads a comma separated list of chain ids.
func parseChains(s string) ([]chain.ID, error) {
	var ids []chain.ID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := chain.ParseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func firstSet(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
