package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"mytunes-api/pkg/env"
	"sync"
)

// ErrInvalidPolicy reports a limiter policy that cannot be enforced as
// written (missing tier, non-positive budget, and so on).
var ErrInvalidPolicy = errors.New("invalid rate limit policy")

// TierPolicy is the static half of one limiter tier. The daily tier carries
// no window or block here: both are recomputed from the wall clock on every
// consumption so the window stays aligned to the calendar day.
type TierPolicy struct {
	Points        int
	WindowSeconds int
	BlockSeconds  int
}

// ActionPolicies pairs the two tiers guarding one gated action.
type ActionPolicies struct {
	Consecutive TierPolicy
	Daily       TierPolicy
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

type Config struct {
	Actions map[string]ActionPolicies
	Metrics MetricsConfig
}

type rawTier struct {
	Points        int `mapstructure:"points"`
	WindowSeconds int `mapstructure:"window_seconds"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

type rawAction struct {
	Consecutive *rawTier `mapstructure:"consecutive"`
	Daily       *rawTier `mapstructure:"daily"`
}

type rawConfig struct {
	RateLimits map[string]rawAction `mapstructure:"rate_limits"`
	Metrics    *struct {
		Enabled *bool
		Path    string
	}
}

func loadRawConfig() (*rawConfig, error) {
	var rc rawConfig
	if err := viper.Unmarshal(&rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

func parseTier(action, tier string, rt *rawTier, needWindow bool) (TierPolicy, error) {
	if rt == nil {
		return TierPolicy{}, fmt.Errorf("%w: %s is missing the %s tier", ErrInvalidPolicy, action, tier)
	}
	if rt.Points <= 0 {
		return TierPolicy{}, fmt.Errorf("%w: %s %s tier points must be positive", ErrInvalidPolicy, action, tier)
	}
	if needWindow {
		if rt.WindowSeconds <= 0 {
			return TierPolicy{}, fmt.Errorf("%w: %s %s tier window_seconds must be positive", ErrInvalidPolicy, action, tier)
		}
		if rt.BlockSeconds <= 0 {
			return TierPolicy{}, fmt.Errorf("%w: %s %s tier block_seconds must be positive", ErrInvalidPolicy, action, tier)
		}
	}
	return TierPolicy{
		Points:        rt.Points,
		WindowSeconds: rt.WindowSeconds,
		BlockSeconds:  rt.BlockSeconds,
	}, nil
}

func parseMetricConfig(rc *rawConfig) (*MetricsConfig, error) {
	metrics := MetricsConfig{
		Enabled: true,
		Path:    "/metrics",
	}

	if rc.Metrics != nil {
		if rc.Metrics.Path == "" {
			return nil, errors.New("metrics path could not be empty")
		}

		metrics.Path = rc.Metrics.Path

		if rc.Metrics.Enabled != nil {
			metrics.Enabled = *rc.Metrics.Enabled
		}
	}

	return &metrics, nil
}

func parseRawConfig(rc *rawConfig) (*Config, error) {
	if len(rc.RateLimits) == 0 {
		return nil, fmt.Errorf("%w: rate_limits section is missing", ErrInvalidPolicy)
	}

	actions := make(map[string]ActionPolicies, len(rc.RateLimits))
	for action, ra := range rc.RateLimits {
		consecutive, err := parseTier(action, "consecutive", ra.Consecutive, true)
		if err != nil {
			return nil, err
		}

		daily, err := parseTier(action, "daily", ra.Daily, false)
		if err != nil {
			return nil, err
		}

		actions[action] = ActionPolicies{
			Consecutive: consecutive,
			Daily:       daily,
		}
	}

	metric, err := parseMetricConfig(rc)
	if err != nil {
		return nil, err
	}

	return &Config{
		Actions: actions,
		Metrics: *metric,
	}, nil
}

func parseCurrent() (*Config, error) {
	rc, err := loadRawConfig()
	if err != nil {
		return nil, fmt.Errorf("unable to read raw config, %v", err)
	}
	return parseRawConfig(rc)
}

var (
	once           sync.Once
	configInstance *Config
)

func newConfig() (*Config, error) {
	slog.Info("loading config")
	viper.SetConfigFile(env.GetEnv().ConfigFile)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}

	return parseCurrent()
}

func GetConfig() *Config {
	once.Do(func() {
		var err error
		configInstance, err = newConfig()
		if err != nil {
			log.Fatalf("Could not create new config err: %v", err)
		}
	})
	return configInstance
}

func resetConfigForTests() {
	once = sync.Once{}
	configInstance = nil
	viper.Reset()
}
