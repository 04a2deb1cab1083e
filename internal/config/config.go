// Package config loads chatscribe settings from a YAML file and
// CHATSCRIBE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mj1618/chatscribe/internal/capture"
	"github.com/mj1618/chatscribe/internal/gesture"
	"github.com/mj1618/chatscribe/internal/reply"
	"github.com/spf13/viper"
)

// DefaultFile is read when no --config is given and it exists.
const DefaultFile = "chatscribe.yaml"

// EnvPrefix prefixes environment overrides, e.g. CHATSCRIBE_REPLY_API_KEY.
const EnvPrefix = "CHATSCRIBE"

// Config is the full settings tree.
type Config struct {
	Heuristics HeuristicsConfig `mapstructure:"heuristics" yaml:"heuristics"`
	Gesture    GestureConfig    `mapstructure:"gesture" yaml:"gesture"`
	Reply      reply.Settings   `mapstructure:"reply" yaml:"reply"`
}

// HeuristicsConfig mirrors capture.Heuristics.
type HeuristicsConfig struct {
	SelfThresholdRatio float64 `mapstructure:"self_threshold_ratio" yaml:"self_threshold_ratio"`
	BandTopRatio       float64 `mapstructure:"band_top_ratio" yaml:"band_top_ratio"`
	BandBottomRatio    float64 `mapstructure:"band_bottom_ratio" yaml:"band_bottom_ratio"`
	SelfLabel          string  `mapstructure:"self_label" yaml:"self_label"`
	PeerPlaceholder    string  `mapstructure:"peer_placeholder" yaml:"peer_placeholder"`
	MemberPlaceholder  string  `mapstructure:"member_placeholder" yaml:"member_placeholder"`
	Structured         bool    `mapstructure:"structured" yaml:"structured"`
}

// GestureConfig mirrors gesture.Config.
type GestureConfig struct {
	HoldThreshold  time.Duration `mapstructure:"hold_threshold" yaml:"hold_threshold"`
	TouchSlop      float64       `mapstructure:"touch_slop" yaml:"touch_slop"`
	SettleDelay    time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	IterationDelay time.Duration `mapstructure:"iteration_delay" yaml:"iteration_delay"`
}

// Default returns the built-in settings.
func Default() Config {
	h := capture.DefaultHeuristics()
	g := gesture.DefaultConfig()
	return Config{
		Heuristics: HeuristicsConfig{
			SelfThresholdRatio: h.SelfThresholdRatio,
			BandTopRatio:       h.BandTopRatio,
			BandBottomRatio:    h.BandBottomRatio,
			SelfLabel:          h.SelfLabel,
			PeerPlaceholder:    h.PeerPlaceholder,
			MemberPlaceholder:  h.MemberPlaceholder,
			Structured:         h.Structured,
		},
		Gesture: GestureConfig{
			HoldThreshold:  g.HoldThreshold,
			TouchSlop:      g.TouchSlop,
			SettleDelay:    g.SettleDelay,
			IterationDelay: g.IterationDelay,
		},
		Reply: reply.DefaultSettings(),
	}
}

// Load reads path (or DefaultFile if path is empty and the file exists)
// over the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("heuristics.self_threshold_ratio", d.Heuristics.SelfThresholdRatio)
	v.SetDefault("heuristics.band_top_ratio", d.Heuristics.BandTopRatio)
	v.SetDefault("heuristics.band_bottom_ratio", d.Heuristics.BandBottomRatio)
	v.SetDefault("heuristics.self_label", d.Heuristics.SelfLabel)
	v.SetDefault("heuristics.peer_placeholder", d.Heuristics.PeerPlaceholder)
	v.SetDefault("heuristics.member_placeholder", d.Heuristics.MemberPlaceholder)
	v.SetDefault("heuristics.structured", d.Heuristics.Structured)

	v.SetDefault("gesture.hold_threshold", d.Gesture.HoldThreshold)
	v.SetDefault("gesture.touch_slop", d.Gesture.TouchSlop)
	v.SetDefault("gesture.settle_delay", d.Gesture.SettleDelay)
	v.SetDefault("gesture.iteration_delay", d.Gesture.IterationDelay)

	v.SetDefault("reply.base_url", d.Reply.BaseURL)
	v.SetDefault("reply.model", d.Reply.Model)
	v.SetDefault("reply.api_key", d.Reply.APIKey)
	v.SetDefault("reply.timeout", d.Reply.Timeout)
	v.SetDefault("reply.limit", d.Reply.Limit)
	v.SetDefault("reply.system_prompt", d.Reply.SystemPrompt)
	v.SetDefault("reply.temperature", d.Reply.Temperature)
	v.SetDefault("reply.retries", d.Reply.Retries)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	ratio := func(name string, r float64) {
		if r < 0 || r > 1 {
			errs = append(errs, fmt.Errorf("heuristics.%s must be within [0, 1], got %g", name, r))
		}
	}
	ratio("self_threshold_ratio", c.Heuristics.SelfThresholdRatio)
	ratio("band_top_ratio", c.Heuristics.BandTopRatio)
	ratio("band_bottom_ratio", c.Heuristics.BandBottomRatio)
	if c.Heuristics.BandTopRatio >= c.Heuristics.BandBottomRatio {
		errs = append(errs, fmt.Errorf("heuristics.band_top_ratio (%g) must be below band_bottom_ratio (%g)",
			c.Heuristics.BandTopRatio, c.Heuristics.BandBottomRatio))
	}

	positive := func(name string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	positive("gesture.hold_threshold", c.Gesture.HoldThreshold)
	positive("gesture.settle_delay", c.Gesture.SettleDelay)
	positive("gesture.iteration_delay", c.Gesture.IterationDelay)
	positive("reply.timeout", c.Reply.Timeout)
	if c.Gesture.TouchSlop < 0 {
		errs = append(errs, fmt.Errorf("gesture.touch_slop must not be negative, got %g", c.Gesture.TouchSlop))
	}
	if c.Reply.Limit < 1 {
		errs = append(errs, fmt.Errorf("reply.limit must be at least 1, got %d", c.Reply.Limit))
	}
	if c.Reply.Retries < 0 {
		errs = append(errs, fmt.Errorf("reply.retries must not be negative, got %d", c.Reply.Retries))
	}
	return errors.Join(errs...)
}

// CaptureHeuristics converts the heuristics section.
func (c Config) CaptureHeuristics() capture.Heuristics {
	h := c.Heuristics
	return capture.Heuristics{
		SelfThresholdRatio: h.SelfThresholdRatio,
		BandTopRatio:       h.BandTopRatio,
		BandBottomRatio:    h.BandBottomRatio,
		SelfLabel:          h.SelfLabel,
		PeerPlaceholder:    h.PeerPlaceholder,
		MemberPlaceholder:  h.MemberPlaceholder,
		Structured:         h.Structured,
	}
}

// GestureTimings converts the gesture section.
func (c Config) GestureTimings() gesture.Config {
	g := c.Gesture
	return gesture.Config{
		HoldThreshold:  g.HoldThreshold,
		TouchSlop:      g.TouchSlop,
		SettleDelay:    g.SettleDelay,
		IterationDelay: g.IterationDelay,
	}
}
