package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/domain"
)

// AggregateTarget is the player alias meaning "whichever player is most
// recently active", resolved through the directory on every pass
const AggregateTarget = "playerctld"

// Config enumerates every recognized option with its default. It is
// validated once at construction; the rest of the program treats it as
// read-only.
type Config struct {
	// Format is the fallback template used for every status
	Format string `mapstructure:"format" default:"{player} ({status}): {dynamic}"`
	// FormatPlaying overrides Format while playing, when non-empty
	FormatPlaying string `mapstructure:"format-playing"`
	// FormatPaused overrides Format while paused, when non-empty
	FormatPaused string `mapstructure:"format-paused"`
	// FormatStopped overrides Format while stopped, when non-empty
	FormatStopped string `mapstructure:"format-stopped"`
	// Interval is the periodic refresh interval in seconds, 0 disables it
	Interval int `mapstructure:"interval"`
	// Player is a concrete player name or the aggregate alias
	Player string `mapstructure:"player" default:"playerctld"`
	// IgnoredPlayers suppresses snapshots from the listed players
	IgnoredPlayers []string `mapstructure:"ignored-players"`
	// PlayerIcons maps player names to icons, with a "default" entry
	PlayerIcons map[string]string `mapstructure:"player-icons"`
	// StatusIcons maps status tokens to icons, with a "default" entry
	StatusIcons map[string]string `mapstructure:"status-icons"`
	// OnClick replaces the built-in left-click action when non-empty
	OnClick string `mapstructure:"on-click"`
	// OnMiddleClick replaces the built-in middle-click action when non-empty
	OnMiddleClick string `mapstructure:"on-middle-click"`
	// OnRightClick replaces the built-in right-click action when non-empty
	OnRightClick string `mapstructure:"on-right-click"`
}

// Default returns a Config populated with the documented defaults
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

// Load reads the configuration file, layering it over the defaults.
// A missing file is not an error; everything falls back to defaults.
func Load(logger *zap.Logger) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath("$XDG_CONFIG_HOME/mprisbar")
	v.AddConfigPath("$HOME/.config/mprisbar")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Info("no config file found, using defaults")
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded",
		zap.String("player", cfg.Player),
		zap.Int("interval", cfg.Interval),
		zap.Strings("ignored", cfg.IgnoredPlayers))
	return cfg, nil
}

// Validate checks option values once, at construction
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Format) == "" {
		return fmt.Errorf("format must not be empty")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %d", c.Interval)
	}
	if strings.TrimSpace(c.Player) == "" {
		return fmt.Errorf("player must not be empty")
	}
	return nil
}

// TemplateFor picks the status-specific template when one is configured
// and non-empty, falling back to the default template
func (c *Config) TemplateFor(status domain.PlaybackStatus) string {
	switch status {
	case domain.StatusPlaying:
		if c.FormatPlaying != "" {
			return c.FormatPlaying
		}
	case domain.StatusPaused:
		if c.FormatPaused != "" {
			return c.FormatPaused
		}
	case domain.StatusStopped:
		if c.FormatStopped != "" {
			return c.FormatStopped
		}
	}
	return c.Format
}

// OverrideFor returns the user command bound to the given button, or ""
func (c *Config) OverrideFor(button domain.ClickButton) string {
	switch button {
	case domain.ClickPrimary:
		return c.OnClick
	case domain.ClickMiddle:
		return c.OnMiddleClick
	case domain.ClickSecondary:
		return c.OnRightClick
	default:
		return ""
	}
}

// IsIgnored reports whether the resolved player name matches any
// ignored-players entry
func (c *Config) IsIgnored(player string) bool {
	for _, ignored := range c.IgnoredPlayers {
		if player == ignored {
			return true
		}
	}
	return false
}
