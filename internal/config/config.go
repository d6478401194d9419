// Package config loads server configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// ServerConfig configures the listening surfaces.
type ServerConfig struct {
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

// WebSocketConfig configures the websocket listener.
type WebSocketConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig overrides the battle ruleset. Zero values fall back to the
// engine defaults.
type GameConfig struct {
	Seed         int64 `mapstructure:"seed"`
	StartingHP   int   `mapstructure:"starting_hp"`
	StartingMana int   `mapstructure:"starting_mana"`
	ManaCap      int   `mapstructure:"mana_cap"`
	HandLimit    int   `mapstructure:"hand_limit"`
	FieldLimit   int   `mapstructure:"field_limit"`
	OpeningHand  int   `mapstructure:"opening_hand"`
	DeckMin      int   `mapstructure:"deck_min"`
	DeckMax      int   `mapstructure:"deck_max"`
	MaxCopies    int   `mapstructure:"max_copies"`
}

// Load reads configuration from the given path. A missing file is not an
// error; defaults and EMBERDUEL_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.websocket.address", ":8090")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("EMBERDUEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
