package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries the tunables of the bot binary. Values come from
// defaults, an optional config file, and HEXMCTS_* environment
// variables, in increasing priority.
type Config struct {
	v *viper.Viper
}

func New() *Config {
	v := viper.New()
	v.SetDefault("budget-ms", 1000)
	v.SetDefault("exploration", 0.5)
	v.SetDefault("first-turn-multiplier", 1.9)
	v.SetDefault("log-level", "info")
	v.SetDefault("metrics", true)
	v.SetEnvPrefix("hexmcts")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// Load reads an optional config file on top of the defaults.
func (c *Config) Load(path string) error {
	if path == "" {
		return nil
	}
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Budget is the per-turn wall-clock allowance.
func (c *Config) Budget() time.Duration {
	return time.Duration(c.v.GetInt("budget-ms")) * time.Millisecond
}

func (c *Config) Exploration() float64 {
	return c.v.GetFloat64("exploration")
}

// FirstTurnMultiplier scales the budget of the opening turn; the host
// grants extra time there.
func (c *Config) FirstTurnMultiplier() float64 {
	return c.v.GetFloat64("first-turn-multiplier")
}

func (c *Config) LogLevel() string {
	return c.v.GetString("log-level")
}

func (c *Config) Metrics() bool {
	return c.v.GetBool("metrics")
}
