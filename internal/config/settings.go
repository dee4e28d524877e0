package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, as in PLIX_DEBUG=1.
const EnvPrefix = "PLIX"

// Settings are the tool options resolved from flags, environment and defaults.
type Settings struct {
	Configuration string `mapstructure:"configuration"`
	Debug         bool   `mapstructure:"debug"`
	NoColor       bool   `mapstructure:"no-color"`
	Executor      string `mapstructure:"executor"`
}

// LoadSettings resolves Settings. A flag set on the command line wins over
// the environment, which wins over the defaults.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault("configuration", DefaultFile)
	v.SetDefault("debug", false)
	v.SetDefault("no-color", false)
	v.SetDefault("executor", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return &s, nil
}
