package commons

import (
	"fmt"

	"github.com/spf13/viper"

	"salesdesk/internal/config"
)

// LoadConfig merges an optional YAML/JSON/TOML file with the environment.
// An empty path means environment and defaults only.
func LoadConfig(path string) (*config.Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
