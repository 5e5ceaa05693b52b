package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Load reads a yaml defaults file into v.
func Load(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not load config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal config from %s: %w", path, err)
	}
	log.Info().Str("config", path).Msg("loaded defaults")
	return nil
}
