package stockfile

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds stock file import settings.
type Config struct {
	Path      string `yaml:"path"       env:"STOCK_FILE_PATH"`
	Sheet     string `yaml:"sheet"      env:"STOCK_FILE_SHEET"`
	Delimiter string `yaml:"delimiter"  env:"STOCK_FILE_DELIMITER"  env-default:","`
	DryRun    bool   `yaml:"dry_run"    env:"STOCK_FILE_DRY_RUN"`
}

// LoadConfig reads import configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("stockfile config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("stockfile config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("stockfile config: read env: %w", err)
	}
	return &cfg, nil
}

// Comma returns the CSV field delimiter.
func (c Config) Comma() (rune, error) {
	switch r := []rune(c.Delimiter); {
	case len(r) == 0:
		return ',', nil
	case c.Delimiter == `\t` || c.Delimiter == "tab":
		return '\t', nil
	case len(r) == 1 && r[0] != '"' && r[0] != '\n' && r[0] != '\r':
		return r[0], nil
	default:
		return 0, fmt.Errorf("stockfile config: invalid delimiter %q", c.Delimiter)
	}
}
