package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix = "MINDGYM_"
	FileName  = "mindgym.yaml"
)

// Budgets holds per-game session time budgets. Zero keeps the game's default.
type Budgets struct {
	Digitspan  time.Duration `yaml:"digitspan" env:"DIGITSPAN"`
	Shapedance time.Duration `yaml:"shapedance" env:"SHAPEDANCE"`
	Numerosity time.Duration `yaml:"numerosity" env:"NUMEROSITY"`
	Pathfinder time.Duration `yaml:"pathfinder" env:"PATHFINDER"`
	Flashback  time.Duration `yaml:"flashback" env:"FLASHBACK"`
}

type Config struct {
	DataDir      string        `yaml:"-"`
	DBPath       string        `yaml:"db_path" env:"DB_PATH"`
	LogFile      string        `yaml:"log_file" env:"LOG_FILE"`
	Debug        bool          `yaml:"debug" env:"DEBUG"`
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	Budgets      Budgets       `yaml:"budgets" envPrefix:"BUDGET_"`
}

// New builds the configuration for dataDir. Values are layered as
// defaults, then dataDir/mindgym.yaml, then MINDGYM_* environment variables.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, ".mindgym", "journal.db"),
		TickInterval: 200 * time.Millisecond,
	}
	if err := cfg.loadFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(payload, c); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}
