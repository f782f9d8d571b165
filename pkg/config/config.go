package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development staging production"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Data struct {
		Dir        string `yaml:"dir" default:"data/raw"`
		WatchFiles bool   `yaml:"watch_files" default:"true"`
	} `yaml:"data"`
	Cache struct {
		Backend string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
		TTL     time.Duration `yaml:"ttl" default:"10m"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Analysis struct {
		Window          int     `yaml:"window" default:"3" validate:"gt=0"`
		StressWindow    int     `yaml:"stress_window" default:"12" validate:"gt=0"`
		InflationTarget float64 `yaml:"inflation_target" default:"7"`
		InflationLow    float64 `yaml:"inflation_low" default:"6"`
		InflationHigh   float64 `yaml:"inflation_high" default:"8"`
		CopperBase      float64 `yaml:"copper_base" default:"8000"`
		OilBase         float64 `yaml:"oil_base" default:"70"`
	} `yaml:"analysis"`
	Brief struct {
		Title string `yaml:"title" default:"MacroGauge — Zambia Macro Brief"`
	} `yaml:"brief"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file, applying struct
// defaults before validation.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Defaults go on first so an explicit false in the file survives:
	// defaults.Set would overwrite any zero-valued field after unmarshal.
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MACROGAUGE_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("MACROGAUGE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}

	return c, nil
}

// Default returns a configuration with only struct defaults applied,
// used when no config file is present.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Analysis.InflationLow > c.Analysis.InflationHigh {
		return fmt.Errorf("analysis.inflation_low must not exceed analysis.inflation_high")
	}
	return nil
}
