package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/joripage/orderbook-lite/pkg/logging"
	"github.com/joripage/orderbook-lite/pkg/orderbook"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const DefaultLogLevel = "info"

type AppConfig struct {
	ServiceName string            `yaml:"service_name"`
	Book        *orderbook.Config `yaml:"book"`
	Log         *logging.Config   `yaml:"log"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		sugar.Error("Invalid config")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}

// LoadWithEnvFiles loads the given .env files into the process environment
// before reading the config, so ${VAR} references in the yaml resolve against
// them. Variables already set in the environment win.
func LoadWithEnvFiles(filePath string, envFiles ...string) (*AppConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			zap.S().Errorf("load env files %v fail: %v", envFiles, err)
			return nil, err
		}
	}
	return Load(filePath)
}

// applyDefaults fills unset values. An epsilon of 0 in the file means the
// default tolerance, not exact comparison.
func (c *AppConfig) applyDefaults() {
	if c.Book == nil {
		c.Book = orderbook.DefaultConfig()
	}
	c.Book.ApplyDefaults()

	if c.Log == nil {
		c.Log = &logging.Config{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks that all values are usable.
func (c *AppConfig) Validate() error {
	if c.Book == nil {
		return errors.New("book is required")
	}
	if err := c.Book.Validate(); err != nil {
		return fmt.Errorf("book: %w", err)
	}

	if c.Log != nil && c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}

	return nil
}
