package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "config.yml"
	defaultPort       = 4000

	seedSourceBuiltin = "builtin"
	seedSourceFile    = "file"
	seedSourceS3      = "s3"
	seedSourceNone    = "none"

	idStrategyUUID     = "uuid"
	idStrategySequence = "sequence"
)

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	Region          string `yaml:"region"`
	AccessKey       string `yaml:"access_key"`
	SecretKey       string `yaml:"secret_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
	DisableChecksum bool   `yaml:"disable_checksum"`
}

type SeedConfig struct {
	Source string   `yaml:"source"`
	File   string   `yaml:"file"`
	S3     S3Config `yaml:"s3"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Port      int        `yaml:"port"`
	IDs       string     `yaml:"ids"`
	StaticDir string     `yaml:"static_dir"`
	Seed      SeedConfig `yaml:"seed"`
	Log       LogConfig  `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Port: defaultPort,
		IDs:  idStrategyUUID,
		Seed: SeedConfig{
			Source: seedSourceBuiltin,
			S3:     S3Config{Key: "cards.json", Region: "us-east-1"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// loadConfig reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.IDs {
	case idStrategyUUID, idStrategySequence:
	default:
		return fmt.Errorf("unknown id strategy %q", c.IDs)
	}
	c.Seed.Source = strings.ToLower(strings.TrimSpace(c.Seed.Source))
	switch c.Seed.Source {
	case seedSourceBuiltin, seedSourceNone:
	case seedSourceFile:
		if c.Seed.File == "" {
			return errors.New("seed.file is required for file seed source")
		}
	case seedSourceS3:
		if c.Seed.S3.Endpoint == "" || c.Seed.S3.Bucket == "" {
			return errors.New("seed.s3.endpoint and seed.s3.bucket are required for s3 seed source")
		}
		if c.Seed.S3.Key == "" {
			return errors.New("seed.s3.key is required for s3 seed source")
		}
	default:
		return fmt.Errorf("unknown seed source %q", c.Seed.Source)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
