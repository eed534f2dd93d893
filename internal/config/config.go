package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the tool configuration file.
type Config struct {
	TracksFolder    string `json:"tracks_folder"    yaml:"tracks_folder"`
	RecordsDatabase string `json:"records_database" yaml:"records_database"`
	ProfileFolder   string `json:"profile_folder"   yaml:"profile_folder"`
	ScanConcurrency int    `json:"scan_concurrency" yaml:"scan_concurrency"`
	CacheSize       int64  `json:"cache_size"       yaml:"cache_size"`
}

func Default() *Config {
	return &Config{
		TracksFolder:    "Tracks",
		RecordsDatabase: "records.db",
		ProfileFolder:   ".",
		ScanConcurrency: 4,
		CacheSize:       256,
	}
}

func (cfg *Config) validate() error {
	if cfg.TracksFolder == "" {
		return errors.New("tracks folder is empty")
	}

	if cfg.RecordsDatabase == "" {
		return errors.New("records database path is empty")
	}

	if cfg.ScanConcurrency < 1 {
		return fmt.Errorf("scan concurrency must be at least 1, got %d", cfg.ScanConcurrency)
	}

	if cfg.CacheSize < 1 {
		return fmt.Errorf("cache size must be at least 1, got %d", cfg.CacheSize)
	}

	return nil
}

func FromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if nil != err {
		return nil, fmt.Errorf("failed to read config file %q: %v", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config file %q: %v", filePath, err)
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}

func FromString(data string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(data), cfg); nil != err {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.validate(); nil != err {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	return cfg, nil
}
