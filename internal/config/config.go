// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/varshaad-neenopal/automotive-damage-processing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// KnowledgeBase contains KB source configuration
	KnowledgeBase KnowledgeBaseConfig `json:"knowledge_base"`

	// Estimate contains estimate presentation settings
	Estimate EstimateConfig `json:"estimate"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// KnowledgeBaseConfig describes where repair cost rows come from
type KnowledgeBaseConfig struct {
	// Source is the row source kind (file, s3)
	Source string `json:"source"`

	// Path is the CSV path when Source is "file"
	Path string `json:"path"`

	// Bucket is the S3 bucket when Source is "s3"
	Bucket string `json:"bucket"`

	// Key is the S3 object key when Source is "s3"
	Key string `json:"key"`

	// Region is the AWS region for the S3 source
	Region string `json:"region"`
}

// EstimateConfig contains estimate presentation settings
type EstimateConfig struct {
	// CurrencySymbol is the display symbol on estimates
	CurrencySymbol string `json:"currency_symbol"`

	// LabourComponent is the KB component name for the labour line
	LabourComponent string `json:"labour_component"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		KnowledgeBase: KnowledgeBaseConfig{
			Source: "s3",
			Path:   "car_bills.csv",
			Bucket: "automotive-damage-processing-sources3bucket-zc1cdw6k30o1",
			Key:    "car_bills.csv",
			Region: "us-west-2",
		},
		Estimate: EstimateConfig{
			CurrencySymbol:  "₹",
			LabourComponent: "Labour",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
