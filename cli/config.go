// Package cli implements the ragsynth command line: config handling,
// document ingestion, and querying.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = "config.ini"

// Data file names per store backend.
const (
	JSONStoreFileName = "docstore.json"
	BoltStoreFileName = "docstore.db"
)

// Config is the parsed project configuration. Every field has a
// default; unknown values fail validation before any work starts.
type Config struct {
	// StoreType selects the docstore backend: "json" or "bolt".
	StoreType string
	// IndexType selects retrieval: "default" (all documents) or
	// "keyword" (keyword-overlap ranking).
	IndexType string
	// EmbedModelType is reserved for embedding backends; only
	// "default" is known.
	EmbedModelType string
	// PredictorType selects the model: "default" (OpenAI) or "mock".
	PredictorType string
	// Model optionally names the OpenAI model.
	Model string
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		StoreType:      "json",
		IndexType:      "default",
		EmbedModelType: "default",
		PredictorType:  "default",
	}
}

// LoadConfig reads config.ini under root, filling defaults for missing
// sections, and validates the result. A missing file yields the
// defaults.
func LoadConfig(root string) (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg.StoreType = file.Section("store").Key("type").MustString(cfg.StoreType)
	cfg.IndexType = file.Section("index").Key("type").MustString(cfg.IndexType)
	cfg.EmbedModelType = file.Section("embed_model").Key("type").MustString(cfg.EmbedModelType)
	cfg.PredictorType = file.Section("llm_predictor").Key("type").MustString(cfg.PredictorType)
	cfg.Model = file.Section("llm_predictor").Key("model").String()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown type values.
func (c *Config) Validate() error {
	switch c.StoreType {
	case "json", "bolt":
	default:
		return fmt.Errorf("config: unknown store.type %q", c.StoreType)
	}
	switch c.IndexType {
	case "default", "keyword":
	default:
		return fmt.Errorf("config: unknown index.type %q", c.IndexType)
	}
	if c.EmbedModelType != "default" {
		return fmt.Errorf("config: unknown embed_model.type %q", c.EmbedModelType)
	}
	switch c.PredictorType {
	case "default", "mock":
	default:
		return fmt.Errorf("config: unknown llm_predictor.type %q", c.PredictorType)
	}
	return nil
}

// Save writes the configuration as config.ini under root.
func (c *Config) Save(root string) error {
	file := ini.Empty()
	file.Section("store").Key("type").SetValue(c.StoreType)
	file.Section("index").Key("type").SetValue(c.IndexType)
	file.Section("embed_model").Key("type").SetValue(c.EmbedModelType)
	file.Section("llm_predictor").Key("type").SetValue(c.PredictorType)
	if c.Model != "" {
		file.Section("llm_predictor").Key("model").SetValue(c.Model)
	}

	path := filepath.Join(root, ConfigFileName)
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// StorePath returns the docstore file path for the configured backend.
func (c *Config) StorePath(root string) string {
	if c.StoreType == "bolt" {
		return filepath.Join(root, BoltStoreFileName)
	}
	return filepath.Join(root, JSONStoreFileName)
}
