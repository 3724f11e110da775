package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Tracker  TrackerConfig  `yaml:"tracker" json:"tracker"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// TrackerConfig configures interaction tracking
type TrackerConfig struct {
	StorePath           string  `yaml:"store_path" json:"store_path"`                     // durable slot store file
	ExportDir           string  `yaml:"export_dir" json:"export_dir"`                     // where tracking_data.txt is written
	VisibilityThreshold float64 `yaml:"visibility_threshold" json:"visibility_threshold"` // section view ratio
	Quiet               bool    `yaml:"quiet" json:"quiet"`                               // do not echo log lines
}

// AnalysisConfig configures the text analyzer
type AnalysisConfig struct {
	MinWords                   int                `yaml:"min_words" json:"min_words"`
	Timeout                    time.Duration      `yaml:"timeout" json:"timeout"`
	MaxInputBytes              int64              `yaml:"max_input_bytes" json:"max_input_bytes"`
	DisableDefaultVocabularies bool               `yaml:"disable_default_vocabularies" json:"disable_default_vocabularies"`
	Vocabularies               []VocabularyConfig `yaml:"vocabularies" json:"vocabularies"`
}

// VocabularyConfig declares an extra closed vocabulary to count
type VocabularyConfig struct {
	Name  string   `yaml:"name" json:"name"`
	Title string   `yaml:"title" json:"title"`
	Words []string `yaml:"words" json:"words"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|html|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	Theme         string `yaml:"theme" json:"theme"` // TUI theme name
}

// reservedVocabularyNames are taken by the built-in vocabularies
var reservedVocabularyNames = map[string]bool{
	"pronouns":     true,
	"prepositions": true,
	"articles":     true,
	"basic":        true,
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Tracker: TrackerConfig{
			StorePath:           "~/.local/share/sitelens/storage.json",
			ExportDir:           ".",
			VisibilityThreshold: 0.5,
			Quiet:               false,
		},
		Analysis: AnalysisConfig{
			MinWords:      10000,
			Timeout:       30 * time.Second,
			MaxInputBytes: 64 * 1024 * 1024, // 64MB
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Theme:         "default",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateTrackerConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateTrackerConfig validates tracker-related configuration
func (c *Config) validateTrackerConfig() error {
	if c.Tracker.StorePath == "" {
		return fmt.Errorf("tracker store_path must not be empty")
	}
	if c.Tracker.VisibilityThreshold <= 0 || c.Tracker.VisibilityThreshold > 1 {
		return fmt.Errorf("visibility_threshold must be in (0, 1], got %v", c.Tracker.VisibilityThreshold)
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if c.Analysis.MinWords < 1 {
		return fmt.Errorf("min_words must be greater than 0")
	}
	if c.Analysis.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if c.Analysis.MaxInputBytes < 1 {
		return fmt.Errorf("max_input_bytes must be greater than 0")
	}

	seen := make(map[string]bool)
	for i, v := range c.Analysis.Vocabularies {
		if v.Name == "" {
			return fmt.Errorf("vocabulary %d has no name", i+1)
		}
		// Names are looked up case-insensitively by --vocab
		key := strings.ToLower(strings.TrimSpace(v.Name))
		if reservedVocabularyNames[key] {
			return fmt.Errorf("vocabulary name %q is reserved", v.Name)
		}
		if seen[key] {
			return fmt.Errorf("duplicate vocabulary name %q", v.Name)
		}
		seen[key] = true
		if len(v.Words) == 0 {
			return fmt.Errorf("vocabulary %q has no words", v.Name)
		}
	}

	if c.Analysis.DisableDefaultVocabularies && len(c.Analysis.Vocabularies) == 0 {
		return fmt.Errorf("no vocabularies left to count: default vocabularies disabled and none configured")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"html":     true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, html, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
