package config

import (
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Tracker.VisibilityThreshold != 0.5 {
		t.Errorf("Expected visibility threshold 0.5, got %v", cfg.Tracker.VisibilityThreshold)
	}
	if cfg.Analysis.MinWords != 10000 {
		t.Errorf("Expected min words 10000, got %d", cfg.Analysis.MinWords)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "empty store path",
			mutate:  func(c *Config) { c.Tracker.StorePath = "" },
			wantErr: true,
			errMsg:  "tracker store_path must not be empty",
		},
		{
			name:    "zero threshold",
			mutate:  func(c *Config) { c.Tracker.VisibilityThreshold = 0 },
			wantErr: true,
			errMsg:  "visibility_threshold must be in (0, 1], got 0",
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.Tracker.VisibilityThreshold = 1.5 },
			wantErr: true,
			errMsg:  "visibility_threshold must be in (0, 1], got 1.5",
		},
		{
			name:   "threshold of one",
			mutate: func(c *Config) { c.Tracker.VisibilityThreshold = 1 },
		},
		{
			name:    "zero min words",
			mutate:  func(c *Config) { c.Analysis.MinWords = 0 },
			wantErr: true,
			errMsg:  "min_words must be greater than 0",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Analysis.Timeout = -time.Second },
			wantErr: true,
			errMsg:  "timeout must be non-negative",
		},
		{
			name:    "zero max input",
			mutate:  func(c *Config) { c.Analysis.MaxInputBytes = 0 },
			wantErr: true,
			errMsg:  "max_input_bytes must be greater than 0",
		},
		{
			name: "vocabulary without name",
			mutate: func(c *Config) {
				c.Analysis.Vocabularies = []VocabularyConfig{{Words: []string{"and"}}}
			},
			wantErr: true,
			errMsg:  "vocabulary 1 has no name",
		},
		{
			name: "reserved vocabulary name",
			mutate: func(c *Config) {
				c.Analysis.Vocabularies = []VocabularyConfig{{Name: "pronouns", Words: []string{"i"}}}
			},
			wantErr: true,
			errMsg:  `vocabulary name "pronouns" is reserved`,
		},
		{
			name: "reserved vocabulary name in another case",
			mutate: func(c *Config) {
				c.Analysis.Vocabularies = []VocabularyConfig{{Name: "Pronouns", Words: []string{"i"}}}
			},
			wantErr: true,
			errMsg:  `vocabulary name "Pronouns" is reserved`,
		},
		{
			name: "duplicate vocabulary name in another case",
			mutate: func(c *Config) {
				c.Analysis.Vocabularies = []VocabularyConfig{
					{Name: "conj", Words: []string{"and"}},
					{Name: "CONJ", Words: []string{"or"}},
				}
			},
			wantErr: true,
			errMsg:  `duplicate vocabulary name "CONJ"`,
		},
		{
			name: "duplicate vocabulary name",
			mutate: func(c *Config) {
				c.Analysis.Vocabularies = []VocabularyConfig{
					{Name: "conj", Words: []string{"and"}},
					{Name: "conj", Words: []string{"or"}},
				}
			},
			wantErr: true,
			errMsg:  `duplicate vocabulary name "conj"`,
		},
		{
			name: "empty vocabulary",
			mutate: func(c *Config) {
				c.Analysis.Vocabularies = []VocabularyConfig{{Name: "conj"}}
			},
			wantErr: true,
			errMsg:  `vocabulary "conj" has no words`,
		},
		{
			name:    "defaults disabled with nothing else",
			mutate:  func(c *Config) { c.Analysis.DisableDefaultVocabularies = true },
			wantErr: true,
			errMsg:  "no vocabularies left to count: default vocabularies disabled and none configured",
		},
		{
			name: "defaults disabled with extra vocabulary",
			mutate: func(c *Config) {
				c.Analysis.DisableDefaultVocabularies = true
				c.Analysis.Vocabularies = []VocabularyConfig{{Name: "conj", Words: []string{"and"}}}
			},
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "invalid" },
			wantErr: true,
			errMsg:  "invalid output format: invalid (must be one of: text, html, json, markdown, csv)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "invalid" },
			wantErr: true,
			errMsg:  "invalid color mode: invalid (must be one of: auto, always, never)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestConfigMerging(t *testing.T) {
	dst := DefaultConfig()

	src := &Config{
		Tracker: TrackerConfig{
			ExportDir: "/tmp/exports",
			Quiet:     true,
		},
		Analysis: AnalysisConfig{
			MinWords:     500,
			Vocabularies: []VocabularyConfig{{Name: "conj", Words: []string{"and", "or"}}},
		},
		Output: OutputConfig{
			DefaultFormat: "json",
			Verbose:       true,
		},
	}

	mergeConfigs(dst, src)

	if dst.Tracker.ExportDir != "/tmp/exports" {
		t.Errorf("Expected export dir /tmp/exports, got %s", dst.Tracker.ExportDir)
	}
	if !dst.Tracker.Quiet {
		t.Errorf("Expected quiet to be true")
	}
	if dst.Analysis.MinWords != 500 {
		t.Errorf("Expected min words 500, got %d", dst.Analysis.MinWords)
	}
	if len(dst.Analysis.Vocabularies) != 1 || dst.Analysis.Vocabularies[0].Name != "conj" {
		t.Errorf("Expected merged vocabulary conj, got %+v", dst.Analysis.Vocabularies)
	}
	if dst.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", dst.Output.DefaultFormat)
	}
	if !dst.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}

	// Unset values in source don't override destination
	if dst.Tracker.VisibilityThreshold != 0.5 {
		t.Errorf("Expected threshold to remain 0.5, got %v", dst.Tracker.VisibilityThreshold)
	}
	if dst.Analysis.Timeout != 30*time.Second {
		t.Errorf("Expected timeout to remain 30s, got %v", dst.Analysis.Timeout)
	}
	if dst.Output.ColorMode != "auto" {
		t.Errorf("Expected color mode to remain auto, got %s", dst.Output.ColorMode)
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "relative path",
			input:    "./config.yaml",
			expected: "./config.yaml",
		},
		{
			name:     "absolute path",
			input:    "/etc/sitelens/config.yaml",
			expected: "/etc/sitelens/config.yaml",
		},
		{
			name:  "home directory path",
			input: "~/.config/sitelens/config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if strings.HasPrefix(tt.input, "~/") {
				if result == tt.input {
					t.Errorf("Expected path to be expanded, but got same path")
				}
				if !strings.HasSuffix(result, ".config/sitelens/config.yaml") {
					t.Errorf("Expected expanded path to keep its tail, got %s", result)
				}
			} else if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestExpandPathExported(t *testing.T) {
	if ExpandPath("/var/lib/x.json") != "/var/lib/x.json" {
		t.Error("ExpandPath should leave absolute paths alone")
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != 3 {
		t.Fatalf("Expected 3 config paths, got %d", len(paths))
	}

	if paths[0] != "./.sitelens.yaml" {
		t.Errorf("Expected first path ./.sitelens.yaml, got %s", paths[0])
	}
	if paths[1] == "~/.config/sitelens/config.yaml" {
		t.Errorf("Expected user path to be expanded")
	}
	if paths[2] != "/etc/sitelens/config.yaml" {
		t.Errorf("Expected system path /etc/sitelens/config.yaml, got %s", paths[2])
	}
}

func TestSampleConfigsParse(t *testing.T) {
	samples := map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	}

	for name, content := range samples {
		t.Run(name, func(t *testing.T) {
			var fileConfig Config
			if err := yaml.Unmarshal([]byte(content), &fileConfig); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}

			cfg := DefaultConfig()
			mergeConfigs(cfg, &fileConfig)
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config does not validate: %v", err)
			}
			if cfg.Analysis.MinWords != 10000 {
				t.Errorf("Expected min words 10000, got %d", cfg.Analysis.MinWords)
			}
		})
	}
}
