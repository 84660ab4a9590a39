package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	koanfjson "github.com/knadh/koanf/parsers/json"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// Nested keys use a double underscore: CHANGELOG_RENDERER__MODEL=... sets renderer.model.
const EnvPrefix = "CHANGELOG_"

// configFileNames are looked up in the working directory, then the home directory.
var configFileNames = []string{".changelog.yaml", ".changelog.yml", ".changelog.json"}

// Config is the root configuration structure.
type Config struct {
	Scoring    ScoringConfig   `koanf:"scoring" json:"scoring"`
	Categories CategoryConfig  `koanf:"categories" json:"categories"`
	Renderer   RendererConfig  `koanf:"renderer" json:"renderer"`
	Filters    FilterConfig    `koanf:"filters" json:"filters"`
	Preview    PreviewConfig   `koanf:"preview" json:"preview"`
	Selection  SelectionConfig `koanf:"selection" json:"selection"`
}

// ScoringConfig holds the changelog-worthiness weighting table.
type ScoringConfig struct {
	Keywords         map[string]int `koanf:"keywords" json:"keywords"`                 // positive weights
	TrivialKeywords  map[string]int `koanf:"trivial_keywords" json:"trivial_keywords"` // negative weights
	ImportantPaths   []string       `koanf:"important_paths" json:"important_paths"`   // doublestar globs
	RecentWindowDays int            `koanf:"recent_window_days" json:"recent_window_days"`
	MinScore         int            `koanf:"min_score" json:"min_score"`
	MaxScore         int            `koanf:"max_score" json:"max_score"`
	Thresholds       SizeThresholds `koanf:"thresholds" json:"thresholds"`
}

// SizeThresholds holds the step boundaries of the size, file and detail factors.
type SizeThresholds struct {
	SignificantChurn int `koanf:"significant_churn" json:"significant_churn"` // Default: 50
	LargeChurn       int `koanf:"large_churn" json:"large_churn"`             // Default: 100
	MultipleFiles    int `koanf:"multiple_files" json:"multiple_files"`       // Default: 2
	ManyFiles        int `koanf:"many_files" json:"many_files"`               // Default: 5
	DetailedMessage  int `koanf:"detailed_message" json:"detailed_message"`   // Default: 100 characters
}

// CategoryConfig holds changelog section names and the patterns used to group commits.
type CategoryConfig struct {
	Default  []string            `koanf:"default" json:"default"`
	Patterns map[string][]string `koanf:"patterns" json:"patterns"` // section name -> regex patterns
}

// RendererConfig holds text-generation service options.
type RendererConfig struct {
	Provider    string  `koanf:"provider" json:"provider"`
	Model       string  `koanf:"model" json:"model"`
	MaxTokens   int     `koanf:"max_tokens" json:"max_tokens"`
	Temperature float64 `koanf:"temperature" json:"temperature"`
	APIURL      string  `koanf:"api_url" json:"api_url"`
	APIKeyEnv   string  `koanf:"api_key_env" json:"api_key_env"`
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `koanf:"include" json:"include"`
	Exclude []string `koanf:"exclude" json:"exclude"`
}

// PreviewConfig controls preview and checklist formatting.
type PreviewConfig struct {
	MaxMessageLength int    `koanf:"max_message_length" json:"max_message_length"`
	ShortHashLength  int    `koanf:"short_hash_length" json:"short_hash_length"`
	DateLayout       string `koanf:"date_layout" json:"date_layout"`
}

// SelectionConfig holds selector defaults.
type SelectionConfig struct {
	Chronological bool `koanf:"chronological" json:"chronological"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Keywords: map[string]int{
				"feat": 3, "feature": 3, "add": 2, "implement": 2,
				"fix": 2, "bug": 2, "issue": 2, "resolve": 2,
				"breaking": 4, "security": 4, "vulnerability": 4,
				"performance": 3, "optimize": 3, "improve": 2,
				"refactor": 1, "update": 1, "upgrade": 2,
			},
			TrivialKeywords: map[string]int{
				"chore": -1, "typo": -1, "format": -1, "style": -1,
				"merge": -1, "wip": -1, "temp": -1,
			},
			ImportantPaths:   []string{"src/**", "app/**", "lib/**", "core/**", "api/**"},
			RecentWindowDays: 7,
			MinScore:         -5,
			MaxScore:         10,
			Thresholds: SizeThresholds{
				SignificantChurn: 50,
				LargeChurn:       100,
				MultipleFiles:    2,
				ManyFiles:        5,
				DetailedMessage:  100,
			},
		},
		Categories: CategoryConfig{
			Default: []string{"Features", "Bug Fixes", "Improvements"},
			Patterns: map[string][]string{
				"Features":     {`^feat(\(.+\))?!?:`, `\b(add|implement|introduce|feature)\b`},
				"Bug Fixes":    {`^fix(\(.+\))?!?:`, `\b(fix(es|ed)?|bug|resolve[sd]?|hotfix)\b`},
				"Improvements": {`^(perf|refactor)(\(.+\))?!?:`, `\b(improve|optimi[sz]e|performance|refactor|upgrade|update)\b`},
			},
		},
		Renderer: RendererConfig{
			Provider:    "anthropic",
			Model:       "claude-3-5-sonnet-20241022",
			MaxTokens:   4096,
			Temperature: 0.5,
			APIURL:      "https://api.anthropic.com/v1/messages",
			APIKeyEnv:   "ANTHROPIC_API_KEY",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Preview: PreviewConfig{
			MaxMessageLength: 60,
			ShortHashLength:  7,
			DateLayout:       "2006-01-02 15:04",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults and
// environment overrides. An empty path searches the default locations.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) || explicit {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		} else if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail later in the pipeline.
func (c *Config) Validate() error {
	if c.Scoring.MinScore > c.Scoring.MaxScore {
		return fmt.Errorf("scoring.minScore (%d) is greater than scoring.maxScore (%d)",
			c.Scoring.MinScore, c.Scoring.MaxScore)
	}
	if c.Scoring.RecentWindowDays < 0 {
		return fmt.Errorf("scoring.recentWindowDays must not be negative")
	}
	for _, p := range c.Scoring.ImportantPaths {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("scoring.importantPaths: invalid glob %q", p)
		}
	}
	for _, p := range append(append([]string{}, c.Filters.Include...), c.Filters.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("filters: invalid glob %q", p)
		}
	}
	if c.Renderer.MaxTokens <= 0 {
		return fmt.Errorf("renderer.maxTokens must be positive")
	}
	return nil
}

func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		for _, name := range configFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return koanfyaml.Parser()
	default:
		return koanfjson.Parser()
	}
}

// loadDefaults seeds k with DefaultConfig so files and environment only
// need to name the keys they override.
func loadDefaults(k *koanf.Koanf) error {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	defaults, err := koanfjson.Parser().Unmarshal(data)
	if err != nil {
		return err
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// envTransform maps CHANGELOG_RENDERER__MAX_TOKENS to renderer.max_tokens.
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
