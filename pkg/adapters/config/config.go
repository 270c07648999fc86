// Package config loads runtime configuration for the canonical-data core:
// classification tables, usage keyword lists, aggregation windows and the
// report requirement set. Everything has a built-in default; a config file
// only overrides what it names.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/services"
)

// Config is the root configuration document.
type Config struct {
	Classifier   ClassifierConfig    `yaml:"classifier"`
	Usage        UsageConfig         `yaml:"usage"`
	Aggregator   AggregatorConfig    `yaml:"aggregator"`
	Requirements []RequirementConfig `yaml:"requirements"`
}

// ClassifierConfig overrides the resource classification tables.
type ClassifierConfig struct {
	FilenameRules   []FilenameRuleConfig `yaml:"filename_rules"`
	ContentKeywords map[string][]string  `yaml:"content_keywords"`
}

// FilenameRuleConfig is one ordered filename pattern group.
type FilenameRuleConfig struct {
	Resource string   `yaml:"resource"`
	Patterns []string `yaml:"patterns"`
}

// UsageConfig overrides usage classification keyword tables.
type UsageConfig struct {
	Keywords  map[string][]string `yaml:"keywords"`
	NodeHints []NodeHintConfig    `yaml:"node_hints"`
}

// NodeHintConfig maps node location keywords to a usage category.
type NodeHintConfig struct {
	Keywords []string `yaml:"keywords"`
	Category string   `yaml:"category"`
}

// AggregatorConfig overrides aggregation tuning.
type AggregatorConfig struct {
	Workers   int `yaml:"workers"`
	MinYear   int `yaml:"min_year"`
	MaxYear   int `yaml:"max_year"`
	StartYear int `yaml:"start_year"`
}

// RequirementConfig declares one report requirement.
type RequirementConfig struct {
	ID          string `yaml:"id"`
	Section     string `yaml:"section"`
	Description string `yaml:"description"`
	Severity    string `yaml:"severity"`
	PathHint    string `yaml:"path_hint"`
}

// Load decodes and validates a YAML config document.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads a YAML config from disk.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for _, rule := range c.Classifier.FilenameRules {
		if _, ok := domain.ParseResourceType(rule.Resource); !ok {
			return fmt.Errorf("filename rule: unknown resource %q", rule.Resource)
		}
		if len(rule.Patterns) == 0 {
			return fmt.Errorf("filename rule for %q has no patterns", rule.Resource)
		}
	}
	for key := range c.Classifier.ContentKeywords {
		if _, ok := domain.ParseResourceType(key); !ok {
			return fmt.Errorf("content keywords: unknown resource %q", key)
		}
	}
	for key := range c.Usage.Keywords {
		if _, ok := domain.ParseUsageCategory(key); !ok {
			return fmt.Errorf("usage keywords: unknown category %q", key)
		}
	}
	for _, hint := range c.Usage.NodeHints {
		if _, ok := domain.ParseUsageCategory(hint.Category); !ok {
			return fmt.Errorf("node hint: unknown category %q", hint.Category)
		}
	}
	for _, req := range c.Requirements {
		if req.ID == "" {
			return fmt.Errorf("requirement without id")
		}
		switch domain.Severity(req.Severity) {
		case domain.SeverityRequired, domain.SeverityRecommended:
		default:
			return fmt.Errorf("requirement %q: unknown severity %q", req.ID, req.Severity)
		}
	}
	return nil
}

// FilenameTable converts the configured rules into the domain table, or
// nil when the config does not override them.
func (c *Config) FilenameTable() []domain.FilenameRule {
	if len(c.Classifier.FilenameRules) == 0 {
		return nil
	}
	table := make([]domain.FilenameRule, 0, len(c.Classifier.FilenameRules))
	for _, rule := range c.Classifier.FilenameRules {
		resource, _ := domain.ParseResourceType(rule.Resource)
		table = append(table, domain.FilenameRule{Resource: resource, Patterns: rule.Patterns})
	}
	return table
}

// ContentKeywordTable converts configured content keywords, or nil.
func (c *Config) ContentKeywordTable() map[domain.ResourceType][]string {
	if len(c.Classifier.ContentKeywords) == 0 {
		return nil
	}
	out := make(map[domain.ResourceType][]string, len(c.Classifier.ContentKeywords))
	for key, kws := range c.Classifier.ContentKeywords {
		resource, _ := domain.ParseResourceType(key)
		out[resource] = kws
	}
	return out
}

// UsageKeywordTable converts configured usage keywords, or nil.
func (c *Config) UsageKeywordTable() map[domain.UsageCategory][]string {
	if len(c.Usage.Keywords) == 0 {
		return nil
	}
	out := make(map[domain.UsageCategory][]string, len(c.Usage.Keywords))
	for key, kws := range c.Usage.Keywords {
		category, _ := domain.ParseUsageCategory(key)
		out[category] = kws
	}
	return out
}

// NodeHintTable converts configured node hints, or nil.
func (c *Config) NodeHintTable() []domain.NodeLocationHint {
	if len(c.Usage.NodeHints) == 0 {
		return nil
	}
	out := make([]domain.NodeLocationHint, 0, len(c.Usage.NodeHints))
	for _, hint := range c.Usage.NodeHints {
		category, _ := domain.ParseUsageCategory(hint.Category)
		out = append(out, domain.NodeLocationHint{Keywords: hint.Keywords, Category: category})
	}
	return out
}

// RequirementList converts configured requirements, or nil.
func (c *Config) RequirementList() []domain.RequiredField {
	if len(c.Requirements) == 0 {
		return nil
	}
	out := make([]domain.RequiredField, 0, len(c.Requirements))
	for _, req := range c.Requirements {
		out = append(out, domain.RequiredField{
			ID:          req.ID,
			Section:     req.Section,
			Description: req.Description,
			Severity:    domain.Severity(req.Severity),
			PathHint:    req.PathHint,
		})
	}
	return out
}

// AggregatorSettings merges the configured overrides onto the stock
// aggregator configuration.
func (c *Config) AggregatorSettings() services.AggregatorConfig {
	cfg := services.DefaultAggregatorConfig()
	if c.Aggregator.Workers > 0 {
		cfg.Workers = c.Aggregator.Workers
	}
	if c.Aggregator.MinYear > 0 {
		cfg.MinYear = c.Aggregator.MinYear
	}
	if c.Aggregator.MaxYear > 0 {
		cfg.MaxYear = c.Aggregator.MaxYear
	}
	if c.Aggregator.StartYear > 0 {
		cfg.StartYear = c.Aggregator.StartYear
	}
	return cfg
}
