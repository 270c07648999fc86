package services

import (
	"context"
	"log/slog"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
	"github.com/eaip/passport-core/pkg/core/services/strategies"
)

// TieredClassifier resolves a file's resource type by running fixed tiers
// in priority order: hint validation, content rules, oracle, filename
// table, terminal default. The first tier that decides wins; later tiers
// never override an earlier decision.
type TieredClassifier struct {
	tiers  []ports.TierStrategy
	logger *slog.Logger

	rules    ports.ContentRuleFunc
	oracle   ports.AIOracle
	table    []domain.FilenameRule
	keywords map[domain.ResourceType][]string
}

// ClassifierOption configures the tiered classifier.
type ClassifierOption func(*TieredClassifier)

// WithContentRules injects the deterministic content matcher for the
// content tier, replacing the built-in keyword scan.
func WithContentRules(rules ports.ContentRuleFunc) ClassifierOption {
	return func(c *TieredClassifier) {
		c.rules = rules
	}
}

// WithOracle enables the oracle tier.
func WithOracle(oracle ports.AIOracle) ClassifierOption {
	return func(c *TieredClassifier) {
		c.oracle = oracle
	}
}

// WithFilenameTable replaces the default filename pattern table.
func WithFilenameTable(table []domain.FilenameRule) ClassifierOption {
	return func(c *TieredClassifier) {
		c.table = table
	}
}

// WithContentKeywords replaces the built-in keyword lists used when no
// content rule func is injected.
func WithContentKeywords(keywords map[domain.ResourceType][]string) ClassifierOption {
	return func(c *TieredClassifier) {
		c.keywords = keywords
	}
}

// WithClassifierLogger sets the structured logger.
func WithClassifierLogger(logger *slog.Logger) ClassifierOption {
	return func(c *TieredClassifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTiers overrides the tier chain entirely. The caller owns ordering
// and must terminate the chain with a strategy that always decides.
func WithTiers(tiers ...ports.TierStrategy) ClassifierOption {
	return func(c *TieredClassifier) {
		c.tiers = tiers
	}
}

// NewTieredClassifier builds the classifier with the standard tier chain.
func NewTieredClassifier(opts ...ClassifierOption) ports.ResourceClassifier {
	c := &TieredClassifier{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tiers == nil {
		content := &strategies.ContentStrategy{Rules: c.rules, Keywords: c.keywords}
		c.tiers = []ports.TierStrategy{
			&strategies.HintStrategy{Content: content, Logger: c.logger},
			content,
			&strategies.OracleStrategy{Oracle: c.oracle, Logger: c.logger},
			&strategies.FilenameStrategy{Table: c.table},
			strategies.FallbackStrategy{},
		}
	}
	return c
}

// Classify returns only the resource tag.
func (c *TieredClassifier) Classify(ctx context.Context, in ports.TierInput) domain.ResourceType {
	decision := c.ClassifyWithConfidence(ctx, in)
	return decision.Resource
}

// ClassifyWithConfidence runs the tier chain and returns the first
// decision. The terminal tier guarantees one exists.
func (c *TieredClassifier) ClassifyWithConfidence(ctx context.Context, in ports.TierInput) ports.TierDecision {
	for _, tier := range c.tiers {
		decision, ok := tier.Attempt(ctx, in)
		if !ok {
			continue
		}
		c.logger.Debug("resource classified",
			"filename", in.Filename,
			"tier", tier.Name(),
			"resource", decision.Resource,
			"confidence", decision.Confidence,
			"low_confidence", decision.LowConfidence)
		return decision
	}
	// Unreachable with the standard chain; kept for custom tier sets.
	return ports.TierDecision{Resource: domain.ResourceOther, Confidence: strategies.FallbackConfidence}
}
