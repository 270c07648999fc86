// Package factory assembles the core services from configuration. It also
// keeps a registry of named tier strategies so deployments can slot custom
// classification tiers in without touching the core.
package factory

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eaip/passport-core/pkg/adapters/config"
	"github.com/eaip/passport-core/pkg/core/ports"
	"github.com/eaip/passport-core/pkg/core/services"
)

// TierBuilder creates a tier strategy from free-form parameters.
type TierBuilder func(params map[string]interface{}) (ports.TierStrategy, error)

// TierRegistry maps strategy names to builders.
type TierRegistry struct {
	builders map[string]TierBuilder
	mu       sync.RWMutex
}

var (
	instance *TierRegistry
	once     sync.Once
)

// GetTierRegistry returns the process-wide registry.
func GetTierRegistry() *TierRegistry {
	once.Do(func() {
		instance = NewTierRegistry()
	})
	return instance
}

// NewTierRegistry creates an isolated registry, useful in tests.
func NewTierRegistry() *TierRegistry {
	return &TierRegistry{
		builders: make(map[string]TierBuilder),
	}
}

// Register adds or overrides a builder.
func (r *TierRegistry) Register(name string, builder TierBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// Create instantiates a registered strategy.
func (r *TierRegistry) Create(name string, params map[string]interface{}) (ports.TierStrategy, error) {
	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no builder registered for tier: %s", name)
	}
	return builder(params)
}

// Core bundles the assembled services.
type Core struct {
	Classifier      ports.ResourceClassifier
	UsageClassifier ports.UsageClassifier
	Aggregator      ports.Aggregator
	Accumulator     *services.CanonicalAccumulator
	Transformer     ports.ReportTransformer
	Readiness       ports.ReadinessEvaluator
}

// CoreOption passes external collaborators into assembly.
type CoreOption func(*coreDeps)

type coreDeps struct {
	oracle        ports.AIOracle
	rules         ports.ContentRuleFunc
	repo          ports.AggregateRepository
	canonicalRepo ports.CanonicalRepository
	sanitizer     ports.Sanitizer
	logger        *slog.Logger
}

// WithOracle wires the external classification oracle.
func WithOracle(oracle ports.AIOracle) CoreOption {
	return func(d *coreDeps) { d.oracle = oracle }
}

// WithContentRules wires a deterministic content matcher.
func WithContentRules(rules ports.ContentRuleFunc) CoreOption {
	return func(d *coreDeps) { d.rules = rules }
}

// WithAggregateRepository wires aggregate persistence.
func WithAggregateRepository(repo ports.AggregateRepository) CoreOption {
	return func(d *coreDeps) { d.repo = repo }
}

// WithCanonicalRepository wires canonical document persistence.
func WithCanonicalRepository(repo ports.CanonicalRepository) CoreOption {
	return func(d *coreDeps) { d.canonicalRepo = repo }
}

// WithSanitizer replaces the accumulator's default cleaning rules.
func WithSanitizer(sanitizer ports.Sanitizer) CoreOption {
	return func(d *coreDeps) { d.sanitizer = sanitizer }
}

// WithLogger sets the logger shared by all assembled services.
func WithLogger(logger *slog.Logger) CoreOption {
	return func(d *coreDeps) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewCore assembles the full service set from configuration. A nil config
// yields stock defaults everywhere.
func NewCore(cfg *config.Config, opts ...CoreOption) *Core {
	if cfg == nil {
		cfg = &config.Config{}
	}
	deps := &coreDeps{logger: slog.Default()}
	for _, opt := range opts {
		opt(deps)
	}

	usage := services.NewKeywordUsageClassifier(
		usageOptions(cfg, deps.logger)...,
	)

	classifierOpts := []services.ClassifierOption{
		services.WithClassifierLogger(deps.logger),
	}
	if deps.oracle != nil {
		classifierOpts = append(classifierOpts, services.WithOracle(deps.oracle))
	}
	if deps.rules != nil {
		classifierOpts = append(classifierOpts, services.WithContentRules(deps.rules))
	}
	if table := cfg.FilenameTable(); table != nil {
		classifierOpts = append(classifierOpts, services.WithFilenameTable(table))
	}
	if keywords := cfg.ContentKeywordTable(); keywords != nil {
		classifierOpts = append(classifierOpts, services.WithContentKeywords(keywords))
	}

	aggregatorOpts := []services.AggregatorOption{
		services.WithAggregatorConfig(cfg.AggregatorSettings()),
		services.WithAggregatorLogger(deps.logger),
	}
	if deps.repo != nil {
		aggregatorOpts = append(aggregatorOpts, services.WithAggregateRepository(deps.repo))
	}

	readinessOpts := []services.ReadinessOption{}
	if reqs := cfg.RequirementList(); reqs != nil {
		readinessOpts = append(readinessOpts, services.WithRequirements(reqs))
	}

	accumulatorOpts := []services.AccumulatorOption{
		services.WithAccumulatorLogger(deps.logger),
	}
	if deps.sanitizer != nil {
		accumulatorOpts = append(accumulatorOpts, services.WithSanitizer(deps.sanitizer))
	}
	if deps.canonicalRepo != nil {
		accumulatorOpts = append(accumulatorOpts, services.WithCanonicalRepository(deps.canonicalRepo))
	}

	return &Core{
		Classifier:      services.NewTieredClassifier(classifierOpts...),
		UsageClassifier: usage,
		Aggregator:      services.NewBatchAggregator(aggregatorOpts...),
		Accumulator:     services.NewCanonicalAccumulator(accumulatorOpts...),
		Transformer: services.NewCanonicalTransformer(
			services.WithUsageClassifier(usage),
			services.WithTransformerLogger(deps.logger),
		),
		Readiness: services.NewRequirementEvaluator(readinessOpts...),
	}
}

func usageOptions(cfg *config.Config, logger *slog.Logger) []services.UsageOption {
	opts := []services.UsageOption{services.WithUsageLogger(logger)}
	if keywords := cfg.UsageKeywordTable(); keywords != nil {
		opts = append(opts, services.WithUsageKeywords(keywords))
	}
	if hints := cfg.NodeHintTable(); hints != nil {
		opts = append(opts, services.WithNodeLocationHints(hints))
	}
	return opts
}
