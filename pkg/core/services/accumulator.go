package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// CanonicalAccumulator collects per-file partials into one canonical
// document for a batch. Writes go through the sanitizer; the mutex is the
// single-writer discipline MergePartial requires, so concurrent ingestors
// can all point their downstream here.
type CanonicalAccumulator struct {
	mu       sync.Mutex
	data     domain.CanonicalSourceData
	rejected []domain.RejectedRecord

	sanitizer ports.Sanitizer
	repo      ports.CanonicalRepository
	logger    *slog.Logger
}

// AccumulatorOption configures the accumulator.
type AccumulatorOption func(*CanonicalAccumulator)

// WithSanitizer replaces the default cleaning rules.
func WithSanitizer(sanitizer ports.Sanitizer) AccumulatorOption {
	return func(a *CanonicalAccumulator) {
		if sanitizer != nil {
			a.sanitizer = sanitizer
		}
	}
}

// WithCanonicalRepository sets the persistence dependency used by Flush.
func WithCanonicalRepository(repo ports.CanonicalRepository) AccumulatorOption {
	return func(a *CanonicalAccumulator) {
		a.repo = repo
	}
}

// WithAccumulatorLogger sets the structured logger.
func WithAccumulatorLogger(logger *slog.Logger) AccumulatorOption {
	return func(a *CanonicalAccumulator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewCanonicalAccumulator creates an empty accumulator.
func NewCanonicalAccumulator(opts ...AccumulatorOption) *CanonicalAccumulator {
	a := &CanonicalAccumulator{
		sanitizer: DefaultSanitizer(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add sanitizes and merges one partial. Rejections are recorded and
// logged, never returned as errors: a dirty record must not fail the file
// it arrived in.
func (a *CanonicalAccumulator) Add(ctx context.Context, partial *domain.CanonicalSourceData) error {
	clean, rejected := a.sanitizer.Clean(partial)
	for _, r := range rejected {
		a.logger.Warn("record rejected by sanitizer",
			"section", r.Section, "name", r.Name, "reason", r.Reason)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.data.MergePartial(clean)
	a.rejected = append(a.rejected, rejected...)
	return ctx.Err()
}

// Snapshot returns a deep-enough copy of the accumulated document: slices
// are copied so later Adds cannot mutate what a caller holds.
func (a *CanonicalAccumulator) Snapshot() *domain.CanonicalSourceData {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := &domain.CanonicalSourceData{
		Resources: append([]domain.ResourceEntry(nil), a.data.Resources...),
		Equipment: append([]domain.EquipmentItem(nil), a.data.Equipment...),
		Nodes:     append([]domain.NodeItem(nil), a.data.Nodes...),
		Envelope:  append([]domain.EnvelopeItem(nil), a.data.Envelope...),
	}
	if len(a.data.Provenance) > 0 {
		snap.Provenance = make(map[string]domain.FieldProvenance, len(a.data.Provenance))
		for k, v := range a.data.Provenance {
			snap.Provenance[k] = v
		}
	}
	return snap
}

// Rejected returns the records the sanitizer refused so far.
func (a *CanonicalAccumulator) Rejected() []domain.RejectedRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.RejectedRecord(nil), a.rejected...)
}

// Flush persists the current snapshot under the batch's enterprise.
func (a *CanonicalAccumulator) Flush(ctx context.Context) error {
	if a.repo == nil {
		return nil
	}
	enterpriseID := ""
	if info, ok := domain.FromContext(ctx); ok {
		enterpriseID = info.EnterpriseID
	}
	return a.repo.Save(ctx, enterpriseID, a.Snapshot())
}
