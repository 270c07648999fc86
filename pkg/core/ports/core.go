package ports

import (
	"context"

	"github.com/eaip/passport-core/pkg/core/domain"
)

// Aggregator folds parsed rows into period-normalized totals per resource.
// A nil BatchAggregate means the batch carried no resource data (every file
// was tagged nodes/equipment/envelope/other); callers must store nothing in
// that case.
type Aggregator interface {
	AggregateFile(file ParsedFile) (*domain.ResourceAggregate, error)
	AggregateBatch(ctx context.Context, files []ParsedFile) (*domain.BatchAggregate, error)
	Upsert(ctx context.Context, batch *domain.BatchAggregate) error
}

// ReportTransformer converts the canonical model into the nested report
// payload. Pure, no I/O.
type ReportTransformer interface {
	Transform(canonical *domain.CanonicalSourceData) domain.ReportPayload
}

// ReadinessEvaluator scores canonical completeness against the template
// requirements. A fresh verdict per call; never mutates its input.
type ReadinessEvaluator interface {
	Evaluate(canonical *domain.CanonicalSourceData) domain.GenerationReadiness
}
