package ports

import (
	"context"

	"github.com/eaip/passport-core/pkg/core/domain"
)

// AggregateRepository is the persistence collaborator for period
// aggregates. The uniqueness invariant, one row per
// (enterprise, resource, period), is enforced at this layer with a unique
// constraint on the triple; Upsert replaces, it never duplicates.
type AggregateRepository interface {
	UpsertAggregate(ctx context.Context, enterpriseID string, resource domain.ResourceType, period string, bucket domain.QuarterBucket) error
}

// CanonicalRepository optionally persists the assembled canonical document.
// The core only builds and reads CanonicalSourceData; durability belongs to
// the service boundary.
type CanonicalRepository interface {
	Save(ctx context.Context, enterpriseID string, canonical *domain.CanonicalSourceData) error
	Load(ctx context.Context, enterpriseID string) (*domain.CanonicalSourceData, error)
}
