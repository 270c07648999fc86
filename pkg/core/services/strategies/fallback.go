package strategies

import (
	"context"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// FallbackStrategy is the terminal tier. It always decides, so every file
// leaves the classifier with a tag; unplaceable files are parked under
// ResourceOther for later manual triage instead of failing the batch.
type FallbackStrategy struct{}

func (FallbackStrategy) Name() string { return "fallback" }

func (FallbackStrategy) Attempt(_ context.Context, _ ports.TierInput) (ports.TierDecision, bool) {
	return ports.TierDecision{Resource: domain.ResourceOther, Confidence: FallbackConfidence}, true
}
