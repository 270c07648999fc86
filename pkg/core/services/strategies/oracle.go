package strategies

import (
	"context"
	"log/slog"

	"github.com/eaip/passport-core/pkg/core/ports"
)

// Oracle acceptance band. Answers below OracleMinConfidence are discarded;
// answers in [OracleMinConfidence, OracleAcceptConfidence) are accepted but
// flagged so downstream consumers can demand operator review.
const (
	OracleAcceptConfidence = 0.7
	OracleMinConfidence    = 0.5
)

// OracleStrategy consults an external classifier for files the
// deterministic tiers could not place. A nil oracle disables the tier.
type OracleStrategy struct {
	Oracle ports.AIOracle
	Logger *slog.Logger
}

func (s *OracleStrategy) Name() string { return "oracle" }

// Attempt abstains on any oracle failure. The oracle is an optional
// enrichment and a transport error must not block classification, so
// errors are logged and the filename tier gets its turn.
func (s *OracleStrategy) Attempt(ctx context.Context, in ports.TierInput) (ports.TierDecision, bool) {
	if s.Oracle == nil || in.Content == nil {
		return ports.TierDecision{}, false
	}
	resource, confidence, err := s.Oracle.Classify(ctx, *in.Content)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("oracle classification failed", "filename", in.Filename, "error", err)
		}
		return ports.TierDecision{}, false
	}
	if !resource.Valid() || confidence < OracleMinConfidence {
		return ports.TierDecision{}, false
	}
	return ports.TierDecision{
		Resource:      resource,
		Confidence:    confidence,
		LowConfidence: confidence < OracleAcceptConfidence,
	}, true
}
