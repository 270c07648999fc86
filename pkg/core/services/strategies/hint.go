package strategies

import (
	"context"
	"log/slog"

	"github.com/eaip/passport-core/pkg/core/ports"
)

// HintStrategy validates a caller-supplied hint against parsed content.
// It never invents a classification: with no hint it abstains so the
// classifier falls through to the autonomous tiers.
type HintStrategy struct {
	Content *ContentStrategy
	Logger  *slog.Logger
}

func (s *HintStrategy) Name() string { return "hint" }

// Attempt accepts a valid hint at full confidence. When content decisively
// contradicts the hint, content wins at its own tier confidence; the
// conflict is logged, not surfaced as an error, because a mislabeled
// upload is an operator slip rather than corrupt data.
func (s *HintStrategy) Attempt(_ context.Context, in ports.TierInput) (ports.TierDecision, bool) {
	if in.Hint == "" || !in.Hint.Valid() {
		return ports.TierDecision{}, false
	}
	if s.Content != nil {
		if detected, ok := s.Content.classify(in); ok && detected != in.Hint {
			if s.Logger != nil {
				s.Logger.Warn("hint contradicts content, content wins",
					"filename", in.Filename,
					"hint", in.Hint,
					"detected", detected)
			}
			return ports.TierDecision{Resource: detected, Confidence: ContentConfidence}, true
		}
	}
	return ports.TierDecision{Resource: in.Hint, Confidence: 1.0}, true
}
