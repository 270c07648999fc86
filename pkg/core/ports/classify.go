package ports

import (
	"context"

	"github.com/eaip/passport-core/pkg/core/domain"
)

// ParsedSheet is one sheet of a parsed workbook as the external parser
// hands it over. Cells keep their parsed types (string, int, float64, nil);
// the core never touches raw file bytes.
type ParsedSheet struct {
	Name string
	Rows [][]any
}

// ParsedFile is the unit of classified, parsed input. Resource is filled in
// by the resource classifier before the file reaches the aggregator.
type ParsedFile struct {
	Filename string
	Resource domain.ResourceType
	Sheets   []ParsedSheet
}

// ContentRuleFunc is the deterministic content signature matcher, an
// external collaborator. It returns the resource tag it recognized, or
// false to abstain.
type ContentRuleFunc func(file ParsedFile) (domain.ResourceType, bool)

// AIOracle is the optional low-confidence tiebreak collaborator. Any error
// it returns is caught at the call site and treated as "inconclusive"; the
// same goes for a caller-level timeout on ctx.
type AIOracle interface {
	Classify(ctx context.Context, file ParsedFile) (domain.ResourceType, float64, error)
}

// TierInput is what one classification tier sees. Content is nil when the
// file has not been parsed yet; Hint is empty when the caller supplied none.
type TierInput struct {
	Filename string
	Content  *ParsedFile
	Hint     domain.ResourceType
}

// TierDecision is a tier's answer. LowConfidence flags an oracle accept in
// the [0.5, 0.7) band; the return contract is otherwise identical.
type TierDecision struct {
	Resource      domain.ResourceType
	Confidence    float64
	LowConfidence bool
}

// TierStrategy is one ordered classification tier: attempt, or abstain by
// returning false. The classifier runs the tier list until one decides.
// Tier priority is data (the slice order), not control flow.
type TierStrategy interface {
	Name() string
	Attempt(ctx context.Context, in TierInput) (TierDecision, bool)
}

// ResourceClassifier decides what kind of data a file carries. It never
// fails: "other" is always a valid, safe terminal answer.
type ResourceClassifier interface {
	Classify(ctx context.Context, in TierInput) domain.ResourceType
	ClassifyWithConfidence(ctx context.Context, in TierInput) TierDecision
}

// UsageClassifier assigns one equipment item to a usage category. It never
// fails; production is the default absent stronger evidence.
type UsageClassifier interface {
	Classify(item domain.EquipmentItem, nodes []domain.NodeItem) domain.UsageCategory
}
