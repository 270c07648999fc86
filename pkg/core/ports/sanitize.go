package ports

import "github.com/eaip/passport-core/pkg/core/domain"

// ItemCheckResult is one rule's verdict on an equipment item. A rule may
// pass the item through corrected, so rules compose as a pipeline.
type ItemCheckResult struct {
	Item      domain.EquipmentItem
	Passed    bool
	Corrected bool
	Reason    string
}

// ItemRule checks one equipment item, optionally correcting it.
type ItemRule interface {
	Check(item domain.EquipmentItem) ItemCheckResult
}

// Sanitizer cleans a canonical partial before it is merged into the
// accumulator. Rejected records are reported, never silently dropped.
type Sanitizer interface {
	Clean(partial *domain.CanonicalSourceData) (*domain.CanonicalSourceData, []domain.RejectedRecord)
}
