// Package strategies holds the ordered classification tiers run by the
// resource classifier. Each strategy attempts a classification and either
// decides or abstains; tier priority is the order of the slice they are
// assembled into, not control flow inside any of them.
package strategies

import (
	"context"
	"strings"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// Confidence levels fixed per tier. Content rules are near-certain,
// filename matching is a heuristic, the terminal default barely qualifies.
const (
	ContentConfidence  = 0.9
	FilenameConfidence = 0.7
	FallbackConfidence = 0.3
)

// ContentStrategy classifies from parsed content. The injected rule func is
// the deterministic structural matcher (an external collaborator); when
// none is injected, a built-in keyword scan over sheet names and header
// cells stands in.
type ContentStrategy struct {
	Rules    ports.ContentRuleFunc
	Keywords map[domain.ResourceType][]string
}

func (s *ContentStrategy) Name() string { return "content" }

// Attempt abstains without parsed content; otherwise a decisive rule match
// answers at the fixed content confidence.
func (s *ContentStrategy) Attempt(_ context.Context, in ports.TierInput) (ports.TierDecision, bool) {
	tag, ok := s.classify(in)
	if !ok {
		return ports.TierDecision{}, false
	}
	return ports.TierDecision{Resource: tag, Confidence: ContentConfidence}, true
}

func (s *ContentStrategy) classify(in ports.TierInput) (domain.ResourceType, bool) {
	if in.Content == nil {
		return "", false
	}
	if s.Rules != nil {
		return s.Rules(*in.Content)
	}
	return s.keywordScan(*in.Content)
}

// keywordScan checks sheet names first (strongest signal), then the first
// few rows of each sheet, against the per-resource keyword lists.
func (s *ContentStrategy) keywordScan(file ports.ParsedFile) (domain.ResourceType, bool) {
	keywords := s.Keywords
	if keywords == nil {
		keywords = domain.DefaultContentKeywords()
	}

	var sheetNames, headerCells []string
	for _, sheet := range file.Sheets {
		sheetNames = append(sheetNames, strings.ToLower(sheet.Name))
		for i, row := range sheet.Rows {
			if i >= 3 {
				break
			}
			for _, cell := range row {
				if str, ok := cell.(string); ok {
					headerCells = append(headerCells, strings.ToLower(str))
				}
			}
		}
	}

	match := func(texts []string) (domain.ResourceType, bool) {
		for _, resource := range scanOrder() {
			for _, kw := range keywords[resource] {
				for _, text := range texts {
					if strings.Contains(text, kw) {
						return resource, true
					}
				}
			}
		}
		return "", false
	}

	if tag, ok := match(sheetNames); ok {
		return tag, true
	}
	return match(headerCells)
}

// scanOrder fixes the resource order for keyword scanning. Non-resource
// categories go first: a nodes or envelope sheet usually also mentions a
// carrier, and misreading it as consumption data is the worse failure.
func scanOrder() []domain.ResourceType {
	return []domain.ResourceType{
		domain.ResourceNodes,
		domain.ResourceEnvelope,
		domain.ResourceEquipment,
		domain.ResourceElectricity,
		domain.ResourceGas,
		domain.ResourceWater,
		domain.ResourceFuel,
		domain.ResourceCoal,
		domain.ResourceHeat,
	}
}
