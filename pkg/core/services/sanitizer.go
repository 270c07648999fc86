package services

import (
	"strings"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
	"github.com/eaip/passport-core/pkg/core/services/rules"
)

// ChainSanitizer cleans canonical partials with a rule chain over
// equipment items plus built-in hygiene: whitespace trimming, nameless
// equipment rejection, node dedupe by identifier.
type ChainSanitizer struct {
	rules []ports.ItemRule
}

// NewSanitizer creates a sanitizer with the given item rules. Rules run
// in order and each receives the previous rule's possibly corrected item.
func NewSanitizer(itemRules ...ports.ItemRule) ports.Sanitizer {
	return &ChainSanitizer{rules: itemRules}
}

// DefaultSanitizer carries the stock rule set: negative power rejects,
// an out-of-range utilization factor clamps into [0, 1].
func DefaultSanitizer() ports.Sanitizer {
	return NewSanitizer(
		&rules.RangeRule{
			Field:  rules.FieldNominalPowerKW,
			Min:    0,
			Max:    1e6,
			Action: domain.ActionReject,
		},
		&rules.RangeRule{
			Field:  rules.FieldUtilizationFactor,
			Min:    0,
			Max:    1,
			Action: domain.ActionCorrect,
		},
	)
}

// Clean returns a cleaned copy of the partial and the rejected records.
// The input is never mutated.
func (s *ChainSanitizer) Clean(partial *domain.CanonicalSourceData) (*domain.CanonicalSourceData, []domain.RejectedRecord) {
	if partial == nil {
		return &domain.CanonicalSourceData{}, nil
	}

	clean := &domain.CanonicalSourceData{
		Resources:  partial.Resources,
		Envelope:   partial.Envelope,
		Provenance: partial.Provenance,
	}
	var rejected []domain.RejectedRecord

	for _, item := range partial.Equipment {
		item = trimEquipment(item)
		if item.Name == "" {
			rejected = append(rejected, domain.RejectedRecord{
				Section: "equipment",
				Reason:  "empty name",
			})
			continue
		}

		passed := true
		reason := ""
		for _, rule := range s.rules {
			result := rule.Check(item)
			if !result.Passed {
				passed = false
				reason = result.Reason
				break
			}
			item = result.Item
		}
		if !passed {
			rejected = append(rejected, domain.RejectedRecord{
				Section: "equipment",
				Name:    item.Name,
				Reason:  reason,
			})
			continue
		}
		clean.Equipment = append(clean.Equipment, item)
	}

	seen := make(map[string]bool)
	for _, node := range partial.Nodes {
		node = trimNode(node)
		key := node.NodeID
		if key != "" && seen[key] {
			rejected = append(rejected, domain.RejectedRecord{
				Section: "nodes",
				Name:    node.NodeID,
				Reason:  "duplicate node_id",
			})
			continue
		}
		if key != "" {
			seen[key] = true
		}
		clean.Nodes = append(clean.Nodes, node)
	}

	return clean, rejected
}

func trimEquipment(item domain.EquipmentItem) domain.EquipmentItem {
	item.Name = strings.TrimSpace(item.Name)
	item.Type = strings.TrimSpace(item.Type)
	item.Model = strings.TrimSpace(item.Model)
	item.Location = strings.TrimSpace(item.Location)
	item.Notes = strings.TrimSpace(item.Notes)
	return item
}

func trimNode(node domain.NodeItem) domain.NodeItem {
	node.NodeID = strings.TrimSpace(node.NodeID)
	node.Resource = strings.TrimSpace(node.Resource)
	node.Location = strings.TrimSpace(node.Location)
	node.MeterType = strings.TrimSpace(node.MeterType)
	node.Notes = strings.TrimSpace(node.Notes)
	return node
}
