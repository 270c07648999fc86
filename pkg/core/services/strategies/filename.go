package strategies

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// FilenameStrategy matches the filename against an ordered substring
// table. Table order is the tie-break: the first rule whose pattern
// occurs in the name wins.
type FilenameStrategy struct {
	Table []domain.FilenameRule
}

func (s *FilenameStrategy) Name() string { return "filename" }

func (s *FilenameStrategy) Attempt(_ context.Context, in ports.TierInput) (ports.TierDecision, bool) {
	if in.Filename == "" {
		return ports.TierDecision{}, false
	}
	table := s.Table
	if table == nil {
		table = domain.DefaultFilenameTable()
	}

	name := strings.ToLower(in.Filename)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, rule := range table {
		for _, pattern := range rule.Patterns {
			if strings.Contains(stem, pattern) || strings.Contains(name, pattern) {
				return ports.TierDecision{Resource: rule.Resource, Confidence: FilenameConfidence}, true
			}
		}
	}
	return ports.TierDecision{}, false
}
