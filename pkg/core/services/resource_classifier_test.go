package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
	"github.com/eaip/passport-core/pkg/core/services/strategies"
)

type stubOracle struct {
	resource   domain.ResourceType
	confidence float64
	err        error
}

func (o *stubOracle) Classify(context.Context, ports.ParsedFile) (domain.ResourceType, float64, error) {
	return o.resource, o.confidence, o.err
}

func contentFile(cells ...string) *ports.ParsedFile {
	row := make([]any, 0, len(cells))
	for _, c := range cells {
		row = append(row, c)
	}
	return &ports.ParsedFile{
		Filename: "upload.xlsx",
		Sheets:   []ports.ParsedSheet{{Name: "Лист1", Rows: [][]any{row}}},
	}
}

func TestFilenameTierGazXlsx(t *testing.T) {
	c := NewTieredClassifier()
	decision := c.ClassifyWithConfidence(context.Background(), ports.TierInput{Filename: "gaz.xlsx"})

	assert.Equal(t, domain.ResourceGas, decision.Resource)
	assert.Equal(t, strategies.FilenameConfidence, decision.Confidence)
}

func TestFallbackTierUnknownFile(t *testing.T) {
	c := NewTieredClassifier()
	decision := c.ClassifyWithConfidence(context.Background(), ports.TierInput{Filename: "zzz_unknown.bin"})

	assert.Equal(t, domain.ResourceOther, decision.Resource)
	assert.Equal(t, strategies.FallbackConfidence, decision.Confidence)
}

func TestContentTierBeatsFilename(t *testing.T) {
	c := NewTieredClassifier()
	in := ports.TierInput{
		Filename: "gaz.xlsx",
		Content:  contentFile("Потребление", "вода", "гвс"),
	}
	decision := c.ClassifyWithConfidence(context.Background(), in)

	assert.Equal(t, domain.ResourceWater, decision.Resource)
	assert.Equal(t, strategies.ContentConfidence, decision.Confidence)
}

func TestHintAcceptedWithoutContent(t *testing.T) {
	c := NewTieredClassifier()
	resource := c.Classify(context.Background(), ports.TierInput{
		Filename: "upload.xlsx",
		Hint:     domain.ResourceCoal,
	})
	assert.Equal(t, domain.ResourceCoal, resource)
}

func TestHintOverriddenByContent(t *testing.T) {
	c := NewTieredClassifier()
	in := ports.TierInput{
		Filename: "upload.xlsx",
		Hint:     domain.ResourceGas,
		Content:  contentFile("узлы учета", "счетчик"),
	}
	decision := c.ClassifyWithConfidence(context.Background(), in)

	assert.Equal(t, domain.ResourceNodes, decision.Resource, "content contradicting the hint wins")
	assert.Equal(t, strategies.ContentConfidence, decision.Confidence)
}

func TestOracleThresholds(t *testing.T) {
	// Content the built-in keyword scan cannot place, so the oracle tier
	// actually runs.
	opaque := contentFile("columnA", "columnB")

	cases := []struct {
		name       string
		oracle     *stubOracle
		want       domain.ResourceType
		low        bool
		confidence float64
	}{
		{
			name:       "high confidence accepted",
			oracle:     &stubOracle{resource: domain.ResourceFuel, confidence: 0.85},
			want:       domain.ResourceFuel,
			confidence: 0.85,
		},
		{
			name:       "band accept flagged low confidence",
			oracle:     &stubOracle{resource: domain.ResourceFuel, confidence: 0.6},
			want:       domain.ResourceFuel,
			low:        true,
			confidence: 0.6,
		},
		{
			name:       "below band ignored",
			oracle:     &stubOracle{resource: domain.ResourceFuel, confidence: 0.4},
			want:       domain.ResourceOther,
			confidence: strategies.FallbackConfidence,
		},
		{
			name:       "oracle error swallowed",
			oracle:     &stubOracle{err: errors.New("upstream timeout")},
			want:       domain.ResourceOther,
			confidence: strategies.FallbackConfidence,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewTieredClassifier(WithOracle(tc.oracle))
			decision := c.ClassifyWithConfidence(context.Background(), ports.TierInput{
				Filename: "zzz_opaque.xlsx",
				Content:  opaque,
			})
			assert.Equal(t, tc.want, decision.Resource)
			assert.Equal(t, tc.low, decision.LowConfidence)
			assert.InDelta(t, tc.confidence, decision.Confidence, 1e-9)
		})
	}
}

func TestCustomContentRules(t *testing.T) {
	rules := func(file ports.ParsedFile) (domain.ResourceType, bool) {
		return domain.ResourceHeat, true
	}
	c := NewTieredClassifier(WithContentRules(rules))
	decision := c.ClassifyWithConfidence(context.Background(), ports.TierInput{
		Filename: "gaz.xlsx",
		Content:  contentFile("whatever"),
	})
	require.Equal(t, domain.ResourceHeat, decision.Resource)
	assert.Equal(t, strategies.ContentConfidence, decision.Confidence)
}
