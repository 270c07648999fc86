package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaip/passport-core/pkg/core/domain"
)

func TestSanitizerRejectsNamelessAndNegative(t *testing.T) {
	s := DefaultSanitizer()
	clean, rejected := s.Clean(&domain.CanonicalSourceData{
		Equipment: []domain.EquipmentItem{
			{Name: "  Насос  ", NominalPowerKW: fptr(7.5)},
			{Name: "   "},
			{Name: "Сломанный", NominalPowerKW: fptr(-10)},
		},
	})

	require.Len(t, clean.Equipment, 1)
	assert.Equal(t, "Насос", clean.Equipment[0].Name, "whitespace trimmed")
	require.Len(t, rejected, 2)
	assert.Equal(t, "equipment", rejected[0].Section)
}

func TestSanitizerClampsUtilizationFactor(t *testing.T) {
	s := DefaultSanitizer()
	clean, rejected := s.Clean(&domain.CanonicalSourceData{
		Equipment: []domain.EquipmentItem{
			{Name: "Печь", NominalPowerKW: fptr(100), UtilizationFactor: fptr(1.4)},
		},
	})

	assert.Empty(t, rejected, "out-of-range utilization corrects, not rejects")
	require.Len(t, clean.Equipment, 1)
	assert.Equal(t, 1.0, *clean.Equipment[0].UtilizationFactor)
}

func TestSanitizerDedupesNodes(t *testing.T) {
	s := DefaultSanitizer()
	clean, rejected := s.Clean(&domain.CanonicalSourceData{
		Nodes: []domain.NodeItem{
			{NodeID: "Узел-1", Location: "ТП-1"},
			{NodeID: "Узел-1", Location: "ТП-2"},
			{Location: "Без идентификатора"},
		},
	})

	assert.Len(t, clean.Nodes, 2, "anonymous nodes are kept, duplicate ids are not")
	require.Len(t, rejected, 1)
	assert.Equal(t, "nodes", rejected[0].Section)
	assert.Equal(t, "duplicate node_id", rejected[0].Reason)
}

func TestAccumulatorMergesAndSnapshots(t *testing.T) {
	a := NewCanonicalAccumulator()
	ctx := context.Background()

	require.NoError(t, a.Add(ctx, &domain.CanonicalSourceData{
		Equipment: []domain.EquipmentItem{{Name: "Насос", NominalPowerKW: fptr(7.5)}},
	}))
	require.NoError(t, a.Add(ctx, &domain.CanonicalSourceData{
		Nodes:     []domain.NodeItem{{NodeID: "Узел-1"}},
		Equipment: []domain.EquipmentItem{{Name: "  "}},
	}))

	snap := a.Snapshot()
	assert.Len(t, snap.Equipment, 1)
	assert.Len(t, snap.Nodes, 1)
	assert.Len(t, a.Rejected(), 1)

	// Mutating the snapshot must not leak back into the accumulator.
	snap.Equipment[0].Name = "изменено"
	assert.Equal(t, "Насос", a.Snapshot().Equipment[0].Name)
}
