package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestUpsertResourceMergesSameCarrier(t *testing.T) {
	c := &CanonicalSourceData{}
	c.UpsertResource(ResourceEntry{
		Resource: ResourceGas,
		Series:   TimeSeries{Quarterly: map[string]float64{"2023-Q1": 100}},
	})
	c.UpsertResource(ResourceEntry{
		Resource: ResourceGas,
		Name:     "Природный газ",
		Series:   TimeSeries{Quarterly: map[string]float64{"2023-Q2": 200}},
	})

	require.Len(t, c.Resources, 1, "same carrier merges, never duplicates")
	assert.Equal(t, "Природный газ", c.Resources[0].Name)

	total, ok := c.AnnualTotal(ResourceGas)
	require.True(t, ok)
	assert.Equal(t, 300.0, total)
}

func TestEquipmentWeight(t *testing.T) {
	item := EquipmentItem{Name: "Насос", NominalPowerKW: fptr(30)}
	assert.Equal(t, 30.0, item.Weight(), "missing utilization factor defaults to 1.0")

	item.UtilizationFactor = fptr(0.5)
	assert.Equal(t, 15.0, item.Weight())

	assert.Equal(t, 0.0, EquipmentItem{Name: "x"}.Weight(), "missing power weighs nothing")
	assert.Equal(t, 0.0, EquipmentItem{Name: "x", NominalPowerKW: fptr(-5)}.Weight())
}

func TestEquipmentUnits(t *testing.T) {
	assert.Equal(t, 1, EquipmentItem{}.Units())
	assert.Equal(t, 4, EquipmentItem{Quantity: 4}.Units())
}

func TestMergePartial(t *testing.T) {
	c := &CanonicalSourceData{}
	c.MergePartial(&CanonicalSourceData{
		Resources: []ResourceEntry{{Resource: ResourceElectricity, Series: TimeSeries{Annual: fptr(1000)}}},
		Equipment: []EquipmentItem{{Name: "Станок"}},
		Nodes:     []NodeItem{{NodeID: "Узел-1"}},
	})
	c.MergePartial(&CanonicalSourceData{
		Equipment:  []EquipmentItem{{Name: "Печь"}},
		Provenance: map[string]FieldProvenance{"equipment": {File: "оборудование.xlsx"}},
	})
	c.MergePartial(nil)

	assert.Len(t, c.Resources, 1)
	assert.Len(t, c.Equipment, 2)
	assert.Len(t, c.Nodes, 1)
	assert.Equal(t, "оборудование.xlsx", c.Provenance["equipment"].File)
}
