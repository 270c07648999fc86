package ingest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaip/passport-core/pkg/core/domain"
)

func TestCsvReaderCommaSeparated(t *testing.T) {
	r := &CsvFileReader{}
	file, err := r.Read("gaz.csv", strings.NewReader("январь,1200\nфевраль,1100\n,\n"))
	require.NoError(t, err)

	require.Len(t, file.Sheets, 1)
	assert.Equal(t, "gaz", file.Sheets[0].Name)
	require.Len(t, file.Sheets[0].Rows, 2, "empty rows dropped")
	assert.Equal(t, "январь", file.Sheets[0].Rows[0][0])
}

func TestCsvReaderSemicolonFallback(t *testing.T) {
	r := &CsvFileReader{}
	file, err := r.Read("вода.csv", strings.NewReader("январь;\"1 200,5\"\nфевраль;900\n"))
	require.NoError(t, err)
	require.Len(t, file.Sheets[0].Rows, 2)
	assert.Equal(t, "1 200,5", file.Sheets[0].Rows[0][1])
}

func TestJsonIngestorSingleDocument(t *testing.T) {
	var collected []*domain.CanonicalSourceData
	j := NewJsonInventoryIngestor(func(_ context.Context, p *domain.CanonicalSourceData) error {
		collected = append(collected, p)
		return nil
	})

	payload := `{
		"equipment": [
			{"name": "Насос", "nominal_power_kw": 7.5, "quantity": 2},
			{"name": "", "nominal_power_kw": 1}
		],
		"nodes": [{"node_id": "Узел-1", "location": "ТП-1"}],
		"envelope": [{"element": "Стена", "area_m2": 320}]
	}`
	result, err := j.IngestStream(context.Background(), strings.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Success)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "equipment[1]")

	require.Len(t, collected, 1)
	partial := collected[0]
	require.Len(t, partial.Equipment, 1)
	assert.Equal(t, 7.5, *partial.Equipment[0].NominalPowerKW)
	assert.Len(t, partial.Nodes, 1)
	assert.Len(t, partial.Envelope, 1)
}

func TestJsonIngestorArray(t *testing.T) {
	var count int
	j := NewJsonInventoryIngestor(func(context.Context, *domain.CanonicalSourceData) error {
		count++
		return nil
	})

	payload := `[
		{"equipment": [{"name": "Печь"}]},
		{"nodes": [{"node_id": "Узел-2"}]}
	]`
	result, err := j.IngestStream(context.Background(), strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 2, count, "one downstream call per document")
}

func TestJsonIngestorEmptyStream(t *testing.T) {
	j := NewJsonInventoryIngestor(nil)
	result, err := j.IngestStream(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, result.Total)
}

func TestJsonIngestorRejectsScalar(t *testing.T) {
	j := NewJsonInventoryIngestor(nil)
	_, err := j.IngestStream(context.Background(), strings.NewReader("42"))
	assert.Error(t, err)
}
