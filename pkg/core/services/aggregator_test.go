package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

type fakeAggregateRepo struct {
	mu      sync.Mutex
	records map[string]domain.QuarterBucket
}

func newFakeAggregateRepo() *fakeAggregateRepo {
	return &fakeAggregateRepo{records: make(map[string]domain.QuarterBucket)}
}

func (r *fakeAggregateRepo) UpsertAggregate(_ context.Context, enterpriseID string, resource domain.ResourceType, period string, bucket domain.QuarterBucket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[enterpriseID+"/"+string(resource)+"/"+period] = bucket
	return nil
}

func monthlyGasFile() ports.ParsedFile {
	return ports.ParsedFile{
		Filename: "gaz.xlsx",
		Resource: domain.ResourceGas,
		Sheets: []ports.ParsedSheet{{
			Name: "Расход газа",
			Rows: [][]any{
				{2023},
				{"январь", "1 200,5"},
				{"февраль", "1 100"},
				{"март", 900.0},
				{"апрель", "800"},
			},
		}},
	}
}

func TestAggregateFileMonthlyLayout(t *testing.T) {
	a := NewBatchAggregator()
	agg, err := a.AggregateFile(monthlyGasFile())
	require.NoError(t, err)
	require.NotNil(t, agg)

	q1 := agg.Quarters["2023-Q1"]
	assert.Equal(t, 2023, q1.Year)
	assert.Equal(t, 1, q1.Quarter)
	assert.InDelta(t, 3200.5, q1.Total, 1e-9)
	assert.InDelta(t, 1200.5, q1.Months["01"], 1e-9)

	q2 := agg.Quarters["2023-Q2"]
	assert.InDelta(t, 800, q2.Total, 1e-9)
	assert.InDelta(t, 4000.5, agg.Annual, 1e-9)
}

func TestAggregateFileQuarterLabels(t *testing.T) {
	a := NewBatchAggregator()
	file := ports.ParsedFile{
		Filename: "электроэнергия.xlsx",
		Resource: domain.ResourceElectricity,
		Sheets: []ports.ParsedSheet{{
			Name: "Потребление",
			Rows: [][]any{
				{2022},
				{"Q1", "10 000"},
				{"2 квартал", "12 000"},
				{"Итого за год", "22 000"},
			},
		}},
	}
	agg, err := a.AggregateFile(file)
	require.NoError(t, err)
	require.NotNil(t, agg)

	assert.InDelta(t, 10000, agg.Quarters["2022-Q1"].Total, 1e-9)
	assert.InDelta(t, 12000, agg.Quarters["2022-Q2"].Total, 1e-9)
	assert.InDelta(t, 22000, agg.Annual, 1e-9, "explicit annual row wins")
}

func TestAggregateFileYearMarkerWithTrailingCells(t *testing.T) {
	a := NewBatchAggregator()
	// CSV exports keep trailing empty cells, so a year header row arrives
	// as ["2023", "", ""] rather than a single cell.
	file := ports.ParsedFile{
		Filename: "gaz.csv",
		Resource: domain.ResourceGas,
		Sheets: []ports.ParsedSheet{{
			Name: "gaz",
			Rows: [][]any{
				{"2023", "", ""},
				{"январь", "1 200,5", ""},
			},
		}},
	}
	agg, err := a.AggregateFile(file)
	require.NoError(t, err)
	require.NotNil(t, agg)

	require.Contains(t, agg.Quarters, "2023-Q1", "the year marker wins over StartYear")
	assert.NotContains(t, agg.Quarters, "2022-Q1")
	assert.InDelta(t, 1200.5, agg.Quarters["2023-Q1"].Months["01"], 1e-9)
}

func TestAggregateFileExplicitZeroAnnualKept(t *testing.T) {
	a := NewBatchAggregator()
	file := ports.ParsedFile{
		Filename: "мазут.xlsx",
		Resource: domain.ResourceFuel,
		Sheets: []ports.ParsedSheet{{
			Name: "Мазут",
			Rows: [][]any{
				{2023},
				{"Q1", 500.0},
				{"Итого за год", 0.0},
			},
		}},
	}
	agg, err := a.AggregateFile(file)
	require.NoError(t, err)
	require.NotNil(t, agg)

	assert.Zero(t, agg.Annual, "a stated zero annual is kept, not overwritten by the quarter sum")
	assert.InDelta(t, 500, agg.Quarters["2023-Q1"].Total, 1e-9)
}

func TestAggregateFileYearRollover(t *testing.T) {
	a := NewBatchAggregator(WithAggregatorConfig(AggregatorConfig{StartYear: 2022}))
	file := ports.ParsedFile{
		Filename: "вода.xlsx",
		Resource: domain.ResourceWater,
		Sheets: []ports.ParsedSheet{{
			Name: "Вода",
			Rows: [][]any{
				{"ноябрь", 10.0},
				{"декабрь", 20.0},
				{"январь", 30.0},
			},
		}},
	}
	agg, err := a.AggregateFile(file)
	require.NoError(t, err)
	require.NotNil(t, agg)

	assert.Contains(t, agg.Quarters, "2022-Q4")
	assert.Contains(t, agg.Quarters, "2023-Q1", "wrapped month advances the year")
}

func TestAggregateFileSkipsNonResource(t *testing.T) {
	a := NewBatchAggregator()
	for _, resource := range []domain.ResourceType{
		domain.ResourceEquipment, domain.ResourceNodes, domain.ResourceEnvelope, domain.ResourceOther,
	} {
		agg, err := a.AggregateFile(ports.ParsedFile{Filename: "x.xlsx", Resource: resource})
		assert.NoError(t, err)
		assert.Nil(t, agg)
	}
}

func TestAggregateFileIdempotentDuplicates(t *testing.T) {
	a := NewBatchAggregator()
	file := monthlyGasFile()
	file.Sheets[0].Rows = append(file.Sheets[0].Rows, []any{}) // blank row
	// Same month, same value: a plain re-read, not a conflict. The repeat
	// resets lastMonth tracking via a fresh sheet to avoid rollover.
	file.Sheets = append(file.Sheets, ports.ParsedSheet{
		Name: "Копия",
		Rows: [][]any{{2023}, {"январь", "1 200,5"}},
	})

	agg, err := a.AggregateFile(file)
	require.NoError(t, err)
	assert.InDelta(t, 1200.5, agg.Quarters["2023-Q1"].Months["01"], 1e-9)
	assert.InDelta(t, 4000.5, agg.Annual, 1e-9)
}

func TestAggregateFileConflictingDuplicateRejected(t *testing.T) {
	a := NewBatchAggregator()
	file := ports.ParsedFile{
		Filename: "gaz.xlsx",
		Resource: domain.ResourceGas,
		Sheets: []ports.ParsedSheet{{
			Name: "Лист1",
			Rows: [][]any{
				{2023},
				{"январь", 100.0},
			},
		}, {
			Name: "Лист2",
			Rows: [][]any{
				{2023},
				{"январь", 200.0},
			},
		}},
	}
	_, err := a.AggregateFile(file)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAggregateFileNegativeValueRejected(t *testing.T) {
	a := NewBatchAggregator()
	file := ports.ParsedFile{
		Filename: "gaz.xlsx",
		Resource: domain.ResourceGas,
		Sheets: []ports.ParsedSheet{{
			Name: "Лист1",
			Rows: [][]any{{2023}, {"январь", -5.0}},
		}},
	}
	_, err := a.AggregateFile(file)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAggregateBatchIsolatesBadFiles(t *testing.T) {
	a := NewBatchAggregator()
	bad := ports.ParsedFile{
		Filename: "broken.xlsx",
		Resource: domain.ResourceWater,
		Sheets: []ports.ParsedSheet{{
			Name: "Лист1",
			Rows: [][]any{{2023}, {"январь", -1.0}},
		}},
	}

	ctx := domain.NewContext(context.Background(), domain.NewBatchInfo("ent-1"))
	batch, err := a.AggregateBatch(ctx, []ports.ParsedFile{monthlyGasFile(), bad})

	require.NotNil(t, batch, "good files still aggregate")
	assert.Error(t, err, "the bad file's validation error is reported")
	assert.Equal(t, "ent-1", batch.EnterpriseID)
	assert.Contains(t, batch.Resources, domain.ResourceGas)
	assert.NotContains(t, batch.Resources, domain.ResourceWater)
}

func TestAggregateBatchMergesSameResource(t *testing.T) {
	a := NewBatchAggregator()
	second := ports.ParsedFile{
		Filename: "gaz_2.xlsx",
		Resource: domain.ResourceGas,
		Sheets: []ports.ParsedSheet{{
			Name: "Лист1",
			Rows: [][]any{{2023}, {"июль", 500.0}},
		}},
	}

	batch, err := a.AggregateBatch(context.Background(), []ports.ParsedFile{monthlyGasFile(), second})
	require.NoError(t, err)
	require.NotNil(t, batch)

	gas := batch.Resources[domain.ResourceGas]
	assert.Contains(t, gas.Quarters, "2023-Q1")
	assert.Contains(t, gas.Quarters, "2023-Q3")
	assert.InDelta(t, 4500.5, gas.Annual, 1e-9)
}

func TestAggregateBatchEmptyReturnsNil(t *testing.T) {
	a := NewBatchAggregator()
	batch, err := a.AggregateBatch(context.Background(), []ports.ParsedFile{
		{Filename: "оборудование.xlsx", Resource: domain.ResourceEquipment},
	})
	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestUpsertWritesEveryPeriod(t *testing.T) {
	repo := newFakeAggregateRepo()
	a := NewBatchAggregator(WithAggregateRepository(repo))

	ctx := domain.NewContext(context.Background(), domain.NewBatchInfo("ent-7"))
	batch, err := a.AggregateBatch(ctx, []ports.ParsedFile{monthlyGasFile()})
	require.NoError(t, err)
	require.NoError(t, a.Upsert(ctx, batch))

	assert.Len(t, repo.records, 2)
	assert.Contains(t, repo.records, "ent-7/gas/2023-Q1")
	assert.Contains(t, repo.records, "ent-7/gas/2023-Q2")

	// Re-running the same batch replaces rows instead of duplicating them.
	require.NoError(t, a.Upsert(ctx, batch))
	assert.Len(t, repo.records, 2)
}

func TestUpsertWithoutRepositoryFails(t *testing.T) {
	a := NewBatchAggregator()
	err := a.Upsert(context.Background(), &domain.BatchAggregate{})
	assert.Error(t, err)
}
