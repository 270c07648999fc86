package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// AggregatorConfig tunes batch aggregation.
type AggregatorConfig struct {
	// Workers bounds concurrent per-file aggregation.
	Workers int
	// MinYear and MaxYear frame the accepted year-marker window.
	MinYear int
	MaxYear int
	// StartYear anchors month-number layouts that never state a year.
	StartYear int
	// MonthAliases maps localized month names to month numbers.
	MonthAliases map[string]int
}

// DefaultAggregatorConfig returns the stock configuration.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		Workers:   4,
		MinYear:   2000,
		MaxYear:   2100,
		StartYear: 2022,
	}
}

// BatchAggregator folds classified consumption files into quarter buckets
// and annual rollups per resource.
type BatchAggregator struct {
	cfg    AggregatorConfig
	repo   ports.AggregateRepository
	logger *slog.Logger
}

// AggregatorOption configures the batch aggregator.
type AggregatorOption func(*BatchAggregator)

// WithAggregateRepository sets the persistence dependency used by Upsert.
func WithAggregateRepository(repo ports.AggregateRepository) AggregatorOption {
	return func(a *BatchAggregator) {
		a.repo = repo
	}
}

// WithAggregatorConfig replaces the stock configuration.
func WithAggregatorConfig(cfg AggregatorConfig) AggregatorOption {
	return func(a *BatchAggregator) {
		if cfg.Workers > 0 {
			a.cfg.Workers = cfg.Workers
		}
		if cfg.MinYear > 0 {
			a.cfg.MinYear = cfg.MinYear
		}
		if cfg.MaxYear > 0 {
			a.cfg.MaxYear = cfg.MaxYear
		}
		if cfg.StartYear > 0 {
			a.cfg.StartYear = cfg.StartYear
		}
		if cfg.MonthAliases != nil {
			a.cfg.MonthAliases = cfg.MonthAliases
		}
	}
}

// WithAggregatorLogger sets the structured logger.
func WithAggregatorLogger(logger *slog.Logger) AggregatorOption {
	return func(a *BatchAggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewBatchAggregator builds the aggregator.
func NewBatchAggregator(opts ...AggregatorOption) ports.Aggregator {
	a := &BatchAggregator{
		cfg:    DefaultAggregatorConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AggregateFile folds one classified file. Files tagged with a
// non-consumption resource (equipment, nodes, envelope, other) yield
// (nil, nil): they carry no time series and are simply not this
// component's concern.
func (a *BatchAggregator) AggregateFile(file ports.ParsedFile) (*domain.ResourceAggregate, error) {
	if !file.Resource.IsEnergy() {
		return nil, nil
	}

	agg := &domain.ResourceAggregate{
		Resource: file.Resource,
		Quarters: make(map[string]domain.QuarterBucket),
	}
	st := &foldState{year: 0, lastMonth: 0}

	for _, sheet := range file.Sheets {
		st.lastMonth = 0
		for _, row := range sheet.Rows {
			if err := a.foldRow(agg, st, file.Filename, row); err != nil {
				return nil, err
			}
		}
	}

	if len(agg.Quarters) == 0 && !st.hasAnnual {
		return nil, nil
	}
	a.rollup(agg, st.hasAnnual)
	return agg, nil
}

type foldState struct {
	year      int
	lastMonth int
	hasAnnual bool
}

// foldRow interprets one row: a year marker resets the block, a quarter
// label writes the quarter total directly, a month label writes one
// monthly value, an annual label writes the yearly figure. Everything
// else is ignored.
func (a *BatchAggregator) foldRow(agg *domain.ResourceAggregate, st *foldState, filename string, row []any) error {
	if len(row) == 0 {
		return nil
	}
	label := row[0]

	value, hasValue := firstNumber(row[1:])

	// A year in the first cell marks a new block as long as the row carries
	// no value of its own; trailing empty cells from CSV exports are legal.
	if year, ok := YearMarker(label, a.cfg.MinYear, a.cfg.MaxYear); ok && !hasValue {
		st.year = year
		st.lastMonth = 0
		return nil
	}

	if q, ok := QuarterLabel(label); ok && hasValue {
		if err := checkNonNegative(filename, fmt.Sprintf("Q%d", q), value); err != nil {
			return err
		}
		key := QuarterKey(a.blockYear(st), q)
		bucket := agg.Quarters[key]
		bucket.Year = a.blockYear(st)
		bucket.Quarter = q
		bucket.Total = value
		agg.Quarters[key] = bucket
		return nil
	}

	if month, ok := NormalizeMonth(label, a.cfg.MonthAliases); ok && hasValue {
		return a.foldMonth(agg, st, filename, month, value)
	}

	if annualLabel(label) && hasValue {
		if err := checkNonNegative(filename, "annual", value); err != nil {
			return err
		}
		agg.Annual = value
		st.hasAnnual = true
		return nil
	}

	return nil
}

// foldMonth records one monthly value. A month number lower than its
// predecessor means the sheet rolled into the next year without a marker.
// The same month seen twice is legal only when the values agree, which
// makes re-aggregation of the same file idempotent.
func (a *BatchAggregator) foldMonth(agg *domain.ResourceAggregate, st *foldState, filename string, month int, value float64) error {
	if st.year == 0 {
		st.year = a.cfg.StartYear
	} else if st.lastMonth > 0 && month <= st.lastMonth {
		st.year++
	}
	st.lastMonth = month

	key := fmt.Sprintf("%02d", month)
	if err := checkNonNegative(filename, MonthKey(st.year, month), value); err != nil {
		return err
	}

	qKey := QuarterKey(st.year, MonthToQuarter(month))
	bucket := agg.Quarters[qKey]
	if bucket.Months == nil {
		bucket.Year = st.year
		bucket.Quarter = MonthToQuarter(month)
		bucket.Months = make(map[string]float64)
	}
	if prev, seen := bucket.Months[key]; seen && prev != value {
		return &domain.ValidationError{
			Field:  MonthKey(st.year, month),
			Reason: fmt.Sprintf("conflicting values %.3f and %.3f in %s", prev, value, filename),
		}
	}
	bucket.Months[key] = value
	agg.Quarters[qKey] = bucket
	return nil
}

// rollup recomputes quarter totals from their months and, unless the
// source stated the annual figure itself, the annual total from the
// quarters. An explicit annual of zero is a statement, not an absence.
func (a *BatchAggregator) rollup(agg *domain.ResourceAggregate, explicitAnnual bool) {
	var annual float64
	for key, bucket := range agg.Quarters {
		if len(bucket.Months) > 0 {
			var sum float64
			for _, v := range bucket.Months {
				sum += v
			}
			bucket.Total = sum
			agg.Quarters[key] = bucket
		}
		annual += bucket.Total
	}
	if !explicitAnnual {
		agg.Annual = annual
	}
}

// AggregateBatch fans per-file aggregation out across a bounded worker
// group, then merges serially in file order so the result is
// deterministic. A file that fails validation is isolated: its error is
// collected and the remaining files still contribute.
func (a *BatchAggregator) AggregateBatch(ctx context.Context, files []ports.ParsedFile) (*domain.BatchAggregate, error) {
	results := make([]*domain.ResourceAggregate, len(files))
	fileErrs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			agg, err := a.AggregateFile(file)
			if err != nil {
				if domain.IsValidation(err) {
					a.logger.Warn("file rejected by aggregation",
						"filename", file.Filename, "error", err)
					fileErrs[i] = fmt.Errorf("%s: %w", file.Filename, err)
					return nil
				}
				return fmt.Errorf("aggregate %s: %w", file.Filename, err)
			}
			results[i] = agg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &domain.BatchAggregate{
		Resources: make(map[domain.ResourceType]domain.ResourceAggregate),
	}
	if info, ok := domain.FromContext(ctx); ok {
		batch.EnterpriseID = info.EnterpriseID
	}
	for _, agg := range results {
		if agg == nil {
			continue
		}
		mergeResource(batch, *agg)
	}

	err := errors.Join(compactErrs(fileErrs)...)
	if len(batch.Resources) == 0 {
		return nil, err
	}
	return batch, err
}

// Upsert writes every period of every resource through the repository in
// sorted order.
func (a *BatchAggregator) Upsert(ctx context.Context, batch *domain.BatchAggregate) error {
	if a.repo == nil {
		return fmt.Errorf("aggregate repository not configured")
	}
	if batch == nil {
		return nil
	}
	for _, resource := range batch.ResourceKeys() {
		agg := batch.Resources[resource]
		for _, period := range agg.PeriodKeys() {
			if err := a.repo.UpsertAggregate(ctx, batch.EnterpriseID, resource, period, agg.Quarters[period]); err != nil {
				return fmt.Errorf("upsert %s %s: %w", resource, period, err)
			}
		}
	}
	return nil
}

// mergeResource folds one file's aggregate into the batch. Same-period
// buckets from different files merge month maps; bare quarter totals from
// a later file override.
func mergeResource(batch *domain.BatchAggregate, agg domain.ResourceAggregate) {
	existing, ok := batch.Resources[agg.Resource]
	if !ok {
		batch.Resources[agg.Resource] = agg
		return
	}
	for key, bucket := range agg.Quarters {
		prev, seen := existing.Quarters[key]
		if !seen || len(bucket.Months) == 0 {
			existing.Quarters[key] = bucket
			continue
		}
		if prev.Months == nil {
			prev.Months = make(map[string]float64)
		}
		for m, v := range bucket.Months {
			prev.Months[m] = v
		}
		var sum float64
		for _, v := range prev.Months {
			sum += v
		}
		prev.Total = sum
		existing.Quarters[key] = prev
	}
	var annual float64
	for _, bucket := range existing.Quarters {
		annual += bucket.Total
	}
	existing.Annual = annual
	batch.Resources[agg.Resource] = existing
}

func checkNonNegative(filename, period string, value float64) error {
	if value < 0 {
		return &domain.ValidationError{
			Field:  period,
			Reason: fmt.Sprintf("negative consumption %.3f in %s", value, filename),
		}
	}
	return nil
}

func (a *BatchAggregator) blockYear(st *foldState) int {
	if st.year == 0 {
		st.year = a.cfg.StartYear
	}
	return st.year
}

func firstNumber(cells []any) (float64, bool) {
	for _, cell := range cells {
		if v, ok := NormalizeNumber(cell); ok {
			return v, true
		}
	}
	return 0, false
}

func annualLabel(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, kw := range []string{"итог", "всего", "за год", "годов", "total", "annual"} {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func compactErrs(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
