package domain

import "sort"

// AbsoluteTolerance is the drift allowed, in absolute units, between an
// annual figure and the sum of the periods it was rolled up from. The same
// tolerance bounds the proportional by-usage allocation. It is absolute
// rather than relative: annual totals across resources span several orders
// of magnitude and the template consumers compare absolute units.
const AbsoluteTolerance = 1.0

// TimeSeries holds consumption values at whatever granularity the source
// supplied. Monthly keys are "01".."12", quarterly keys are "Q1".."Q4" or
// the fully qualified "2023-Q1" form. Annual, when set, is an explicitly
// supplied override and wins over any derived rollup.
type TimeSeries struct {
	Monthly   map[string]float64 `json:"monthly,omitempty"`
	Quarterly map[string]float64 `json:"quarterly,omitempty"`
	Annual    *float64           `json:"annual,omitempty"`
	Unit      string             `json:"unit,omitempty"`
}

// AnnualTotal resolves the annual figure: an explicit Annual wins, otherwise
// quarters are summed, otherwise months. Returns false when the series holds
// nothing to derive from.
func (ts TimeSeries) AnnualTotal() (float64, bool) {
	if ts.Annual != nil {
		return *ts.Annual, true
	}
	if len(ts.Quarterly) > 0 {
		return sumValues(ts.Quarterly), true
	}
	if len(ts.Monthly) > 0 {
		return sumValues(ts.Monthly), true
	}
	return 0, false
}

// PeriodKeys returns the quarterly keys in sorted order. Sorting the keys
// keeps every derived output deterministic regardless of source row order.
func (ts TimeSeries) PeriodKeys() []string {
	keys := make([]string, 0, len(ts.Quarterly))
	for k := range ts.Quarterly {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge folds another series into this one. Later values override earlier
// ones for the same period, matching the re-import semantics of aggregation.
func (ts *TimeSeries) Merge(other TimeSeries) {
	if len(other.Monthly) > 0 {
		if ts.Monthly == nil {
			ts.Monthly = make(map[string]float64, len(other.Monthly))
		}
		for k, v := range other.Monthly {
			ts.Monthly[k] = v
		}
	}
	if len(other.Quarterly) > 0 {
		if ts.Quarterly == nil {
			ts.Quarterly = make(map[string]float64, len(other.Quarterly))
		}
		for k, v := range other.Quarterly {
			ts.Quarterly[k] = v
		}
	}
	if other.Annual != nil {
		ts.Annual = other.Annual
	}
	if other.Unit != "" {
		ts.Unit = other.Unit
	}
}

// Validate checks the series invariants. A negative annual total (explicit
// or derived) and negative period values are recoverable validation
// failures, never panics.
func (ts TimeSeries) Validate() error {
	if total, ok := ts.AnnualTotal(); ok && total < 0 {
		return &ValidationError{Field: "annual", Reason: "annual total is negative"}
	}
	for k, v := range ts.Quarterly {
		if v < 0 {
			return &ValidationError{Field: k, Reason: "quarter value is negative"}
		}
	}
	for k, v := range ts.Monthly {
		if v < 0 {
			return &ValidationError{Field: k, Reason: "month value is negative"}
		}
	}
	return nil
}

func sumValues(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}
