package domain

import "sort"

// QuarterBucket accumulates one quarter of one resource. Months map month
// numbers ("01".."12") to values; Total is the quarter rollup (sum of
// months, unless the source supplied the quarter figure directly).
type QuarterBucket struct {
	Year    int                `json:"year"`
	Quarter int                `json:"quarter"`
	Months  map[string]float64 `json:"months,omitempty"`
	Total   float64            `json:"total"`
}

// ResourceAggregate is the period-normalized result for one resource:
// quarter buckets keyed "2023-Q1" plus the annual rollup.
type ResourceAggregate struct {
	Resource ResourceType             `json:"resource"`
	Quarters map[string]QuarterBucket `json:"quarters"`
	Annual   float64                  `json:"annual"`
}

// PeriodKeys returns the quarter keys in sorted order for deterministic
// iteration.
func (a ResourceAggregate) PeriodKeys() []string {
	keys := make([]string, 0, len(a.Quarters))
	for k := range a.Quarters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Series converts the aggregate into the canonical TimeSeries shape.
func (a ResourceAggregate) Series() TimeSeries {
	annual := a.Annual
	ts := TimeSeries{Annual: &annual}
	if len(a.Quarters) > 0 {
		ts.Quarterly = make(map[string]float64, len(a.Quarters))
		for key, bucket := range a.Quarters {
			ts.Quarterly[key] = bucket.Total
		}
	}
	return ts
}

// BatchAggregate is the aggregator output for one upload batch: one
// ResourceAggregate per energy carrier that contributed data.
type BatchAggregate struct {
	EnterpriseID string                             `json:"enterprise_id"`
	Resources    map[ResourceType]ResourceAggregate `json:"resources"`
}

// ResourceKeys returns the contained resources in sorted order.
func (b *BatchAggregate) ResourceKeys() []ResourceType {
	keys := make([]ResourceType, 0, len(b.Resources))
	for r := range b.Resources {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
