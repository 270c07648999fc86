package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{1234.5, 1234.5, true},
		{42, 42, true},
		{"1 234,56", 1234.56, true},
		{"1 000", 1000, true},
		{"  12,5  ", 12.5, true},
		{"3.14", 3.14, true},
		{"", 0, false},
		{"итого", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := NormalizeNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %v", tc.in)
		}
	}
}

func TestNormalizeMonth(t *testing.T) {
	cases := []struct {
		in   any
		want int
		ok   bool
	}{
		{"январь", 1, true},
		{"Декабрь", 12, true},
		{"сен", 9, true},
		{"5", 5, true},
		{7, 7, true},
		{3.0, 3, true},
		{13, 0, false},
		{"0", 0, false},
		{"квартал", 0, false},
	}
	for _, tc := range cases {
		got, ok := NormalizeMonth(tc.in, nil)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %v", tc.in)
		}
	}
}

func TestMonthToQuarter(t *testing.T) {
	assert.Equal(t, 1, MonthToQuarter(1))
	assert.Equal(t, 1, MonthToQuarter(3))
	assert.Equal(t, 2, MonthToQuarter(4))
	assert.Equal(t, 4, MonthToQuarter(12))
}

func TestQuarterLabel(t *testing.T) {
	q, ok := QuarterLabel("Q2")
	assert.True(t, ok)
	assert.Equal(t, 2, q)

	q, ok = QuarterLabel("3 квартал")
	assert.True(t, ok)
	assert.Equal(t, 3, q)

	_, ok = QuarterLabel("январь")
	assert.False(t, ok)
}

func TestYearMarker(t *testing.T) {
	y, ok := YearMarker(2023, 2000, 2100)
	assert.True(t, ok)
	assert.Equal(t, 2023, y)

	y, ok = YearMarker("2024", 2000, 2100)
	assert.True(t, ok)
	assert.Equal(t, 2024, y)

	_, ok = YearMarker(1987, 2000, 2100)
	assert.False(t, ok)
	_, ok = YearMarker("июнь", 2000, 2100)
	assert.False(t, ok)
}
