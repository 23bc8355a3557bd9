package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeCategory_PolicyOrderIsAuthored(t *testing.T) {
	entries := DescribeCategory(CategoryPolicy)

	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "school/workplace_closing", entries[0].Variable)
	assert.Equal(t, "restrictions_on_gatherings", entries[1].Variable)
	assert.Equal(t, "stringency_index", entries[len(entries)-1].Variable)
}

func TestDescribeCategory_EveryCategoryHasEntries(t *testing.T) {
	for _, c := range Categories() {
		t.Run(string(c), func(t *testing.T) {
			entries := DescribeCategory(c)
			assert.NotEmpty(t, entries)
			for _, e := range entries {
				assert.NotEmpty(t, e.Variable)
				assert.NotEmpty(t, e.Description)
			}
		})
	}
}

func TestDescribeCategory_ReturnsCopy(t *testing.T) {
	entries := DescribeCategory(CategoryCovidData)
	entries[0].Variable = "mutated"

	assert.Equal(t, "new_confirmed", DescribeCategory(CategoryCovidData)[0].Variable)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{input: "policy", expected: CategoryPolicy},
		{input: "Policy", expected: CategoryPolicy},
		{input: "COVID-19 related data", expected: CategoryCovidData},
		{input: "covid_data", expected: CategoryCovidData},
		{input: " Search Trend ", expected: CategorySearchTrend},
		{input: "Geographic information", expected: CategoryGeographic},
		{input: "weather", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIndexVariables(t *testing.T) {
	vars := IndexVariables()

	require.Len(t, vars, 2)
	assert.Equal(t, FieldSubregion, vars[0].Variable)
	assert.Equal(t, FieldDate, vars[1].Variable)
}
