package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRange(t *testing.T) {
	bounds := DefaultBounds()

	tests := []struct {
		name     string
		start    string
		end      string
		expected RangeStatus
	}{
		{name: "inside bounds", start: "2020-04-01", end: "2020-05-01", expected: RangeValid},
		{name: "exactly the bounds", start: "2020-03-02", end: "2021-11-10", expected: RangeValid},
		{name: "equal dates are inverted", start: "2020-04-01", end: "2020-04-01", expected: RangeInverted},
		{name: "end before start", start: "2020-05-01", end: "2020-04-01", expected: RangeInverted},
		{name: "inverted wins over out of bounds", start: "2022-01-01", end: "2019-01-01", expected: RangeInverted},
		{name: "start before min", start: "2020-03-01", end: "2020-04-01", expected: RangeOutOfBounds},
		{name: "end after max", start: "2021-01-01", end: "2021-11-11", expected: RangeOutOfBounds},
		{name: "both outside", start: "2019-01-01", end: "2022-01-01", expected: RangeOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidateRange(day(t, tt.start), day(t, tt.end), bounds)
			assert.Equal(t, tt.expected, check.Status)
			assert.Equal(t, tt.expected == RangeValid, check.Valid())
			if tt.expected == RangeValid {
				assert.Empty(t, check.Message)
			} else {
				assert.NotEmpty(t, check.Message)
			}
		})
	}
}

func TestValidateRange_IgnoresClock(t *testing.T) {
	start := day(t, "2020-04-01").Add(23 * 60 * 60 * 1e9)
	end := day(t, "2020-04-01").Add(1e9)

	assert.Equal(t, RangeInverted, ValidateRange(start, end, DefaultBounds()).Status)
}

func TestValidateRange_OutOfBoundsMessageNamesBounds(t *testing.T) {
	check := ValidateRange(day(t, "2019-01-01"), day(t, "2020-04-01"), DefaultBounds())

	assert.Contains(t, check.Message, "2020-03-02")
	assert.Contains(t, check.Message, "2021-11-10")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2021-11-05")
	assert.NoError(t, err)
	assert.True(t, DefaultForecastBoundary().Equal(d))

	_, err = ParseDate("11/05/2021")
	assert.Error(t, err)
}
