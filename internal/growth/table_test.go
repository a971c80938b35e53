package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedianValueTableRows(t *testing.T) {
	table := WHOTable()

	tests := []struct {
		name  string
		curve Curve
		sex   Sex
		age   int
		want  float64
	}{
		{"girl weight at birth", CurveWeight, SexGirl, 0, 3.2},
		{"boy weight at birth", CurveWeight, SexBoy, 0, 3.3},
		{"girl length at birth", CurveLength, SexGirl, 0, 49.1},
		{"boy length at birth", CurveLength, SexBoy, 0, 49.9},
		{"girl weight at month 12", CurveWeight, SexGirl, 366, 8.9},
		{"girl weight at day 365", CurveWeight, SexGirl, 365, 8.9},
		{"boy length at month 12", CurveLength, SexBoy, 366, 75.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, table.MedianValue(tt.curve, tt.sex, tt.age), 1e-9)
		})
	}
}

func TestMedianValueInterpolates(t *testing.T) {
	table := WHOTable()

	// Half way between month 0 (3.3) and month 1 (4.5).
	age := int(math.Round(DaysPerMonth / 2))
	months := float64(age) / DaysPerMonth
	want := 3.3 + months*(4.5-3.3)

	assert.InDelta(t, want, table.MedianValue(CurveWeight, SexBoy, age), 1e-9)
}

func TestMedianValueMonotonic(t *testing.T) {
	table := WHOTable()

	for _, curve := range []Curve{CurveWeight, CurveLength} {
		for _, sex := range []Sex{SexGirl, SexBoy} {
			prev := table.MedianValue(curve, sex, 0)
			for age := 1; age <= 365; age++ {
				v := table.MedianValue(curve, sex, age)
				require.GreaterOrEqualf(t, v, prev, "%s/%s decreased at day %d", curve, sex, age)
				prev = v
			}
		}
	}
}

func TestMedianValueClampsAfterTwelveMonths(t *testing.T) {
	table := WHOTable()

	for _, curve := range []Curve{CurveWeight, CurveLength} {
		for _, sex := range []Sex{SexGirl, SexBoy} {
			assert.Equal(t, table.MedianValue(curve, sex, 365), table.MedianValue(curve, sex, 400))
			assert.Equal(t, table.MedianValue(curve, sex, 365), table.MedianValue(curve, sex, 5000))
			// The last interpolated day stays just below the month-12 row
			assert.Less(t, table.MedianValue(curve, sex, 364), table.MedianValue(curve, sex, 365))
		}
	}
}

func TestMedianValueUnknownSexFallsBackToGirl(t *testing.T) {
	table := WHOTable()

	assert.Equal(t,
		table.MedianValue(CurveWeight, SexGirl, 100),
		table.MedianValue(CurveWeight, Sex(42), 100))
	assert.Equal(t, SexGirl, ParseSex("unknown"))
	assert.Equal(t, SexGirl, ParseSex("B"))
	assert.Equal(t, SexBoy, ParseSex("A"))
	assert.Equal(t, SexBoy, ParseSex("boy"))
}

func TestSexText(t *testing.T) {
	b, err := SexBoy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "boy", string(b))
	assert.Equal(t, "A", SexBoy.Code())
	assert.Equal(t, "B", SexGirl.Code())

	var s Sex
	require.NoError(t, s.UnmarshalText([]byte("boy")))
	assert.Equal(t, SexBoy, s)
}

func TestParseCurve(t *testing.T) {
	c, err := ParseCurve("height")
	require.NoError(t, err)
	assert.Equal(t, CurveLength, c)

	c, err = ParseCurve("Weight")
	require.NoError(t, err)
	assert.Equal(t, CurveWeight, c)

	_, err = ParseCurve("bmi")
	assert.Error(t, err)
}

func TestFeedingTypeText(t *testing.T) {
	for _, ft := range FeedingTypes() {
		b, err := ft.MarshalText()
		require.NoError(t, err)

		var parsed FeedingType
		require.NoError(t, parsed.UnmarshalText(b))
		assert.Equal(t, ft, parsed)
	}

	_, err := ParseFeedingType("MILKSHAKE")
	assert.Error(t, err)

	_, err = FeedingType(200).MarshalText()
	assert.Error(t, err)
	assert.Len(t, FeedingTypes(), 7)
}
