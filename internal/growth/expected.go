package growth

const (
	dipDays       = 3
	reboundDays   = 15
	maxWeightLoss = 0.07
)

// ExpectedWeightGrams returns the expected weight for a child born at
// birthGrams. The first three days follow the physiological loss down to 93%
// of birth weight, days 3..15 blend back towards the WHO median, and later
// ages track the median.
func (t *Table) ExpectedWeightGrams(birthGrams int, s Sex, ageDays int) int {
	if birthGrams <= 0 {
		birthGrams = DefaultBirthWeightGrams
	}
	if ageDays < 0 {
		ageDays = 0
	}

	birth := float64(birthGrams)
	age := float64(ageDays)

	switch {
	case ageDays <= dipDays:
		return roundInt(birth * (1 - maxWeightLoss*age/dipDays))

	case ageDays <= reboundDays:
		tt := (age - dipDays) / (reboundDays - dipDays)
		median := t.MedianValue(CurveWeight, s, ageDays) * 1000
		return roundInt(birth * ((1-maxWeightLoss)*(1-tt) + (median/birth)*tt))

	default:
		return roundInt(t.MedianValue(CurveWeight, s, ageDays) * 1000)
	}
}
