package growth

// Adjustment bounds are calibration values; change them only with product
// guidance.
const (
	minWeightAdj = 0.85
	maxWeightAdj = 1.20
	minHeightAdj = 0.90
	maxHeightAdj = 1.10

	heightAdjWeight = 0.5
)

// RecommendationInput carries everything Recommend needs. Estimates that are
// zero or negative are replaced with the expected values, which makes the
// matching adjustment collapse to 1.
type RecommendationInput struct {
	AgeDays    int
	Sex        Sex
	BirthGrams int

	EstWeightGrams   int
	EstWeightDaysAgo *int
	EstHeightCm      float64
	EstHeightDaysAgo *int
}

// Recommendation is the personalized daily intake.
type Recommendation struct {
	AgeDays     int                  `json:"ageDays"`
	TotalMl     int                  `json:"totalMl"`
	MealsPerDay int                  `json:"mealsPerDay"`
	PerMealMl   int                  `json:"perMealMl"`
	Inputs      RecommendationInputs `json:"inputs"`
}

// RecommendationInputs records the values a recommendation was computed from.
type RecommendationInputs struct {
	EstWeightGrams      int     `json:"estWeightGrams"`
	EstWeightDaysAgo    *int    `json:"estWeightDaysAgo"`
	EstHeightCm         float64 `json:"estHeightCm"`
	EstHeightDaysAgo    *int    `json:"estHeightDaysAgo"`
	ExpectedWeightGrams int     `json:"expectedWeightGrams"`
	ExpectedHeightCm    float64 `json:"expectedHeightCm"`
	MlPerKg             float64 `json:"mlPerKg"`
}

// Recommend computes the total daily intake, meals per day and per-meal
// amount, scaled by how the estimated weight and height compare with the
// expected ones.
func (t *Table) Recommend(in RecommendationInput) Recommendation {
	expectedGrams := t.ExpectedWeightGrams(in.BirthGrams, in.Sex, in.AgeDays)
	expectedCm := t.ExpectedHeightCm(in.Sex, in.AgeDays)

	estGrams := in.EstWeightGrams
	if estGrams <= 0 {
		estGrams = expectedGrams
	}
	estCm := in.EstHeightCm
	if estCm <= 0 {
		estCm = expectedCm
	}

	perKg := MlPerKg(in.AgeDays)
	estKg := float64(estGrams) / 1000
	base := roundInt(estKg * perKg)

	weightAdj := 1.0
	if expectedKg := float64(expectedGrams) / 1000; expectedKg > 0 {
		weightAdj = clamp(estKg/expectedKg, minWeightAdj, maxWeightAdj)
	}

	heightAdj := 1.0
	if expectedCm > 0 {
		heightAdj = clamp(1+heightAdjWeight*(estCm/expectedCm-1), minHeightAdj, maxHeightAdj)
	}

	total := roundInt(float64(base) * weightAdj * heightAdj)
	if total < 0 {
		total = 0
	}
	meals := MealsPerDay(in.AgeDays)

	return Recommendation{
		AgeDays:     in.AgeDays,
		TotalMl:     total,
		MealsPerDay: meals,
		PerMealMl:   roundInt(float64(total) / float64(meals)),
		Inputs: RecommendationInputs{
			EstWeightGrams:      estGrams,
			EstWeightDaysAgo:    in.EstWeightDaysAgo,
			EstHeightCm:         estCm,
			EstHeightDaysAgo:    in.EstHeightDaysAgo,
			ExpectedWeightGrams: expectedGrams,
			ExpectedHeightCm:    expectedCm,
			MlPerKg:             perKg,
		},
	}
}

// mlPerKgPoints is the piecewise-linear intake curve in ml per kg per day.
var mlPerKgPoints = [...]struct {
	day  int
	mlKg float64
}{
	{30, 150},
	{90, 140},
	{180, 115},
	{365, 95},
}

// MlPerKg returns the daily intake per kilogram of body weight for the age.
func MlPerKg(ageDays int) float64 {
	first := mlPerKgPoints[0]
	if ageDays <= first.day {
		return first.mlKg
	}
	for i := 1; i < len(mlPerKgPoints); i++ {
		lo, hi := mlPerKgPoints[i-1], mlPerKgPoints[i]
		if ageDays <= hi.day {
			p := float64(ageDays-lo.day) / float64(hi.day-lo.day)
			return lo.mlKg + p*(hi.mlKg-lo.mlKg)
		}
	}
	return mlPerKgPoints[len(mlPerKgPoints)-1].mlKg
}

// MealsPerDay is the number of feeds per day recommended for the age.
func MealsPerDay(ageDays int) int {
	switch {
	case ageDays <= 30:
		return 8
	case ageDays <= 60:
		return 7
	case ageDays <= 120:
		return 6
	case ageDays <= 180:
		return 5
	default:
		return 4
	}
}
