package growth

import "math"

const maxAbsZ = 6

// Percentile estimates the percentile (0..100) of an observed measurement
// against the median for the child's age. It returns false when the
// observation or the median is not a usable positive number.
//
// The z-score uses a single coefficient of variation per curve instead of
// the WHO L, M and S parameters per month, so results are an approximation.
func (t *Table) Percentile(c Curve, s Sex, ageDays int, observed float64) (float64, bool) {
	m := t.MedianValue(c, s, ageDays)
	if !isFinite(observed) || !isFinite(m) || m <= 0 {
		return 0, false
	}

	z := (observed/m - 1) / c.cv()
	z = clamp(z, -maxAbsZ, maxAbsZ)

	return clamp(normalCDF(z)*100, 0, 100), true
}

func normalCDF(z float64) float64 {
	return 0.5 * (1 + erf(z/math.Sqrt2))
}

// erf uses Abramowitz and Stegun formula 7.1.26 (|error| < 1.5e-7).
func erf(x float64) float64 {
	const (
		p  = 0.3275911
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
	)

	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}

	t := 1 / (1 + p*x)
	y := 1 - ((((a5*t+a4)*t+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return sign * y
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
