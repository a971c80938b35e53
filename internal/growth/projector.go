package growth

import "time"

// DefaultBirthWeightGrams is assumed when the profile has no birth weight.
const DefaultBirthWeightGrams = 3500

// ChildProfile is the subset of the app configuration the engine needs.
type ChildProfile struct {
	Sex              Sex
	BirthDate        *time.Time
	BirthWeightGrams int
}

// AgeDays returns the child's age on the target date. It reports false when
// the birth date is unknown.
func (p ChildProfile) AgeDays(target time.Time) (int, bool) {
	if p.BirthDate == nil {
		return 0, false
	}
	return AgeDays(*p.BirthDate, target), true
}

// BirthGrams returns the birth weight or DefaultBirthWeightGrams.
func (p ChildProfile) BirthGrams() int {
	if p.BirthWeightGrams <= 0 {
		return DefaultBirthWeightGrams
	}
	return p.BirthWeightGrams
}

// AgeDays counts calendar days from birth to target. Each time is read in its
// own location, so callers should pass both in the same one.
func AgeDays(birth, target time.Time) int {
	return int(civilDay(target).Sub(civilDay(birth)) / (24 * time.Hour))
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Measurement is a dated weight (grams) or height (centimetres) record.
type Measurement struct {
	MeasuredAt time.Time
	Value      float64
}

// NearestAnchor picks the record to project from: the most recent one on or
// before the target date, or the soonest one after it when none precedes.
func NearestAnchor(records []Measurement, target time.Time) (Measurement, bool) {
	day := civilDay(target)

	var before, after *Measurement
	for i := range records {
		r := &records[i]
		rd := civilDay(r.MeasuredAt)
		if !rd.After(day) {
			if before == nil || rd.After(civilDay(before.MeasuredAt)) {
				before = r
			}
			continue
		}
		if after == nil || rd.Before(civilDay(after.MeasuredAt)) {
			after = r
		}
	}

	switch {
	case before != nil:
		return *before, true
	case after != nil:
		return *after, true
	default:
		return Measurement{}, false
	}
}

// Project estimates the value at the target date by scaling the anchor with
// the ratio of the medians at both ages. This assumes the child follows the
// shape of the median curve while staying offset from it.
func (t *Table) Project(c Curve, s Sex, birth time.Time, anchor Measurement, target time.Time) float64 {
	anchorMedian := t.MedianValue(c, s, AgeDays(birth, anchor.MeasuredAt))
	if anchorMedian <= 0 {
		return anchor.Value
	}
	targetMedian := t.MedianValue(c, s, AgeDays(birth, target))
	return anchor.Value * targetMedian / anchorMedian
}
