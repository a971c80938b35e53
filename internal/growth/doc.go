// Package growth implements the feeding recommendation and day summary engine.
//
// The package is pure computation: it performs no I/O and holds no mutable
// state, so every function and method is safe for concurrent use.
//
// # Growth curves
//
// Table holds the WHO weight-for-age and length-for-age medians for months
// 0..12. Lookups convert an age in days to a fractional month count and
// interpolate linearly between the surrounding rows. Ages past month 12 clamp
// to the month-12 row.
//
//	t := growth.WHOTable()
//	kg := t.MedianValue(growth.CurveWeight, growth.SexGirl, 45)
//
// # Percentiles
//
// Percentile approximates the rank of an observation using a fixed
// coefficient of variation per curve and the Abramowitz-Stegun normal CDF.
// It is not a clinical-grade percentile: the full WHO LMS tables are not used.
//
// # Recommendations
//
// Recommend computes the personalized ("adjusted") daily intake from the
// child's estimated weight and height. GenericTable exposes the age-only
// ("generic") 365-day table used when no profile is available.
//
// # Day summaries
//
// Summarize groups feed events by calendar day and measures the longest
// feed-free gap inside the overnight window.
package growth
