// Package stats computes descriptive and process-capability statistics over
// an ordered set of measurement samples.
//
// Spread uses the Bessel-corrected (n-1) estimator. Statistics that cannot be
// computed for a given set (spread of a single sample, Cp/Cpk when the spread
// is zero) are reported as a Value that is not OK rather than as NaN, so
// formatting and serialization never see a NaN.
//
// Summarize is pure: the same samples and limits always produce bit-identical
// output.
package stats
