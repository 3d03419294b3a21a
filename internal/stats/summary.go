package stats

import (
	"math"

	moremath "github.com/aclements/go-moremath/stats"

	"github.com/joseph-ayodele/mpstats/internal/common"
)

// Sample is one extracted measurement.
type Sample struct {
	SourceName string  `json:"file"`
	Value      float64 `json:"value"`
}

// SpecLimits are the user-supplied acceptance bounds. USL < LSL is accepted
// and yields negative capability indices.
type SpecLimits struct {
	USL float64 `json:"usl"`
	LSL float64 `json:"lsl"`
}

// Inverted reports USL < LSL.
func (l SpecLimits) Inverted() bool { return l.USL < l.LSL }

// Summary is the statistics record for one sample set.
type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	StdDev   Value   `json:"std_dev"`
	Variance Value   `json:"variance"`
	Cp       Value   `json:"cp"`
	Cpk      Value   `json:"cpk"`

	Limits         SpecLimits `json:"limits"`
	LimitsInverted bool       `json:"limits_inverted"`
}

// Row is one line of the transposed statistics table.
type Row struct {
	Name  string
	Value Value
}

// Rows returns the statistics in display order.
func (s Summary) Rows() []Row {
	return []Row{
		{"Mean", Some(s.Mean)},
		{"Min", Some(s.Min)},
		{"Max", Some(s.Max)},
		{"Standard Deviation", s.StdDev},
		{"Variance", s.Variance},
		{"Cp", s.Cp},
		{"Cpk", s.Cpk},
	}
}

// Values returns the sample values in order.
func Values(samples []Sample) []float64 {
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Value
	}
	return xs
}

// Summarize computes the statistics of samples against limits. samples must
// be non-empty; an empty set returns common.ErrNoSamples.
func Summarize(samples []Sample, limits SpecLimits) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, common.ErrNoSamples
	}

	s := moremath.Sample{Xs: Values(samples)}
	lo, hi := s.Bounds()
	// rounding in the mean can land one ulp outside the observed range
	mean := math.Min(hi, math.Max(lo, s.Mean()))

	out := Summary{
		N:              len(samples),
		Mean:           mean,
		Min:            lo,
		Max:            hi,
		StdDev:         None(),
		Variance:       None(),
		Cp:             None(),
		Cpk:            None(),
		Limits:         limits,
		LimitsInverted: limits.Inverted(),
	}
	if out.N < 2 {
		return out, nil
	}

	variance := s.Variance()
	sigma := math.Sqrt(variance)
	out.Variance = Some(variance)
	out.StdDev = Some(sigma)

	if sd, ok := out.StdDev.Get(); ok && sd > 0 {
		cpu := (limits.USL - mean) / (3 * sd)
		cpl := (mean - limits.LSL) / (3 * sd)
		out.Cp = Some((limits.USL - limits.LSL) / (6 * sd))
		out.Cpk = Some(math.Min(cpu, cpl))
	}
	return out, nil
}

// DefaultLimits returns USL = max and LSL = min of the observed samples.
// It only fills the form until real limits are typed in; it is not a
// statistical recommendation.
func DefaultLimits(samples []Sample) (SpecLimits, error) {
	if len(samples) == 0 {
		return SpecLimits{}, common.ErrNoSamples
	}
	s := moremath.Sample{Xs: Values(samples)}
	lo, hi := s.Bounds()
	return SpecLimits{USL: hi, LSL: lo}, nil
}
