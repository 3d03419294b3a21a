package stats

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/joseph-ayodele/mpstats/internal/common"
)

const eps = 1e-4

func samplesOf(vs ...float64) []Sample {
	out := make([]Sample, len(vs))
	for i, v := range vs {
		out[i] = Sample{SourceName: "MP-" + string(rune('A'+i)) + ".pdf", Value: v}
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestSummarizeKnownValues(t *testing.T) {
	got, err := Summarize(samplesOf(1, 2, 3, 4, 5), SpecLimits{USL: 6, LSL: 0})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.Mean != 3 || got.Min != 1 || got.Max != 5 || got.N != 5 {
		t.Errorf("mean/min/max/n = %v/%v/%v/%d", got.Mean, got.Min, got.Max, got.N)
	}
	checks := []struct {
		name string
		v    Value
		want float64
	}{
		{"variance", got.Variance, 2.5},
		{"std_dev", got.StdDev, 1.5811},
		{"cp", got.Cp, 0.6325},
		{"cpk", got.Cpk, 0.6325},
	}
	for _, c := range checks {
		v, ok := c.v.Get()
		if !ok || !near(v, c.want) {
			t.Errorf("%s = %v (ok=%v), want ≈%v", c.name, v, ok, c.want)
		}
	}
	sd, _ := got.StdDev.Get()
	variance, _ := got.Variance.Get()
	if math.Abs(sd*sd-variance) > 1e-12 {
		t.Errorf("variance %v != std_dev² %v", variance, sd*sd)
	}
}

func TestSummarizeCpkTakesWorseSide(t *testing.T) {
	// mean 3, σ ≈ 1.5811; cpu = (10-3)/3σ, cpl = (3-0)/3σ
	got, err := Summarize(samplesOf(1, 2, 3, 4, 5), SpecLimits{USL: 10, LSL: 0})
	if err != nil {
		t.Fatal(err)
	}
	sd, _ := got.StdDev.Get()
	wantCpk := 3 / (3 * sd)
	if v, _ := got.Cpk.Get(); !near(v, wantCpk) {
		t.Errorf("cpk = %v, want %v", v, wantCpk)
	}
	if v, _ := got.Cp.Get(); !near(v, 10/(6*sd)) {
		t.Errorf("cp = %v", v)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	got, err := Summarize(samplesOf(4.2), SpecLimits{USL: 5, LSL: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got.Mean != 4.2 || got.Min != 4.2 || got.Max != 4.2 {
		t.Errorf("mean/min/max = %v/%v/%v", got.Mean, got.Min, got.Max)
	}
	for name, v := range map[string]Value{"std_dev": got.StdDev, "variance": got.Variance, "cp": got.Cp, "cpk": got.Cpk} {
		if v.OK() {
			t.Errorf("%s = %v, want not computable", name, v)
		}
	}
}

func TestSummarizeConstantSamples(t *testing.T) {
	got, err := Summarize(samplesOf(10, 10, 10, 10), SpecLimits{USL: 11, LSL: 9})
	if err != nil {
		t.Fatal(err)
	}
	if sd, ok := got.StdDev.Get(); !ok || sd != 0 {
		t.Errorf("std_dev = %v (ok=%v), want 0", sd, ok)
	}
	if got.Cp.OK() || got.Cpk.OK() {
		t.Errorf("cp/cpk = %v/%v, want not computable", got.Cp, got.Cpk)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(nil, SpecLimits{}); !errors.Is(err, common.ErrNoSamples) {
		t.Errorf("err = %v, want ErrNoSamples", err)
	}
	if _, err := DefaultLimits(nil); !errors.Is(err, common.ErrNoSamples) {
		t.Errorf("DefaultLimits err = %v, want ErrNoSamples", err)
	}
}

func TestSummarizeInvertedLimits(t *testing.T) {
	got, err := Summarize(samplesOf(1, 2, 3), SpecLimits{USL: 0, LSL: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !got.LimitsInverted {
		t.Error("LimitsInverted = false")
	}
	if v, ok := got.Cp.Get(); !ok || v >= 0 {
		t.Errorf("cp = %v, want negative", v)
	}
}

func TestSummarizeMeanWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(30)
		vs := make([]float64, n)
		base := rng.NormFloat64() * 1e3
		for j := range vs {
			if i%5 == 0 {
				vs[j] = base // constant sets stress the rounding path
			} else {
				vs[j] = base + rng.NormFloat64()
			}
		}
		got, err := Summarize(samplesOf(vs...), SpecLimits{USL: 1, LSL: -1})
		if err != nil {
			t.Fatal(err)
		}
		if !(got.Min <= got.Mean && got.Mean <= got.Max) {
			t.Fatalf("set %v: min %v mean %v max %v", vs, got.Min, got.Mean, got.Max)
		}
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	in := samplesOf(0.1, 0.7, 0.3, 1e-9, 12.5)
	limits := SpecLimits{USL: 13, LSL: -1}
	a, err := Summarize(in, limits)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Summarize(in, limits)
	ab, _ := json.Marshal(a)
	bb, _ := json.Marshal(b)
	if string(ab) != string(bb) {
		t.Errorf("outputs differ:\n%s\n%s", ab, bb)
	}
	if math.Float64bits(a.Mean) != math.Float64bits(b.Mean) {
		t.Error("mean not bit-identical")
	}
}

func TestDefaultLimits(t *testing.T) {
	got, err := DefaultLimits(samplesOf(3, -1, 8))
	if err != nil {
		t.Fatal(err)
	}
	if got.USL != 8 || got.LSL != -1 {
		t.Errorf("DefaultLimits = %+v", got)
	}
}

func TestRowsOrder(t *testing.T) {
	s, _ := Summarize(samplesOf(1, 2), SpecLimits{USL: 3, LSL: 0})
	want := []string{"Mean", "Min", "Max", "Standard Deviation", "Variance", "Cp", "Cpk"}
	rows := s.Rows()
	if len(rows) != len(want) {
		t.Fatalf("len(rows) = %d", len(rows))
	}
	for i, r := range rows {
		if r.Name != want[i] {
			t.Errorf("row %d = %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestValueJSONAndString(t *testing.T) {
	b, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
	}{A: Some(1.5), B: None()})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"a":1.5,"b":null}` {
		t.Errorf("json = %s", b)
	}
	if Some(math.NaN()).OK() || Some(math.Inf(1)).OK() {
		t.Error("NaN/Inf should not be computable")
	}
	if None().String() != NotComputable {
		t.Errorf("None().String() = %q", None().String())
	}
	if got, ok := Some(2.25).Get(); !ok || got != 2.25 {
		t.Errorf("Get() = %v, %v", got, ok)
	}
}
