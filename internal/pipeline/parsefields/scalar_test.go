package parsefields

import (
	"testing"

	"github.com/joseph-ayodele/mpstats/constants"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		metric constants.Metric
		want   float64
		wantOK bool
	}{
		{
			name:   "negative with unit",
			text:   "Measurement report ... X-Maximum: -3.25 mm ... done",
			metric: constants.XMaximum,
			want:   -3.25,
			wantOK: true,
		},
		{
			name:   "no label",
			text:   "Measurement report without the value",
			metric: constants.XMaximum,
		},
		{
			name:   "equals separator",
			text:   "Y-Maximum=120.5 N",
			metric: constants.YMaximum,
			want:   120.5,
			wantOK: true,
		},
		{
			name:   "no separator, newline whitespace",
			text:   "X-Maximum\n  7",
			metric: constants.XMaximum,
			want:   7,
			wantOK: true,
		},
		{
			name:   "case insensitive label",
			text:   "x-maximum: +.5",
			metric: constants.XMaximum,
			want:   0.5,
			wantOK: true,
		},
		{
			name:   "first match wins",
			text:   "X-Maximum: 1.0\nX-Maximum: 2.0",
			metric: constants.XMaximum,
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "other metric ignored",
			text:   "Y-Maximum: 42",
			metric: constants.XMaximum,
		},
		{
			name:   "label without number",
			text:   "X-Maximum: n/a",
			metric: constants.XMaximum,
		},
		{
			name:   "no-break space before value",
			text:   "X-Maximum:\u00a0-3.25 mm",
			metric: constants.XMaximum,
			want:   -3.25,
			wantOK: true,
		},
		{
			name:   "thin space before value",
			text:   "X-Maximum:\u2009-3.25 mm",
			metric: constants.XMaximum,
			want:   -3.25,
			wantOK: true,
		},
		{
			name:   "vertical tab before value",
			text:   "Y-Maximum\v12",
			metric: constants.YMaximum,
			want:   12,
			wantOK: true,
		},
		{
			name:   "unknown metric",
			text:   "X-Maximum: 1",
			metric: constants.Metric("Z"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text, tt.metric)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Extract() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPatternPerMetric(t *testing.T) {
	for _, m := range constants.AllMetrics() {
		if patterns[m] == nil {
			t.Errorf("no pattern for %s", m)
		}
	}
}
