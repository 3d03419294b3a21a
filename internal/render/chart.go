package render

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/analysis"
	"github.com/joseph-ayodele/mpstats/internal/common"
)

// Format is the chart output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	chartWidth  = 1024
	chartHeight = 512
)

// FormatFromPath picks the chart format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", common.InvalidInput("chart", fmt.Sprintf("unsupported chart extension %q (want .png or .svg)", filepath.Ext(path)))
	}
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case FormatPNG:
		return chart.PNG, nil
	case FormatSVG:
		return chart.SVG, nil
	default:
		return nil, common.InvalidInput("format", fmt.Sprintf("unsupported chart format %q", f))
	}
}

// RenderChart draws the samples against their 1-based index with the
// specification limits as horizontal reference lines.
func RenderChart(w io.Writer, format Format, rep *analysis.Report) error {
	provider, err := format.provider()
	if err != nil {
		return err
	}
	if rep.NoResults() {
		return common.ErrNoSamples
	}

	n := len(rep.Samples)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range rep.Samples {
		xs[i] = float64(i + 1)
		ys[i] = s.Value
	}
	// go-chart needs at least two x values
	if n == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	label := rep.Metric.Label()
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 2,
				DotColor:    chart.ColorBlue,
				DotWidth:    4,
			},
		},
	}

	lo, hi := bounds(ys)
	xMin, xMax := xs[0], xs[len(xs)-1]
	if rep.Summary != nil {
		l := rep.Summary.Limits
		series = append(series,
			limitLine("USL", l.USL, xMin, xMax, chart.ColorRed),
			limitLine("LSL", l.LSL, xMin, xMax, chart.ColorOrange),
		)
		lo = math.Min(lo, math.Min(l.USL, l.LSL))
		hi = math.Max(hi, math.Max(l.USL, l.LSL))
	}
	lo, hi = padRange(lo, hi)

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s per sample", label),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Sample Index",
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:          indexTicks(n),
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		YAxis: chart.YAxis{
			Name:  rep.Metric.AxisTitle(),
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(provider, w); err != nil {
		return common.WrapError(err, "render chart")
	}
	return nil
}

func limitLine(name string, y, x0, x1 float64, col drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    fmt.Sprintf("%s %s", name, formatFloat(y)),
		XValues: []float64{x0, x1},
		YValues: []float64{y, y},
		Style: chart.Style{
			StrokeColor:     col,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{6, 4},
		},
	}
}

func bounds(ys []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	return lo, hi
}

// padRange widens [lo, hi] by 5% on each side, or by one unit around a
// constant value, so the plot never collapses to a zero-height range.
func padRange(lo, hi float64) (float64, float64) {
	if hi <= lo {
		d := math.Max(math.Abs(lo)*0.05, 1)
		return lo - d, hi + d
	}
	d := (hi - lo) * 0.05
	return lo - d, hi + d
}

// indexTicks labels every sample index for small sets and about ten evenly
// spaced indices otherwise.
func indexTicks(n int) []chart.Tick {
	if n < 2 {
		return []chart.Tick{{Value: 1, Label: "1"}, {Value: 2, Label: ""}}
	}
	step := 1
	if n > 20 {
		step = int(math.Ceil(float64(n) / 10))
	}
	var ticks []chart.Tick
	for i := 1; i <= n; i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: fmt.Sprint(i)})
	}
	if last := ticks[len(ticks)-1]; last.Value != float64(n) {
		ticks = append(ticks, chart.Tick{Value: float64(n), Label: fmt.Sprint(n)})
	}
	return ticks
}
