package constants

import (
	"strings"
)

// Metric selects which scalar is pulled out of each report.
type Metric string

const (
	XMaximum Metric = "X-Maximum"
	YMaximum Metric = "Y-Maximum"
)

var allMetrics = []Metric{
	XMaximum,
	YMaximum,
}

// Label is the text printed in the report in front of the value.
func (m Metric) Label() string {
	return string(m)
}

// Unit is the engineering unit of the metric.
func (m Metric) Unit() string {
	switch m {
	case XMaximum:
		return "mm"
	case YMaximum:
		return "N"
	default:
		return ""
	}
}

// AxisTitle is "<label> [<unit>]".
func (m Metric) AxisTitle() string {
	return m.Label() + " [" + m.Unit() + "]"
}

// Valid reports whether m is one of the known metrics.
func (m Metric) Valid() bool {
	for _, known := range allMetrics {
		if m == known {
			return true
		}
	}
	return false
}

func AllMetrics() []Metric {
	out := make([]Metric, len(allMetrics))
	copy(out, allMetrics)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allMetrics))
	for i, m := range allMetrics {
		result[i] = string(m)
	}
	return result
}

// ParseMetric canonicalizes user input into a Metric.
func ParseMetric(input string) (Metric, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]Metric{
		"x":         XMaximum,
		"xmax":      XMaximum,
		"x-max":     XMaximum,
		"x_maximum": XMaximum,
		"xmaximum":  XMaximum,
		"y":         YMaximum,
		"ymax":      YMaximum,
		"y-max":     YMaximum,
		"y_maximum": YMaximum,
		"ymaximum":  YMaximum,
	}
	if m, ok := synonyms[normalized]; ok {
		return m, true
	}

	for _, m := range allMetrics {
		if normalized == strings.ToLower(string(m)) {
			return m, true
		}
	}
	return "", false
}
