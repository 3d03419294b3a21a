// Package parsefields pulls the selected metric value out of report text.
package parsefields

import (
	"regexp"
	"strconv"

	"github.com/joseph-ayodele/mpstats/constants"
)

// numberPattern captures an optionally signed decimal: "3", "-3.25", "+.5".
const numberPattern = `([-+]?\d*\.?\d+)`

// gapPattern is the run between label and number. RE2's \s is ASCII only, so
// Unicode spaces (no-break, thin) and \v are listed explicitly.
const gapPattern = `[:=]?[\s\p{Z}\v]*`

var patterns = func() map[constants.Metric]*regexp.Regexp {
	out := make(map[constants.Metric]*regexp.Regexp)
	for _, m := range constants.AllMetrics() {
		out[m] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m.Label()) + gapPattern + numberPattern)
	}
	return out
}()

// Extract returns the first value labelled with the metric, scanning the
// text top to bottom. ok is false when the label never appears with a number.
func Extract(text string, m constants.Metric) (value float64, ok bool) {
	if !m.Valid() {
		return 0, false
	}
	re := patterns[m]
	match := re.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		// only reachable on overflow-sized literals
		return 0, false
	}
	return v, true
}
