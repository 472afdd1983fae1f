package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

const (
	maxBins  = 20
	barWidth = 40
)

// Bin is one bar of a CRE histogram covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Bins groups values into unit-width bins starting at the floor of the
// smallest value. Bins widen so that at most maxBins are produced.
func Bins(values []float64) []Bin {
	if len(values) == 0 {
		return nil
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)

	lo := math.Floor(x[0])
	span := math.Floor(x[len(x)-1]) - lo + 1
	width := math.Max(1, math.Ceil(span/maxBins))
	n := int(math.Ceil(span / width))

	dividers := make([]float64, n+1)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}

	counts := stat.Histogram(nil, dividers, x, nil)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	return bins
}

// Histogram renders values as a text bar chart, one line per bin.
func Histogram(values []float64) string {
	bins := Bins(values)
	if len(bins) == 0 {
		return "  (no morphemes)\n"
	}

	peak := 0
	for _, bin := range bins {
		peak = max(peak, bin.Count)
	}

	var b strings.Builder
	for _, bin := range bins {
		label := fmt.Sprintf("%g", bin.Lo)
		if bin.Hi-bin.Lo > 1 {
			label = fmt.Sprintf("%g-%g", bin.Lo, bin.Hi-1)
		}
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(bin.Count) * barWidth / float64(peak)))
		}
		if bin.Count > 0 && bar == 0 {
			bar = 1
		}
		fmt.Fprintf(&b, "  %8s | %-*s %d\n", label, barWidth, strings.Repeat("#", bar), bin.Count)
	}
	return b.String()
}
