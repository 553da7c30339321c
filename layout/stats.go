package layout

import (
	"math"

	"github.com/tsawler/paleotext/model"
)

// ComputeStats aggregates a block's per-line statistics into block-level
// statistics for each candidate delimiter.
func ComputeStats(b *model.Block) model.BlockStats {
	n := len(b.Lines)
	tab := make([]int, 0, n)
	multi := make([]int, 0, n)
	single := make([]int, 0, n)
	numTab := make([]float64, 0, n)
	numMulti := make([]float64, 0, n)
	numSingle := make([]float64, 0, n)
	lens := make([]float64, 0, n)

	for _, ln := range b.Lines {
		tab = append(tab, ln.Tab.Count)
		multi = append(multi, ln.MultiSpace.Count)
		single = append(single, ln.SingleSpace.Count)
		numTab = append(numTab, ln.Tab.NumericRatio)
		numMulti = append(numMulti, ln.MultiSpace.NumericRatio)
		numSingle = append(numSingle, ln.SingleSpace.NumericRatio)
		lens = append(lens, float64(ln.Length))
	}

	meanLen := mean(lens)
	return model.BlockStats{
		Tab:         delimiterStats(tab, numTab),
		MultiSpace:  delimiterStats(multi, numMulti),
		SingleSpace: delimiterStats(single, numSingle),
		LineCount:   n,
		MeanLineLen: meanLen,
		LineLenCV:   cv(lens, meanLen),
	}
}

func delimiterStats(counts []int, ratios []float64) model.DelimiterStats {
	vals := make([]float64, len(counts))
	for i, c := range counts {
		vals[i] = float64(c)
	}
	m := mean(vals)
	return model.DelimiterStats{
		Mean:         m,
		CV:           cv(vals, m),
		Mode:         mode(counts),
		NumericRatio: mean(ratios),
	}
}

// mean computes the arithmetic mean of a slice of float64 values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance computes the sample variance of a slice of float64 values.
// Fewer than two samples yields 0.
func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values)-1)
}

// cv computes the coefficient of variation (standard deviation over
// mean), defined as 0 when the mean is 0.
func cv(values []float64, m float64) float64 {
	if len(values) == 0 || m == 0 {
		return 0
	}
	return math.Sqrt(variance(values)) / m
}

// mode returns the most frequent value, breaking ties in favor of the
// larger value. Returns 0 for an empty slice.
func mode(values []int) int {
	if len(values) == 0 {
		return 0
	}
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v > best) {
			best, bestCount = v, c
		}
	}
	return best
}
