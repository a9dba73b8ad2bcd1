package forecast

import (
	"math"
	"sort"
)

// Stats is the robust-statistics bundle derived from one history window.
// Median/MAD are used instead of mean/stddev because daily cashflow is
// heavy-tailed, and the series is percentile-capped before either is
// computed.
type Stats struct {
	MedianNet       float64
	MAD             float64
	P95Net          float64
	DailyBand       float64
	WeekdayAverages [7]float64 // indexed by time.Weekday, 0 = Sunday
}

// ComputeStats derives the outlier-capped baseline, the variability band and
// the per-weekday seasonal averages from the daily net series.
func ComputeStats(series []DailyNet) Stats {
	abs := make([]float64, len(series))
	nets := make([]float64, len(series))
	for i, d := range series {
		abs[i] = math.Abs(d.Net)
		nets[i] = d.Net
	}

	p95 := Percentile(abs, 0.95)
	capped := CapSeries(nets, p95)

	med := Median(capped)
	mad := MedianAbsoluteDeviation(capped, med)

	stats := Stats{
		MedianNet: med,
		MAD:       mad,
		P95Net:    p95,
		DailyBand: bandMultiplier * mad,
	}

	var sums [7]float64
	var counts [7]int
	for i, d := range series {
		wd := int(d.Date.Weekday())
		sums[wd] += capped[i]
		counts[wd]++
	}
	for wd := 0; wd < 7; wd++ {
		if counts[wd] == 0 {
			// No observations on this weekday, fall back to the global median
			stats.WeekdayAverages[wd] = med
			continue
		}
		stats.WeekdayAverages[wd] = sums[wd] / float64(counts[wd])
	}
	return stats
}

// Percentile returns the p-quantile of values using linear interpolation
// between the two nearest ranks. An empty input yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	idx := float64(len(sorted)-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Median returns the standard median: the middle value, or the average of
// the two middle values on even length. An empty input yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// MedianAbsoluteDeviation returns the median of absolute deviations from the
// given center.
func MedianAbsoluteDeviation(values []float64, center float64) float64 {
	if len(values) == 0 {
		return 0
	}
	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - center)
	}
	return Median(devs)
}

// CapSeries clamps every value to [-bound, +bound]. Capping is idempotent.
func CapSeries(values []float64, bound float64) []float64 {
	capped := make([]float64, len(values))
	for i, v := range values {
		switch {
		case v > bound:
			capped[i] = bound
		case v < -bound:
			capped[i] = -bound
		default:
			capped[i] = v
		}
	}
	return capped
}
