package analysis

import (
	"math"
	"sort"
)

// Series helpers treat NaN as "no value yet". Rolling aggregates require a
// full window of defined values; a NaN inside the window contaminates the
// output at that position.

func undef() float64 { return math.NaN() }

func defined(x float64) bool { return !math.IsNaN(x) }

// RollingMean computes a simple moving average over window. The first
// window-1 entries are NaN.
func RollingMean(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 || len(xs) < window {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if !defined(xs[j]) {
				ok = false
				break
			}
			sum += xs[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RollingStd computes a rolling population standard deviation over window.
func RollingStd(xs []float64, window int) []float64 {
	out := nanSlice(len(xs))
	if window <= 0 || len(xs) < window {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		sum, sum2 := 0.0, 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if !defined(xs[j]) {
				ok = false
				break
			}
			sum += xs[j]
			sum2 += xs[j] * xs[j]
		}
		if !ok {
			continue
		}
		n := float64(window)
		mean := sum / n
		variance := sum2/n - mean*mean
		if variance < 0 {
			variance = 0
		}
		out[i] = math.Sqrt(variance)
	}
	return out
}

// EMA computes an exponential moving average with smoothing 2/(span+1),
// seeded by the first defined value. NaN inputs leave the state untouched
// and produce NaN at that position.
func EMA(xs []float64, span int) []float64 {
	out := nanSlice(len(xs))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	state := math.NaN()
	for i, x := range xs {
		if !defined(x) {
			continue
		}
		if !defined(state) {
			state = x
		} else {
			state = alpha*x + (1-alpha)*state
		}
		out[i] = state
	}
	return out
}

// Mean computes the arithmetic mean of the defined entries; NaN when none.
func Mean(xs []float64) float64 {
	sum, n := 0.0, 0
	for _, x := range xs {
		if defined(x) {
			sum += x
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Stdev computes the sample standard deviation of the defined entries; NaN
// when fewer than two.
func Stdev(xs []float64) float64 {
	sum, n := 0.0, 0
	for _, x := range xs {
		if defined(x) {
			sum += x
			n++
		}
	}
	if n < 2 {
		return math.NaN()
	}
	mean := sum / float64(n)
	ss := 0.0
	for _, x := range xs {
		if defined(x) {
			d := x - mean
			ss += d * d
		}
	}
	return math.Sqrt(ss / float64(n-1))
}

// Percentile computes the p-th percentile (0..100) of the defined entries
// with linear interpolation; NaN when empty.
func Percentile(xs []float64, p float64) float64 {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if defined(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	if p <= 0 {
		return vals[0]
	}
	if p >= 100 {
		return vals[len(vals)-1]
	}
	rank := p / 100 * float64(len(vals)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return vals[lo]
	}
	frac := rank - float64(lo)
	return vals[lo]*(1-frac) + vals[hi]*frac
}

// LinearSlope fits y = a + b*x over the defined entries (x = index) and
// returns b; NaN when fewer than two points.
func LinearSlope(xs []float64) float64 {
	var sx, sy, sxx, sxy float64
	n := 0
	for i, y := range xs {
		if !defined(y) {
			continue
		}
		x := float64(i)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	fn := float64(n)
	den := fn*sxx - sx*sx
	if den == 0 {
		return math.NaN()
	}
	return (fn*sxy - sx*sy) / den
}

// Tail returns the trailing n entries (the whole slice when shorter).
func Tail(xs []float64, n int) []float64 {
	if n <= 0 || len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Nullify converts a NaN-marked series into a pointer slice with explicit
// nulls for serialization.
func Nullify(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i, x := range xs {
		if defined(x) {
			v := x
			out[i] = &v
		}
	}
	return out
}
