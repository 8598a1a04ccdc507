package analysis

import (
	"math"

	"ChartPulse/internal/domain/models"
	"ChartPulse/pkg/util"
)

const (
	tradingDaysPerYear = 252
	riskFreeRate       = 0.02
	betaMinOverlap     = 30
)

// AnalyzeRisk computes historical risk statistics from per-bar returns. Beta
// is computed only when benchmark bars overlap the security on at least 30
// timestamps. Fields that cannot be derived stay null; the struct itself is
// always returned.
func AnalyzeRisk(bars []models.Bar, benchmark []models.Bar) models.RiskMetrics {
	var out models.RiskMetrics
	rets := models.Returns(bars)
	if len(rets) == 0 {
		return out
	}

	if mdd := maxDrawdown(rets); defined(mdd) {
		v := mdd * 100
		out.MaxDrawdown = &v
	}

	mean := Mean(rets)
	std := Stdev(rets)
	if defined(mean) && defined(std) {
		annRet := mean * tradingDaysPerYear
		annVol := std * math.Sqrt(tradingDaysPerYear)

		r := annRet * 100
		out.AnnualizedReturn = &r
		v := annVol * 100
		out.AnnualizedVolatility = &v

		sharpe := 0.0
		if annVol > 0 {
			sharpe = (annRet - riskFreeRate) / annVol
		}
		out.SharpeRatio = &sharpe
	}

	if wr := winRate(rets); defined(wr) {
		out.WinRate = &wr
	}

	if beta, ok := computeBeta(bars, benchmark); ok {
		out.Beta = &beta
	}
	return out
}

// maxDrawdown walks the cumulative return curve against its running maximum
// and returns the deepest trough as a fraction (always <= 0).
func maxDrawdown(rets []float64) float64 {
	cum := 1.0
	peak := 1.0
	worst := 0.0
	seen := false
	for _, r := range rets {
		if !defined(r) {
			continue
		}
		seen = true
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		dd := (cum - peak) / peak
		if dd < worst {
			worst = dd
		}
	}
	if !seen {
		return math.NaN()
	}
	return worst
}

func winRate(rets []float64) float64 {
	pos, n := 0, 0
	for _, r := range rets {
		if !defined(r) {
			continue
		}
		n++
		if r > 0 {
			pos++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return float64(pos) / float64(n) * 100
}

// computeBeta intersects the two series by timestamp day and regresses the
// security's returns on the benchmark's. The gate counts overlapping dates,
// not return pairs, so 30 shared dates are enough.
func computeBeta(bars, benchmark []models.Bar) (float64, bool) {
	if len(benchmark) < 2 || len(bars) < 2 {
		return 0, false
	}
	benchClose := make(map[int64]float64, len(benchmark))
	for _, b := range benchmark {
		if defined(b.Close) {
			benchClose[util.DayKey(b.Timestamp)] = b.Close
		}
	}

	var secPx, benchPx []float64
	for _, b := range bars {
		bc, ok := benchClose[util.DayKey(b.Timestamp)]
		if !ok || !defined(b.Close) {
			continue
		}
		secPx = append(secPx, b.Close)
		benchPx = append(benchPx, bc)
	}
	if len(secPx) < betaMinOverlap {
		return 0, false
	}

	var sec, bench []float64
	for i := 1; i < len(secPx); i++ {
		if secPx[i-1] == 0 || benchPx[i-1] == 0 {
			continue
		}
		sec = append(sec, (secPx[i]-secPx[i-1])/secPx[i-1])
		bench = append(bench, (benchPx[i]-benchPx[i-1])/benchPx[i-1])
	}
	if len(sec) < 2 {
		return 0, false
	}

	meanS, meanB := Mean(sec), Mean(bench)
	cov, varB := 0.0, 0.0
	for i := range sec {
		ds, db := sec[i]-meanS, bench[i]-meanB
		cov += ds * db
		varB += db * db
	}
	if varB == 0 {
		return 0, false
	}
	return cov / varB, true
}
