package fundamentals

import (
	"ChartPulse/internal/domain/models"
)

// Score rates a company's fundamentals on four axes from the optional profile
// fields. A missing or unusable field leaves its axis at 0 and still counts
// toward the total, so sparse profiles grade low rather than erroring.
func Score(info *models.CompanyInfo) models.FundamentalStats {
	var s models.FundamentalScores

	if pe := info.TrailingPE; pe != nil && *pe > 0 {
		switch {
		case *pe < 10:
			s.Value = 100
		case *pe < 15:
			s.Value = 80
		case *pe < 25:
			s.Value = 60
		default:
			s.Value = 30
		}
	}

	if g := info.EarningsGrowth; g != nil && *g != 0 {
		switch {
		case *g > 0.2:
			s.Growth = 100
		case *g > 0.1:
			s.Growth = 80
		case *g > 0:
			s.Growth = 60
		default:
			s.Growth = 20
		}
	}

	if roe := info.ReturnOnEquity; roe != nil && *roe != 0 {
		switch {
		case *roe > 0.20:
			s.Profitability = 100
		case *roe > 0.15:
			s.Profitability = 80
		default:
			s.Profitability = 50
		}
	}

	if de := info.DebtToEquity; de != nil && *de != 0 {
		switch {
		case *de < 50:
			s.Stability = 100
		case *de < 100:
			s.Stability = 80
		case *de < 200:
			s.Stability = 50
		default:
			s.Stability = 20
		}
	}

	total := float64(s.Value+s.Growth+s.Profitability+s.Stability) / 4
	return models.FundamentalStats{
		Scores:     s,
		TotalScore: total,
		Grade:      grade(total),
	}
}

func grade(score float64) string {
	switch {
	case score >= 80:
		return "A (excellent)"
	case score >= 70:
		return "B (good)"
	case score >= 60:
		return "C (average)"
	case score >= 50:
		return "D (below average)"
	default:
		return "F (poor)"
	}
}
