package fundamentals

import (
	"testing"

	"ChartPulse/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func TestScoreTopGrade(t *testing.T) {
	info := &models.CompanyInfo{
		TrailingPE:     fptr(8),
		EarningsGrowth: fptr(0.25),
		ReturnOnEquity: fptr(0.22),
		DebtToEquity:   fptr(40),
	}
	stats := Score(info)
	if stats.Scores.Value != 100 || stats.Scores.Growth != 100 ||
		stats.Scores.Profitability != 100 || stats.Scores.Stability != 100 {
		t.Fatalf("expected perfect scores, got %+v", stats.Scores)
	}
	if stats.TotalScore != 100 {
		t.Fatalf("expected total 100, got %v", stats.TotalScore)
	}
	if stats.Grade != "A (excellent)" {
		t.Fatalf("expected grade A, got %q", stats.Grade)
	}
}

func TestScoreBoundaries(t *testing.T) {
	cases := []struct {
		pe   float64
		want int
	}{
		{9.99, 100},
		{10, 80},
		{14.99, 80},
		{15, 60},
		{24.99, 60},
		{25, 30},
	}
	for _, tc := range cases {
		stats := Score(&models.CompanyInfo{TrailingPE: fptr(tc.pe)})
		if stats.Scores.Value != tc.want {
			t.Fatalf("pe %v: expected value score %d, got %d", tc.pe, tc.want, stats.Scores.Value)
		}
	}
}

func TestScoreNegativeGrowthPenalized(t *testing.T) {
	stats := Score(&models.CompanyInfo{EarningsGrowth: fptr(-0.1)})
	if stats.Scores.Growth != 20 {
		t.Fatalf("expected growth score 20, got %d", stats.Scores.Growth)
	}
}

func TestScoreMissingFieldsGradeLow(t *testing.T) {
	stats := Score(&models.CompanyInfo{})
	if stats.Scores != (models.FundamentalScores{}) {
		t.Fatalf("expected zero scores for empty profile, got %+v", stats.Scores)
	}
	if stats.TotalScore != 0 {
		t.Fatalf("expected total 0, got %v", stats.TotalScore)
	}
	if stats.Grade != "F (poor)" {
		t.Fatalf("expected grade F, got %q", stats.Grade)
	}
}

func TestScoreNonPositivePEIgnored(t *testing.T) {
	stats := Score(&models.CompanyInfo{TrailingPE: fptr(-5)})
	if stats.Scores.Value != 0 {
		t.Fatalf("expected negative pe ignored, got %d", stats.Scores.Value)
	}
}

func TestGradeBands(t *testing.T) {
	cases := []struct {
		total float64
		want  string
	}{
		{85, "A (excellent)"},
		{75, "B (good)"},
		{65, "C (average)"},
		{55, "D (below average)"},
		{45, "F (poor)"},
	}
	for _, tc := range cases {
		if got := grade(tc.total); got != tc.want {
			t.Fatalf("total %v: expected %q, got %q", tc.total, tc.want, got)
		}
	}
}
