package progress

import (
	"math"
	"testing"
	"time"
)

func weeklySeries(start float64, weeklyChange float64, weeks int) []CheckIn {
	base := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	series := make([]CheckIn, 0, weeks+1)
	for i := 0; i <= weeks; i++ {
		series = append(series, CheckIn{
			RecordedAt: base.AddDate(0, 0, 7*i),
			WeightKG:   start + weeklyChange*float64(i),
		})
	}
	return series
}

func TestSummarizeSteadyLoss(t *testing.T) {
	s, err := Summarize(weeklySeries(100, -0.5, 6))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Entries != 7 {
		t.Errorf("Entries = %d, want 7", s.Entries)
	}
	if math.Abs(s.MeanWeeklyChangeKG-(-0.5)) > 1e-9 {
		t.Errorf("MeanWeeklyChangeKG = %.3f, want -0.5", s.MeanWeeklyChangeKG)
	}
	if math.Abs(s.MedianWeeklyChangeKG-(-0.5)) > 1e-9 {
		t.Errorf("MedianWeeklyChangeKG = %.3f, want -0.5", s.MedianWeeklyChangeKG)
	}
	if s.FirstWeightKG != 100 || s.LastWeightKG != 97 {
		t.Errorf("endpoints = %.1f/%.1f, want 100/97", s.FirstWeightKG, s.LastWeightKG)
	}
}

func TestSummarizeTooFewCheckIns(t *testing.T) {
	if _, err := Summarize(weeklySeries(100, -0.5, 0)); err == nil {
		t.Error("expected error for single check-in")
	}
}

func TestProjectOnTrack(t *testing.T) {
	// 100 kg losing 0.5 kg/week, targeting 95: 4 weeks beyond the last
	// check-in (at week 6, 97 kg).
	series := weeklySeries(100, -0.5, 6)

	p, err := Project(series, 95)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	if !p.OnTrack {
		t.Fatal("descending series toward a lower target should be on track")
	}
	if math.Abs(p.SlopeKGPerWeek-(-0.5)) > 1e-9 {
		t.Errorf("SlopeKGPerWeek = %.3f, want -0.5", p.SlopeKGPerWeek)
	}
	if p.WeeksRemaining == nil {
		t.Fatal("WeeksRemaining missing")
	}
	if math.Abs(*p.WeeksRemaining-4) > 1e-6 {
		t.Errorf("WeeksRemaining = %.3f, want 4", *p.WeeksRemaining)
	}
	if p.ProjectedGoalDate == nil {
		t.Fatal("ProjectedGoalDate missing")
	}
	wantDate := series[len(series)-1].RecordedAt.AddDate(0, 0, 28)
	if p.ProjectedGoalDate.Sub(wantDate).Abs() > time.Hour {
		t.Errorf("ProjectedGoalDate = %v, want ~%v", p.ProjectedGoalDate, wantDate)
	}
}

func TestProjectNotOnTrack(t *testing.T) {
	t.Run("gaining while targeting loss", func(t *testing.T) {
		p, err := Project(weeklySeries(100, 0.3, 6), 95)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p.OnTrack {
			t.Error("ascending series toward a lower target must not be on track")
		}
		if p.WeeksRemaining != nil || p.ProjectedGoalDate != nil {
			t.Error("off-track projection must omit remaining weeks and date")
		}
	})

	t.Run("flat series", func(t *testing.T) {
		p, err := Project(weeklySeries(100, 0, 6), 95)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p.OnTrack {
			t.Error("flat series must not be on track")
		}
	})
}

func TestProjectTargetAlreadyPassed(t *testing.T) {
	// Last check-in is already below target; remaining clamps to zero.
	p, err := Project(weeklySeries(100, -1, 8), 93)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if !p.OnTrack {
		t.Fatal("should be on track")
	}
	if *p.WeeksRemaining != 0 {
		t.Errorf("WeeksRemaining = %.3f, want 0", *p.WeeksRemaining)
	}
}
