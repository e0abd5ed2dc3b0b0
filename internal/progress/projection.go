// Package progress summarizes weigh-in series recorded after an assessment
// and projects when the target weight will be reached on the current trend.
package progress

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// CheckIn is one recorded body weight.
type CheckIn struct {
	RecordedAt time.Time `json:"recorded_at"`
	WeightKG   float64   `json:"weight_kg"`
}

// Summary describes the observed rate of change.
type Summary struct {
	Entries              int     `json:"entries"`
	FirstWeightKG        float64 `json:"first_weight_kg"`
	LastWeightKG         float64 `json:"last_weight_kg"`
	MeanWeeklyChangeKG   float64 `json:"mean_weekly_change_kg"`
	MedianWeeklyChangeKG float64 `json:"median_weekly_change_kg"`
}

// Projection is the fitted trend and, when the trend approaches the target,
// the projected completion.
type Projection struct {
	SlopeKGPerWeek    float64    `json:"slope_kg_per_week"`
	OnTrack           bool       `json:"on_track"`
	WeeksRemaining    *float64   `json:"weeks_remaining,omitempty"`
	ProjectedGoalDate *time.Time `json:"projected_goal_date,omitempty"`
}

// minCheckIns is the smallest series a rate or trend can be fitted on.
const minCheckIns = 2

func sorted(checkIns []CheckIn) []CheckIn {
	s := make([]CheckIn, len(checkIns))
	copy(s, checkIns)
	sort.Slice(s, func(i, j int) bool { return s[i].RecordedAt.Before(s[j].RecordedAt) })
	return s
}

// Summarize computes per-interval weekly change rates across the series.
func Summarize(checkIns []CheckIn) (Summary, error) {
	if len(checkIns) < minCheckIns {
		return Summary{}, fmt.Errorf("need at least %d check-ins, have %d", minCheckIns, len(checkIns))
	}
	s := sorted(checkIns)

	rates := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		weeks := s[i].RecordedAt.Sub(s[i-1].RecordedAt).Hours() / 24 / 7
		if weeks <= 0 {
			continue
		}
		rates = append(rates, (s[i].WeightKG-s[i-1].WeightKG)/weeks)
	}
	if len(rates) == 0 {
		return Summary{}, fmt.Errorf("check-ins span no measurable time")
	}

	mean, err := stats.Mean(rates)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(rates)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Entries:              len(s),
		FirstWeightKG:        s[0].WeightKG,
		LastWeightKG:         s[len(s)-1].WeightKG,
		MeanWeeklyChangeKG:   mean,
		MedianWeeklyChangeKG: median,
	}, nil
}

// Project fits a linear trend over the series and projects when targetKG is
// reached. A trend moving away from the target (or flat) yields
// OnTrack=false with no projected date.
func Project(checkIns []CheckIn, targetKG float64) (Projection, error) {
	if len(checkIns) < minCheckIns {
		return Projection{}, fmt.Errorf("need at least %d check-ins, have %d", minCheckIns, len(checkIns))
	}
	s := sorted(checkIns)

	origin := s[0].RecordedAt
	xs := make([]float64, len(s))
	ys := make([]float64, len(s))
	for i, c := range s {
		xs[i] = c.RecordedAt.Sub(origin).Hours() / 24 / 7 // weeks since first
		ys[i] = c.WeightKG
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	last := s[len(s)-1]
	needsLoss := targetKG < last.WeightKG
	movingTowards := (needsLoss && beta < 0) || (!needsLoss && beta > 0)
	if !movingTowards || beta == 0 {
		return Projection{SlopeKGPerWeek: beta, OnTrack: false}, nil
	}

	// Week index (from the first check-in) where the fitted line crosses the
	// target, converted to weeks remaining after the latest check-in.
	crossing := (targetKG - alpha) / beta
	remaining := crossing - xs[len(xs)-1]
	if remaining < 0 {
		remaining = 0
	}
	date := last.RecordedAt.Add(time.Duration(remaining * 7 * 24 * float64(time.Hour)))

	return Projection{
		SlopeKGPerWeek:    beta,
		OnTrack:           true,
		WeeksRemaining:    &remaining,
		ProjectedGoalDate: &date,
	}, nil
}
