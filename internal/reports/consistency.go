package reports

import "math"

// ComputeConsistency scans statuses in chronological order and scores the
// student: 70% weight on the overall Present ratio, 30% on the longest
// unbroken Present run relative to total records. Capped at 100.
func ComputeConsistency(statuses []string) ConsistencyResult {
	if len(statuses) == 0 {
		return ConsistencyResult{}
	}

	var currentStreak, maxStreak, presentCount int
	for _, st := range statuses {
		if st == "Present" {
			currentStreak++
			presentCount++
			if currentStreak > maxStreak {
				maxStreak = currentStreak
			}
		} else {
			currentStreak = 0
		}
	}

	total := len(statuses)
	overallPct := float64(presentCount) / float64(total) * 100
	streakPct := float64(maxStreak) / float64(total) * 100
	score := int(math.Round(overallPct*0.7 + streakPct*0.3))
	if score > 100 {
		score = 100
	}

	return ConsistencyResult{
		Score:         score,
		CurrentStreak: currentStreak,
		MaxStreak:     maxStreak,
		TotalDays:     total,
		PresentDays:   presentCount,
	}
}

// RiskLabel classifies a projected percentage against the threshold.
func RiskLabel(projectedPct, threshold float64) string {
	if projectedPct < threshold {
		return "High"
	}
	return "Medium"
}
