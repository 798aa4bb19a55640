package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     ConsistencyResult
	}{
		{
			name:     "no records",
			statuses: nil,
			want:     ConsistencyResult{},
		},
		{
			name:     "broken streak",
			statuses: []string{"Present", "Present", "Absent", "Present", "Present", "Present"},
			// present=5/6 -> 83.33, longest run 3/6 -> 50; 0.7*83.33 + 0.3*50 = 73
			want: ConsistencyResult{Score: 73, CurrentStreak: 3, MaxStreak: 3, TotalDays: 6, PresentDays: 5},
		},
		{
			name:     "all present",
			statuses: []string{"Present", "Present", "Present", "Present"},
			want:     ConsistencyResult{Score: 100, CurrentStreak: 4, MaxStreak: 4, TotalDays: 4, PresentDays: 4},
		},
		{
			name:     "all absent",
			statuses: []string{"Absent", "Absent", "Absent"},
			want:     ConsistencyResult{Score: 0, CurrentStreak: 0, MaxStreak: 0, TotalDays: 3, PresentDays: 0},
		},
		{
			name:     "half day breaks the run",
			statuses: []string{"Present", "Half-day", "Present"},
			// present=2/3 -> 66.67, longest run 1/3 -> 33.33; 0.7*66.67 + 0.3*33.33 = 56.67 -> 57
			want: ConsistencyResult{Score: 57, CurrentStreak: 1, MaxStreak: 1, TotalDays: 3, PresentDays: 2},
		},
		{
			name:     "streak reset keeps earlier maximum",
			statuses: []string{"Present", "Present", "Present", "Absent", "Present"},
			want:     ConsistencyResult{Score: 74, CurrentStreak: 1, MaxStreak: 3, TotalDays: 5, PresentDays: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeConsistency(tt.statuses))
		})
	}
}

func TestRiskLabel(t *testing.T) {
	assert.Equal(t, "High", RiskLabel(74.9, 75))
	assert.Equal(t, "Medium", RiskLabel(75.0, 75))
	assert.Equal(t, "Medium", RiskLabel(80.2, 75))
}
