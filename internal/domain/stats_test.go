package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserStats_RecordMastery(t *testing.T) {
	s := NewUserStats()
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	s.RecordMastery(day1)
	s.RecordMastery(day1.Add(2 * time.Hour))
	s.RecordMastery(day2)

	assert.Equal(t, 3, s.TotalNodesMastered)
	assert.Equal(t, []MasterySample{
		{Date: "2026-03-01", Count: 2},
		{Date: "2026-03-02", Count: 1},
	}, s.MasteryHistory)
}

func TestUserStats_RecordSession(t *testing.T) {
	s := NewUserStats()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s.RecordSession(WorkSeconds, now)
	s.RecordSession(WorkSeconds, now)

	assert.InDelta(t, 50.0/60.0, s.TotalFocusHours, 1e-9)
}

func TestUserStats_DailyStreak(t *testing.T) {
	tests := []struct {
		name       string
		days       []int // day offsets of engagement
		wantStreak int
	}{
		{name: "single day", days: []int{0, 0, 0}, wantStreak: 1},
		{name: "consecutive days", days: []int{0, 1, 2}, wantStreak: 3},
		{name: "gap resets", days: []int{0, 1, 3}, wantStreak: 1},
		{name: "gap then run", days: []int{0, 2, 3, 4}, wantStreak: 3},
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewUserStats()
			for _, d := range tt.days {
				s.RecordSession(60, base.AddDate(0, 0, d))
			}
			assert.Equal(t, tt.wantStreak, s.DailyStreak)
		})
	}
}

func TestSummarize(t *testing.T) {
	nodes := testRoots(3)
	nodes[1].Type = NodeTypeNoise
	nodes[2].Status = StatusMastered
	nodes[0].PomodorosSpent = 3

	s := Summarize(nodes)
	assert.Equal(t, RoadmapSummary{
		Total:          3,
		Signal:         2,
		Noise:          1,
		Mastered:       1,
		Locked:         1,
		PomodorosSpent: 3,
	}, s)
}
