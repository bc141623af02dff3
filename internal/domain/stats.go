package domain

import "time"

// DateLayout is the key format for mastery history samples
const DateLayout = "2006-01-02"

// MasterySample is one day of mastery history
type MasterySample struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserStats holds the aggregate counters shown on the stats view.
// No field is ever decremented.
type UserStats struct {
	DailyStreak        int             `json:"dailyStreak"`
	TotalNodesMastered int             `json:"totalNodesMastered"`
	TotalFocusHours    float64         `json:"totalFocusHours"`
	MasteryHistory     []MasterySample `json:"masteryHistory"`
	LastActiveDate     string          `json:"lastActiveDate,omitempty"`
}

// NewUserStats returns zeroed stats
func NewUserStats() UserStats {
	return UserStats{MasteryHistory: []MasterySample{}}
}

// RecordMastery counts a transition into mastered on the given day
func (s *UserStats) RecordMastery(now time.Time) {
	s.TotalNodesMastered++
	s.mergeSample(now.Format(DateLayout))
	s.touch(now)
}

func (s *UserStats) mergeSample(date string) {
	for i := range s.MasteryHistory {
		if s.MasteryHistory[i].Date == date {
			s.MasteryHistory[i].Count++
			return
		}
	}
	s.MasteryHistory = append(s.MasteryHistory, MasterySample{Date: date, Count: 1})
}

// RecordSession credits one completed work interval of durationSeconds
func (s *UserStats) RecordSession(durationSeconds int, now time.Time) {
	s.TotalFocusHours += float64(durationSeconds) / 3600
	s.touch(now)
}

// touch updates the daily streak on the first engagement of a day
func (s *UserStats) touch(now time.Time) {
	today := now.Format(DateLayout)
	if s.LastActiveDate == today {
		return
	}
	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)
	if s.LastActiveDate == yesterday {
		s.DailyStreak++
	} else {
		s.DailyStreak = 1
	}
	s.LastActiveDate = today
}

// RoadmapSummary is derived from the node collection for the stats view
type RoadmapSummary struct {
	Total          int
	Signal         int
	Noise          int
	Mastered       int
	InProgress     int
	Locked         int
	PomodorosSpent int
}

// Summarize derives counts from nodes
func Summarize(nodes []*LearningNode) RoadmapSummary {
	var s RoadmapSummary
	for _, n := range nodes {
		s.Total++
		if n.Type == NodeTypeSignal {
			s.Signal++
		} else {
			s.Noise++
		}
		switch n.Status {
		case StatusMastered:
			s.Mastered++
		case StatusInProgress:
			s.InProgress++
		case StatusLocked:
			s.Locked++
		}
		s.PomodorosSpent += n.PomodorosSpent
	}
	return s
}
