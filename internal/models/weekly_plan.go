package models

import "time"

// WeeklyPlan tracks one user's practice goals for a Monday-to-Sunday week
type WeeklyPlan struct {
	ID                     int64     `json:"id"`
	UserID                 int64     `json:"userId"`
	WeekStart              time.Time `json:"weekStartDate"`
	WeekEnd                time.Time `json:"weekEndDate"`
	WeeklyGoalMinutes      int       `json:"weeklyGoalMinutes"`
	CompletedMinutes       int       `json:"completedMinutes"`
	BodyExerciseGoal       int       `json:"bodyExerciseGoal"`
	BodyExercisesDone      int       `json:"bodyExercisesCompleted"`
	SpeechExerciseGoal     int       `json:"speechExerciseGoal"`
	SpeechExercisesDone    int       `json:"speechExercisesCompleted"`
	IsCompleted            bool      `json:"isCompleted"`
	WeeklyStreak           int       `json:"weeklyStreak"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func goalPercentage(done, goal int) float64 {
	if goal == 0 {
		return 0.0
	}
	pct := float64(done) / float64(goal) * 100
	if pct > 100 {
		return 100.0
	}
	return pct
}

// ProgressPercentage reports completed minutes against the weekly goal, capped at 100
func (p *WeeklyPlan) ProgressPercentage() float64 {
	return goalPercentage(p.CompletedMinutes, p.WeeklyGoalMinutes)
}

// BodyProgressPercentage reports body exercises done against their goal
func (p *WeeklyPlan) BodyProgressPercentage() float64 {
	return goalPercentage(p.BodyExercisesDone, p.BodyExerciseGoal)
}

// SpeechProgressPercentage reports speech exercises done against their goal
func (p *WeeklyPlan) SpeechProgressPercentage() float64 {
	return goalPercentage(p.SpeechExercisesDone, p.SpeechExerciseGoal)
}

// IsOnTrack reports whether the plan has reached 80% of its goal
func (p *WeeklyPlan) IsOnTrack() bool {
	return p.ProgressPercentage() >= 80.0
}

// WeekBounds returns the Monday and Sunday of the week containing t
func WeekBounds(t time.Time) (time.Time, time.Time) {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	start := t.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
