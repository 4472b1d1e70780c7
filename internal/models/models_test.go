package models

import (
	"testing"
	"time"
)

func TestWeeklyPlanProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		goal      int
		want      float64
	}{
		{
			name:      "halfway",
			completed: 75,
			goal:      150,
			want:      50.0,
		},
		{
			name:      "goal reached",
			completed: 150,
			goal:      150,
			want:      100.0,
		},
		{
			name:      "over goal capped at 100",
			completed: 300,
			goal:      150,
			want:      100.0,
		},
		{
			name:      "zero goal",
			completed: 40,
			goal:      0,
			want:      0.0,
		},
		{
			name:      "nothing done",
			completed: 0,
			goal:      150,
			want:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := WeeklyPlan{
				CompletedMinutes:  tt.completed,
				WeeklyGoalMinutes: tt.goal,
			}
			if got := plan.ProgressPercentage(); got != tt.want {
				t.Errorf("ProgressPercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyPlanIsOnTrack(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		goal      int
		want      bool
	}{
		{
			name:      "well ahead",
			completed: 140,
			goal:      150,
			want:      true,
		},
		{
			name:      "exactly 80 percent",
			completed: 120,
			goal:      150,
			want:      true,
		},
		{
			name:      "just under 80 percent",
			completed: 119,
			goal:      150,
			want:      false,
		},
		{
			name:      "zero goal never on track",
			completed: 60,
			goal:      0,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := WeeklyPlan{
				CompletedMinutes:  tt.completed,
				WeeklyGoalMinutes: tt.goal,
			}
			if got := plan.IsOnTrack(); got != tt.want {
				t.Errorf("IsOnTrack() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		day       time.Time
		wantStart string
		wantEnd   string
	}{
		{
			name:      "wednesday",
			day:       time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
			wantStart: "2025-03-10",
			wantEnd:   "2025-03-16",
		},
		{
			name:      "monday is its own week start",
			day:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantStart: "2025-03-10",
			wantEnd:   "2025-03-16",
		},
		{
			name:      "sunday belongs to the previous monday",
			day:       time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC),
			wantStart: "2025-03-10",
			wantEnd:   "2025-03-16",
		},
		{
			name:      "week spanning month boundary",
			day:       time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
			wantStart: "2025-03-31",
			wantEnd:   "2025-04-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekBounds(tt.day)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("week start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("week end = %s, want %s", got, tt.wantEnd)
			}
			if start.Weekday() != time.Monday {
				t.Errorf("week start weekday = %v, want Monday", start.Weekday())
			}
			if end.Weekday() != time.Sunday {
				t.Errorf("week end weekday = %v, want Sunday", end.Weekday())
			}
		})
	}
}

func TestAIExerciseIsActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		completed bool
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "open and not expired",
			completed: false,
			expiresAt: now.Add(24 * time.Hour),
			want:      true,
		},
		{
			name:      "completed exercises are inactive",
			completed: true,
			expiresAt: now.Add(24 * time.Hour),
			want:      false,
		},
		{
			name:      "expired exercises are inactive",
			completed: false,
			expiresAt: now.Add(-time.Minute),
			want:      false,
		},
		{
			name:      "expiry instant is inactive",
			completed: false,
			expiresAt: now,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := AIExercise{
				IsCompleted: tt.completed,
				ExpiresAt:   tt.expiresAt,
			}
			if got := e.IsActive(now); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseGeneratedExerciseType(t *testing.T) {
	for _, valid := range GeneratedExerciseTypes {
		got, err := ParseGeneratedExerciseType(string(valid))
		if err != nil {
			t.Errorf("ParseGeneratedExerciseType(%q) unexpected error: %v", valid, err)
		}
		if got != valid {
			t.Errorf("ParseGeneratedExerciseType(%q) = %q", valid, got)
		}
	}

	for _, invalid := range []string{"", "poem", "SENTENCE", "tongue-twister"} {
		if _, err := ParseGeneratedExerciseType(invalid); err == nil {
			t.Errorf("ParseGeneratedExerciseType(%q) expected error", invalid)
		}
	}
}
