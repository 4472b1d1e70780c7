package service

import (
	"testing"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func TestWeeklyGoals(t *testing.T) {
	tests := []struct {
		name       string
		difficulty string
		minutes    int
		bodyGoal   int
		speechGoal int
	}{
		{"beginner", models.DifficultyBeginner, 70, 5, 10},
		{"intermediate", models.DifficultyIntermediate, 105, 7, 14},
		{"advanced", models.DifficultyAdvanced, 140, 10, 21},
		{"unknown defaults to intermediate", "expert", 105, 7, 14},
		{"empty defaults to intermediate", "", 105, 7, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, bodyGoal, speechGoal := weeklyGoals(tt.difficulty)
			if minutes != tt.minutes || bodyGoal != tt.bodyGoal || speechGoal != tt.speechGoal {
				t.Errorf("weeklyGoals(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.difficulty, minutes, bodyGoal, speechGoal, tt.minutes, tt.bodyGoal, tt.speechGoal)
			}
		})
	}
}

func TestEstimateCompletion(t *testing.T) {
	tests := []struct {
		name          string
		plan          models.WeeklyPlan
		daysRemaining int
		want          string
	}{
		{
			name:          "already completed",
			plan:          models.WeeklyPlan{IsCompleted: true},
			daysRemaining: 3,
			want:          "Completed this week!",
		},
		{
			name:          "not started",
			plan:          models.WeeklyPlan{WeeklyGoalMinutes: 105},
			daysRemaining: 5,
			want:          "Not started yet",
		},
		{
			name: "fast pace finishes in time",
			plan: models.WeeklyPlan{
				WeeklyGoalMinutes: 105,
				CompletedMinutes:  60,
			},
			daysRemaining: 4,
			want:          "On track to complete this week",
		},
		{
			name: "slow pace needs more time",
			plan: models.WeeklyPlan{
				WeeklyGoalMinutes: 105,
				CompletedMinutes:  10,
			},
			daysRemaining: 1,
			want:          "May need additional time to complete goals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateCompletion(&tt.plan, tt.daysRemaining); got != tt.want {
				t.Errorf("estimateCompletion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysUntilWeekEnd(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{
			name: "monday has six days left",
			now:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			want: 6,
		},
		{
			name: "thursday has three days left",
			now:  time.Date(2025, 3, 13, 23, 0, 0, 0, time.UTC),
			want: 3,
		},
		{
			name: "sunday has none",
			now:  time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysUntilWeekEnd(tt.now); got != tt.want {
				t.Errorf("daysUntilWeekEnd(%v) = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

func TestSummarizePlan(t *testing.T) {
	now := time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC)
	plan := &models.WeeklyPlan{
		WeeklyGoalMinutes:   100,
		CompletedMinutes:    85,
		BodyExerciseGoal:    7,
		BodyExercisesDone:   3,
		SpeechExerciseGoal:  14,
		SpeechExercisesDone: 7,
	}

	summary := summarizePlan(plan, now)
	if summary.TotalProgress != 85.0 {
		t.Errorf("TotalProgress = %v, want 85", summary.TotalProgress)
	}
	if summary.SpeechExercisesProgress != 50.0 {
		t.Errorf("SpeechExercisesProgress = %v, want 50", summary.SpeechExercisesProgress)
	}
	if !summary.IsOnTrack {
		t.Error("plan at 85 percent should be on track")
	}
	if summary.DaysRemaining != 3 {
		t.Errorf("DaysRemaining = %d, want 3", summary.DaysRemaining)
	}
}

func TestSummarizeClosingWeek(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer mockDB.Close()

	db := &database.DB{DB: mockDB, Dialect: database.NewSQLiteDialect()}
	svc := NewWeeklyPlanService(
		repository.NewWeeklyPlanRepository(db),
		repository.NewProgressRepository(db),
		repository.NewBodyExerciseRepository(db),
		zap.NewNop(),
	)

	// Monday 2025-03-17 just after midnight; the closing week is 03-10..03-16
	now := time.Date(2025, 3, 17, 0, 5, 0, 0, time.UTC)
	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM weekly_plans WHERE week_start = ?").
		WithArgs("2025-03-10").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "week_start", "week_end", "weekly_goal_minutes", "completed_minutes",
			"body_exercise_goal", "body_exercises_done", "speech_exercise_goal", "speech_exercises_done",
			"is_completed", "weekly_streak", "created_at", "updated_at",
		}).AddRow(1, 7, weekStart, weekEnd, 105, 90, 7, 5, 14, 12, false, 2, weekStart, weekEnd))

	mock.ExpectQuery("SELECT (.+) FROM user_progress").
		WithArgs(int64(7), "2025-03-10", "2025-03-16").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "practice_date", "total_practice_time", "exercises_completed",
			"average_score", "reading_exercises", "repetition_exercises", "conversation_practice",
			"breathing_exercises", "points_earned", "goals_met",
		}).
			AddRow(1, 7, weekStart, 45, 9, 82.5, 3, 4, 2, 1, 40, true).
			AddRow(2, 7, weekStart.AddDate(0, 0, 2), 45, 8, 79.0, 2, 4, 2, 1, 35, false))

	summaries, err := svc.SummarizeClosingWeek(now)
	if err != nil {
		t.Fatalf("SummarizeClosingWeek() error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}

	got := summaries[0]
	if got.UserID != 7 {
		t.Errorf("UserID = %d, want 7", got.UserID)
	}
	if got.MinutesPracticed != 90 {
		t.Errorf("MinutesPracticed = %d, want 90", got.MinutesPracticed)
	}
	if got.ExercisesCompleted != 17 {
		t.Errorf("ExercisesCompleted = %d, want 17 (12 speech + 5 body)", got.ExercisesCompleted)
	}
	if got.PointsEarned != 75 {
		t.Errorf("PointsEarned = %d, want 75", got.PointsEarned)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
