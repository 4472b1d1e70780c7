package service

import (
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"go.uber.org/zap"
)

// ProgressService aggregates daily practice records into summaries and trends
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	logger       *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo *repository.ProgressRepository, logger *zap.Logger) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, logger: logger}
}

// ExerciseBreakdown splits today's exercises by practice category
type ExerciseBreakdown struct {
	Reading      int `json:"reading"`
	Repetition   int `json:"repetition"`
	Conversation int `json:"conversation"`
	Breathing    int `json:"breathing"`
}

// ProgressSummaryReport covers today and the trailing seven days
type ProgressSummaryReport struct {
	TodayPracticeTime        int                `json:"todayPracticeTime"`
	TodayExercises           int                `json:"todayExercises"`
	TodayAvgScore            float64            `json:"todayAvgScore"`
	TodayGoalsMet            bool               `json:"todayGoalsMet"`
	TodayPoints              int                `json:"todayPoints"`
	WeeklyPracticeTime       int                `json:"weeklyPracticeTime"`
	WeeklyExercises          int                `json:"weeklyExercises"`
	WeeklyAvgScore           float64            `json:"weeklyAvgScore"`
	WeeklyGoalsMet           int                `json:"weeklyGoalsMet"`
	WeeklyProgressPercentage float64            `json:"weeklyProgressPercentage"`
	DailyProgressPercentage  float64            `json:"dailyProgressPercentage"`
	ExerciseBreakdown        *ExerciseBreakdown `json:"exerciseBreakdown,omitempty"`
}

func goalPercentage(done, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	pct := float64(done) * 100 / float64(goal)
	if pct > 100 {
		return 100
	}
	return pct
}

// GetUserProgressSummary reports today's totals and the trailing week
func (s *ProgressService) GetUserProgressSummary(user *models.User) (*ProgressSummaryReport, error) {
	today := time.Now()

	todayProgress, err := s.progressRepo.GetByDate(user.ID, today)
	if err != nil {
		return nil, err
	}

	week, err := s.progressRepo.GetRange(user.ID, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, err
	}

	report := &ProgressSummaryReport{}
	if todayProgress != nil {
		report.TodayPracticeTime = todayProgress.TotalPracticeTime
		report.TodayExercises = todayProgress.ExercisesCompleted
		report.TodayAvgScore = todayProgress.AverageScore
		report.TodayGoalsMet = todayProgress.GoalsMet
		report.TodayPoints = todayProgress.PointsEarned
		report.ExerciseBreakdown = &ExerciseBreakdown{
			Reading:      todayProgress.ReadingExercises,
			Repetition:   todayProgress.RepetitionExercises,
			Conversation: todayProgress.ConversationPractice,
			Breathing:    todayProgress.BreathingExercises,
		}
	}

	var weeklyScoreSum float64
	for _, day := range week {
		report.WeeklyPracticeTime += day.TotalPracticeTime
		report.WeeklyExercises += day.ExercisesCompleted
		weeklyScoreSum += day.AverageScore
		if day.GoalsMet {
			report.WeeklyGoalsMet++
		}
	}
	if len(week) > 0 {
		report.WeeklyAvgScore = weeklyScoreSum / float64(len(week))
	}

	report.WeeklyProgressPercentage = goalPercentage(report.WeeklyPracticeTime, user.WeeklyGoal)
	report.DailyProgressPercentage = goalPercentage(report.TodayPracticeTime, user.DailyGoal)
	return report, nil
}

// GetTodayProgress returns today's row, or an empty record when absent
func (s *ProgressService) GetTodayProgress(user *models.User) (*models.UserProgress, error) {
	today := time.Now()
	progress, err := s.progressRepo.GetByDate(user.ID, today)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &models.UserProgress{
			UserID:       user.ID,
			PracticeDate: time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC),
		}
	}
	return progress, nil
}

// GetWeeklyProgress returns the trailing seven days of records
func (s *ProgressService) GetWeeklyProgress(userID int64) ([]models.UserProgress, error) {
	today := time.Now()
	return s.progressRepo.GetRange(userID, today.AddDate(0, 0, -6), today)
}

// GetMonthlyProgress returns the trailing thirty days of records
func (s *ProgressService) GetMonthlyProgress(userID int64) ([]models.UserProgress, error) {
	today := time.Now()
	return s.progressRepo.GetRange(userID, today.AddDate(0, 0, -29), today)
}

// DailyProgressUpdate carries absolute values for today's record.
// Nil fields keep the stored value.
type DailyProgressUpdate struct {
	PracticeTime       *int     `json:"practiceTime"`
	ExercisesCompleted *int     `json:"exercisesCompleted"`
	AverageScore       *float64 `json:"averageScore"`
	PointsEarned       *int     `json:"pointsEarned"`
}

// UpdateDailyProgress overwrites today's record with the provided values and
// recomputes the goals-met flag against the user's daily goal
func (s *ProgressService) UpdateDailyProgress(user *models.User, update DailyProgressUpdate) (*models.UserProgress, error) {
	progress, err := s.GetTodayProgress(user)
	if err != nil {
		return nil, err
	}

	if update.PracticeTime != nil {
		progress.TotalPracticeTime = *update.PracticeTime
	}
	if update.ExercisesCompleted != nil {
		progress.ExercisesCompleted = *update.ExercisesCompleted
	}
	if update.AverageScore != nil {
		progress.AverageScore = *update.AverageScore
	}
	if update.PointsEarned != nil {
		progress.PointsEarned = *update.PointsEarned
	}

	if err := s.progressRepo.SetDay(progress, user.DailyGoal); err != nil {
		return nil, err
	}
	return s.progressRepo.GetByDate(user.ID, progress.PracticeDate)
}

// ProgressAnalytics reports a thirty-day trend and consistency figures
type ProgressAnalytics struct {
	ScoreTrend            *float64   `json:"scoreTrend,omitempty"`
	ImprovementPercentage *float64   `json:"improvementPercentage,omitempty"`
	ActiveDaysInMonth     int        `json:"activeDaysInMonth"`
	ConsistencyPercentage float64    `json:"consistencyPercentage"`
	GoalAchievementRate   float64    `json:"goalAchievementRate"`
	BestDayScore          *float64   `json:"bestDayScore,omitempty"`
	BestDayDate           *time.Time `json:"bestDayDate,omitempty"`
	WorstDayScore         *float64   `json:"worstDayScore,omitempty"`
	WorstDayDate          *time.Time `json:"worstDayDate,omitempty"`
}

// GetProgressAnalytics compares the first and second half of the last thirty
// days and summarizes consistency. Trend figures need at least fourteen
// recorded days.
func (s *ProgressService) GetProgressAnalytics(userID int64) (*ProgressAnalytics, error) {
	today := time.Now()
	month, err := s.progressRepo.GetRange(userID, today.AddDate(0, 0, -29), today)
	if err != nil {
		return nil, err
	}

	analytics := &ProgressAnalytics{}

	if len(month) >= 14 {
		half := len(month) / 2
		firstAvg := averageScore(month[:half])
		secondAvg := averageScore(month[half:])

		trend := secondAvg - firstAvg
		analytics.ScoreTrend = &trend
		if firstAvg != 0 {
			improvement := trend / firstAvg * 100
			analytics.ImprovementPercentage = &improvement
		}
	}

	var goalsMet int
	for _, day := range month {
		if day.ExercisesCompleted > 0 {
			analytics.ActiveDaysInMonth++
		}
		if day.GoalsMet {
			goalsMet++
		}
	}
	analytics.ConsistencyPercentage = float64(analytics.ActiveDaysInMonth) / 30.0 * 100
	if analytics.ActiveDaysInMonth > 0 {
		analytics.GoalAchievementRate = float64(goalsMet) / float64(analytics.ActiveDaysInMonth) * 100
	}

	for i := range month {
		day := month[i]
		if day.AverageScore <= 0 {
			continue
		}
		if analytics.BestDayScore == nil || day.AverageScore > *analytics.BestDayScore {
			score, date := day.AverageScore, day.PracticeDate
			analytics.BestDayScore = &score
			analytics.BestDayDate = &date
		}
		if analytics.WorstDayScore == nil || day.AverageScore < *analytics.WorstDayScore {
			score, date := day.AverageScore, day.PracticeDate
			analytics.WorstDayScore = &score
			analytics.WorstDayDate = &date
		}
	}

	return analytics, nil
}

func averageScore(days []models.UserProgress) float64 {
	if len(days) == 0 {
		return 0
	}
	var sum float64
	for _, day := range days {
		sum += day.AverageScore
	}
	return sum / float64(len(days))
}
