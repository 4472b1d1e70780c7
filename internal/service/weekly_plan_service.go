package service

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"
	"speechcoach/internal/validation"

	"go.uber.org/zap"
)

// bodyExerciseDayThreshold is the daily practice minutes after which one
// body exercise is counted toward the weekly plan
const bodyExerciseDayThreshold = 5

// WeeklyPlanService manages Monday-to-Sunday practice plans
type WeeklyPlanService struct {
	planRepo     *repository.WeeklyPlanRepository
	progressRepo *repository.ProgressRepository
	bodyRepo     *repository.BodyExerciseRepository
	logger       *zap.Logger
}

// NewWeeklyPlanService creates a new weekly plan service
func NewWeeklyPlanService(planRepo *repository.WeeklyPlanRepository, progressRepo *repository.ProgressRepository, bodyRepo *repository.BodyExerciseRepository, logger *zap.Logger) *WeeklyPlanService {
	return &WeeklyPlanService{
		planRepo:     planRepo,
		progressRepo: progressRepo,
		bodyRepo:     bodyRepo,
		logger:       logger,
	}
}

// weeklyGoals returns goal minutes, body exercise goal and speech exercise
// goal for a difficulty level. Unknown levels get the intermediate goals.
func weeklyGoals(difficulty string) (minutes, bodyGoal, speechGoal int) {
	switch difficulty {
	case models.DifficultyBeginner:
		return 70, 5, 10
	case models.DifficultyAdvanced:
		return 140, 10, 21
	default:
		return 105, 7, 14
	}
}

// GetOrCreatePlan returns the user's plan for the week containing date,
// creating it with difficulty-based goals when it does not exist yet
func (s *WeeklyPlanService) GetOrCreatePlan(user *models.User, date time.Time) (*models.WeeklyPlan, error) {
	weekStart, weekEnd := models.WeekBounds(date)

	plan, err := s.planRepo.GetByWeek(user.ID, weekStart)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}

	minutes, bodyGoal, speechGoal := weeklyGoals(user.DifficultyLevel)
	if err := s.planRepo.EnsurePlan(&models.WeeklyPlan{
		UserID:             user.ID,
		WeekStart:          weekStart,
		WeekEnd:            weekEnd,
		WeeklyGoalMinutes:  minutes,
		BodyExerciseGoal:   bodyGoal,
		SpeechExerciseGoal: speechGoal,
	}); err != nil {
		return nil, err
	}

	plan, err = s.planRepo.GetByWeek(user.ID, weekStart)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("weekly plan missing after create for user %d", user.ID)
	}
	s.logger.Info("weekly plan created",
		zap.Int64("user_id", user.ID),
		zap.String("week_start", weekStart.Format("2006-01-02")))
	return plan, nil
}

// UpdateFromDailyProgress folds one day's new practice into the week's
// counters. A day that reaches the body exercise threshold counts one
// body exercise.
func (s *WeeklyPlanService) UpdateFromDailyProgress(user *models.User, date time.Time, minutes, speechExercises int) error {
	if _, err := s.GetOrCreatePlan(user, date); err != nil {
		return err
	}

	bodyExercises := 0
	if minutes >= bodyExerciseDayThreshold {
		bodyExercises = 1
	}

	weekStart, _ := models.WeekBounds(date)
	return s.planRepo.Accumulate(user.ID, weekStart, minutes, speechExercises, bodyExercises)
}

// GetPersonalizedBodyExercises picks a varied set of body exercises for the
// user's difficulty level. Up to two exercises per type are chosen from the
// least-represented types first, then the remainder is filled randomly.
func (s *WeeklyPlanService) GetPersonalizedBodyExercises(user *models.User, limit int) ([]models.BodyExercise, error) {
	level := user.DifficultyLevel
	if level == "" {
		level = models.DifficultyBeginner
	}

	catalog, err := s.bodyRepo.GetByDifficulty(level)
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 && level != models.DifficultyBeginner {
		catalog, err = s.bodyRepo.GetByDifficulty(models.DifficultyBeginner)
		if err != nil {
			return nil, err
		}
	}
	if limit <= 0 || limit > len(catalog) {
		limit = len(catalog)
	}

	byType := make(map[string][]models.BodyExercise)
	for _, e := range catalog {
		byType[e.ExerciseType] = append(byType[e.ExerciseType], e)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if len(byType[types[i]]) != len(byType[types[j]]) {
			return len(byType[types[i]]) < len(byType[types[j]])
		}
		return types[i] < types[j]
	})

	picked := make([]models.BodyExercise, 0, limit)
	seen := make(map[int64]bool)
	for _, t := range types {
		group := byType[t]
		take := 2
		if take > len(group) {
			take = len(group)
		}
		for _, e := range group[:take] {
			if len(picked) >= limit {
				break
			}
			picked = append(picked, e)
			seen[e.ID] = true
		}
	}

	if len(picked) < limit {
		rest := make([]models.BodyExercise, 0, len(catalog))
		for _, e := range catalog {
			if !seen[e.ID] {
				rest = append(rest, e)
			}
		}
		rand.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
		for _, e := range rest {
			if len(picked) >= limit {
				break
			}
			picked = append(picked, e)
		}
	}

	return picked, nil
}

// GetBodyExercisesByDifficulty lists active catalog entries for one level
func (s *WeeklyPlanService) GetBodyExercisesByDifficulty(level string) ([]models.BodyExercise, error) {
	if err := validation.ValidateDifficulty(level); err != nil {
		return nil, err
	}
	return s.bodyRepo.GetByDifficulty(level)
}

// GetBodyExercisesByType lists active catalog entries for one exercise type
func (s *WeeklyPlanService) GetBodyExercisesByType(exerciseType string) ([]models.BodyExercise, error) {
	return s.bodyRepo.GetByType(exerciseType)
}

// DailyGoal is one day's target and actuals inside a weekly schedule
type DailyGoal struct {
	Date               string `json:"date"`
	DayName            string `json:"dayName"`
	MinutesGoal        int    `json:"minutesGoal"`
	BodyExerciseGoal   int    `json:"bodyExerciseGoal"`
	SpeechExerciseGoal int    `json:"speechExerciseGoal"`
	MinutesCompleted   int    `json:"minutesCompleted"`
	BodyCompleted      int    `json:"bodyExercisesCompleted"`
	SpeechCompleted    int    `json:"speechExercisesCompleted"`
	IsCompleted        bool   `json:"isCompleted"`
}

// ProgressSummary derives completion signals from a weekly plan
type ProgressSummary struct {
	TotalProgress           float64 `json:"totalProgress"`
	BodyExercisesProgress   float64 `json:"bodyExercisesProgress"`
	SpeechExercisesProgress float64 `json:"speechExercisesProgress"`
	IsOnTrack               bool    `json:"isOnTrack"`
	DaysRemaining           int     `json:"daysRemaining"`
	EstimatedCompletion     string  `json:"estimatedCompletion"`
}

// WeeklySchedule bundles the plan with recommended exercises and day goals
type WeeklySchedule struct {
	Plan            *models.WeeklyPlan    `json:"weeklyPlan"`
	BodyExercises   []models.BodyExercise `json:"bodyExercises"`
	DailyGoals      []DailyGoal           `json:"dailyGoals"`
	ProgressSummary ProgressSummary       `json:"progressSummary"`
}

// GenerateWeeklySchedule builds the current week's schedule for a user
func (s *WeeklyPlanService) GenerateWeeklySchedule(user *models.User) (*WeeklySchedule, error) {
	now := time.Now()
	plan, err := s.GetOrCreatePlan(user, now)
	if err != nil {
		return nil, err
	}

	bodyExercises, err := s.GetPersonalizedBodyExercises(user, 7)
	if err != nil {
		return nil, err
	}

	days, err := s.progressRepo.GetRange(user.ID, plan.WeekStart, plan.WeekEnd)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.UserProgress, len(days))
	for _, day := range days {
		byDate[day.PracticeDate.Format("2006-01-02")] = day
	}

	goals := make([]DailyGoal, 0, 7)
	for i := 0; i < 7; i++ {
		date := plan.WeekStart.AddDate(0, 0, i)
		goal := DailyGoal{
			Date:               date.Format("2006-01-02"),
			DayName:            date.Weekday().String(),
			MinutesGoal:        15,
			BodyExerciseGoal:   1,
			SpeechExerciseGoal: 2,
		}
		if day, ok := byDate[goal.Date]; ok {
			goal.MinutesCompleted = day.TotalPracticeTime
			if day.TotalPracticeTime >= bodyExerciseDayThreshold {
				goal.BodyCompleted = 1
			}
			goal.SpeechCompleted = day.ExercisesCompleted
			goal.IsCompleted = day.GoalsMet
		}
		goals = append(goals, goal)
	}

	return &WeeklySchedule{
		Plan:            plan,
		BodyExercises:   bodyExercises,
		DailyGoals:      goals,
		ProgressSummary: summarizePlan(plan, now),
	}, nil
}

func summarizePlan(plan *models.WeeklyPlan, now time.Time) ProgressSummary {
	daysRemaining := daysUntilWeekEnd(now)
	return ProgressSummary{
		TotalProgress:           plan.ProgressPercentage(),
		BodyExercisesProgress:   plan.BodyProgressPercentage(),
		SpeechExercisesProgress: plan.SpeechProgressPercentage(),
		IsOnTrack:               plan.IsOnTrack(),
		DaysRemaining:           daysRemaining,
		EstimatedCompletion:     estimateCompletion(plan, daysRemaining),
	}
}

func daysUntilWeekEnd(now time.Time) int {
	_, weekEnd := models.WeekBounds(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(weekEnd.Sub(today).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// estimateCompletion extrapolates the current pace over the rest of the week
func estimateCompletion(plan *models.WeeklyPlan, daysRemaining int) string {
	if plan.IsCompleted {
		return "Completed this week!"
	}

	progress := plan.ProgressPercentage()
	if progress == 0 {
		return "Not started yet"
	}

	progressPerDay := progress / float64(7-daysRemaining)
	daysToComplete := (100 - progress) / progressPerDay
	if daysToComplete <= float64(daysRemaining) {
		return "On track to complete this week"
	}
	return "May need additional time to complete goals"
}

// WeeklyStatistics aggregates the current week across all users
type WeeklyStatistics struct {
	TotalUsers           int     `json:"totalUsers"`
	UsersOnTrack         int     `json:"usersOnTrack"`
	AverageProgress      float64 `json:"averageProgress"`
	TotalMinutes         int     `json:"totalMinutesCompleted"`
	TotalBodyExercises   int     `json:"totalBodyExercisesCompleted"`
	TotalSpeechExercises int     `json:"totalSpeechExercisesCompleted"`
}

// GetWeeklyStatistics summarizes every user's current-week plan
func (s *WeeklyPlanService) GetWeeklyStatistics(now time.Time) (*WeeklyStatistics, error) {
	weekStart, _ := models.WeekBounds(now)
	plans, err := s.planRepo.GetAllForWeek(weekStart)
	if err != nil {
		return nil, err
	}

	stats := &WeeklyStatistics{TotalUsers: len(plans)}
	var progressSum float64
	for _, plan := range plans {
		if plan.IsOnTrack() {
			stats.UsersOnTrack++
		}
		progressSum += plan.ProgressPercentage()
		stats.TotalMinutes += plan.CompletedMinutes
		stats.TotalBodyExercises += plan.BodyExercisesDone
		stats.TotalSpeechExercises += plan.SpeechExercisesDone
	}
	if len(plans) > 0 {
		stats.AverageProgress = progressSum / float64(len(plans))
	}
	return stats, nil
}

// PlanHistory is a user's past plans with summary figures
type PlanHistory struct {
	Plans           []models.WeeklyPlan `json:"plans"`
	CompletedWeeks  int                 `json:"completedWeeks"`
	AverageProgress float64             `json:"averageProgress"`
}

// GetUserPlanHistory returns all of a user's plans, newest first
func (s *WeeklyPlanService) GetUserPlanHistory(userID int64) (*PlanHistory, error) {
	plans, err := s.planRepo.GetHistory(userID)
	if err != nil {
		return nil, err
	}

	history := &PlanHistory{Plans: plans}
	var progressSum float64
	for _, plan := range plans {
		if plan.IsCompleted {
			history.CompletedWeeks++
		}
		progressSum += plan.ProgressPercentage()
	}
	if len(plans) > 0 {
		history.AverageProgress = progressSum / float64(len(plans))
	}
	return history, nil
}

// UserWeekSummary aggregates one user's totals for a finished week
type UserWeekSummary struct {
	UserID             int64
	MinutesPracticed   int
	ExercisesCompleted int
	PointsEarned       int
}

// SummarizeClosingWeek collects per-user practice totals for the week that
// ended before now. The Monday scheduler job uses this to send recap mail
// ahead of the weekly reset.
func (s *WeeklyPlanService) SummarizeClosingWeek(now time.Time) ([]UserWeekSummary, error) {
	weekStart, weekEnd := models.WeekBounds(now.AddDate(0, 0, -7))
	plans, err := s.planRepo.GetAllForWeek(weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to load closing week plans: %w", err)
	}

	summaries := make([]UserWeekSummary, 0, len(plans))
	for _, plan := range plans {
		points := 0
		records, err := s.progressRepo.GetRange(plan.UserID, weekStart, weekEnd)
		if err != nil {
			s.logger.Warn("failed to load weekly points",
				zap.Int64("user_id", plan.UserID), zap.Error(err))
		}
		for _, record := range records {
			points += record.PointsEarned
		}

		summaries = append(summaries, UserWeekSummary{
			UserID:             plan.UserID,
			MinutesPracticed:   plan.CompletedMinutes,
			ExercisesCompleted: plan.SpeechExercisesDone + plan.BodyExercisesDone,
			PointsEarned:       points,
		})
	}
	return summaries, nil
}

// ResetAllWeeklyProgress zeroes every plan for the week containing now.
// The Monday scheduler job calls this so each week starts from a clean
// slate even when plan rows were created ahead of time.
func (s *WeeklyPlanService) ResetAllWeeklyProgress(now time.Time) (int64, error) {
	weekStart, _ := models.WeekBounds(now)
	count, err := s.planRepo.ResetWeek(weekStart)
	if err != nil {
		return 0, err
	}
	s.logger.Info("weekly plans reset",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int64("plans", count))
	return count, nil
}
