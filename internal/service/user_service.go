package service

import (
	"errors"
	"fmt"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"
	"speechcoach/internal/validation"

	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

// DefaultUserEmail identifies the demo account created on demand
const DefaultUserEmail = "demo@speechtherapy.com"

// MinutesPerExercise is the practice time credited for one speech exercise
const MinutesPerExercise = 3

// UserService handles user accounts, streaks and daily practice totals
type UserService struct {
	userRepo     *repository.UserRepository
	progressRepo *repository.ProgressRepository
	exerciseRepo *repository.ExerciseRepository
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, exerciseRepo *repository.ExerciseRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		exerciseRepo: exerciseRepo,
		logger:       logger,
	}
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CreateUser creates an account with defaults applied
func (s *UserService) CreateUser(user *models.User) (*models.User, error) {
	if err := validation.ValidateName(user.Name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(user.Email); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	defaults := models.NewUser(user.Name, user.Email)
	if user.Age == 0 {
		user.Age = defaults.Age
	}
	if user.NativeLanguage == "" {
		user.NativeLanguage = defaults.NativeLanguage
	}
	if user.TargetLanguage == "" {
		user.TargetLanguage = defaults.TargetLanguage
	}
	if user.DifficultyLevel == "" {
		user.DifficultyLevel = defaults.DifficultyLevel
	}
	if user.DailyGoal == 0 {
		user.DailyGoal = defaults.DailyGoal
	}
	if user.WeeklyGoal == 0 {
		user.WeeklyGoal = defaults.WeeklyGoal
	}

	return s.userRepo.CreateUser(user)
}

// UpdateUser updates profile fields for an existing account
func (s *UserService) UpdateUser(id int64, updated *models.User) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if updated.Name != "" {
		user.Name = updated.Name
	}
	if updated.Email != "" && updated.Email != user.Email {
		if err := validation.ValidateEmail(updated.Email); err != nil {
			return nil, err
		}
		existing, err := s.userRepo.GetUserByEmail(updated.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		user.Email = updated.Email
	}
	if updated.Age != 0 {
		user.Age = updated.Age
	}
	if updated.NativeLanguage != "" {
		user.NativeLanguage = updated.NativeLanguage
	}
	if updated.TargetLanguage != "" {
		user.TargetLanguage = updated.TargetLanguage
	}
	if updated.DifficultyLevel != "" {
		if err := validation.ValidateDifficulty(updated.DifficultyLevel); err != nil {
			return nil, err
		}
		user.DifficultyLevel = updated.DifficultyLevel
	}
	if updated.DailyGoal != 0 {
		user.DailyGoal = updated.DailyGoal
	}
	if updated.WeeklyGoal != 0 {
		user.WeeklyGoal = updated.WeeklyGoal
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetDefaultUser fetches the demo account, creating it when missing
func (s *UserService) GetDefaultUser() (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(DefaultUserEmail)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = models.NewUser("Demo User", DefaultUserEmail)
	return s.userRepo.CreateUser(user)
}

// AwardPoints credits points for a finished exercise and advances the
// streak. The streak grows only on the first exercise of a day: an
// unbroken yesterday extends it, anything else restarts at one.
func (s *UserService) AwardPoints(user *models.User, points int) error {
	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)

	todayProgress, err := s.progressRepo.GetByDate(user.ID, today)
	if err != nil {
		return err
	}

	if todayProgress == nil || todayProgress.ExercisesCompleted == 0 {
		yesterdayProgress, err := s.progressRepo.GetByDate(user.ID, yesterday)
		if err != nil {
			return err
		}

		streak := 1
		if yesterdayProgress != nil && yesterdayProgress.ExercisesCompleted > 0 {
			streak = user.StreakDays + 1
		}
		if err := s.userRepo.SetStreak(user.ID, streak); err != nil {
			return err
		}
		user.StreakDays = streak
	}

	if err := s.userRepo.AddPoints(user.ID, points); err != nil {
		return err
	}
	user.TotalPoints += points
	user.ExercisesCompleted++
	return nil
}

// RecordPractice folds one finished exercise into today's totals
func (s *UserService) RecordPractice(user *models.User, kind repository.PracticeKind, score float64, points int) error {
	return s.progressRepo.AccumulateExercise(
		user.ID, time.Now(), kind, MinutesPerExercise, score, points, user.DailyGoal)
}

// UserStatistics summarizes an account's lifetime and weekly activity
type UserStatistics struct {
	TotalPoints        int                   `json:"totalPoints"`
	StreakDays         int                   `json:"streakDays"`
	ExercisesCompleted int                   `json:"exercisesCompleted"`
	TypeStats          []repository.TypeStat `json:"exerciseTypeStats"`
	WeeklyPracticeTime int                   `json:"weeklyPracticeTime"`
	WeeklyGoalsMet     int                   `json:"weeklyGoalsMet"`
	WeeklyAverageScore float64               `json:"weeklyAverageScore"`
}

// GetUserStatistics aggregates lifetime totals and current-week activity
func (s *UserService) GetUserStatistics(id int64) (*UserStatistics, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	typeStats, err := s.exerciseRepo.GetTypeStats(id)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := models.WeekBounds(time.Now())
	week, err := s.progressRepo.GetRange(id, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	stats := &UserStatistics{
		TotalPoints:        user.TotalPoints,
		StreakDays:         user.StreakDays,
		ExercisesCompleted: user.ExercisesCompleted,
		TypeStats:          typeStats,
	}

	var scoreSum float64
	var scoredDays int
	for _, day := range week {
		stats.WeeklyPracticeTime += day.TotalPracticeTime
		if day.GoalsMet {
			stats.WeeklyGoalsMet++
		}
		if day.ExercisesCompleted > 0 {
			scoreSum += day.AverageScore
			scoredDays++
		}
	}
	if scoredDays > 0 {
		stats.WeeklyAverageScore = scoreSum / float64(scoredDays)
	}

	return stats, nil
}
