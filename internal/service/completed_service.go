package service

import (
	"strings"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"go.uber.org/zap"
)

// CompletedExerciseService maintains the per-day exercise completion log
type CompletedExerciseService struct {
	completedRepo *repository.CompletedExerciseRepository
	userRepo      *repository.UserRepository
	logger        *zap.Logger
}

// NewCompletedExerciseService creates a new completed exercise service
func NewCompletedExerciseService(completedRepo *repository.CompletedExerciseRepository, userRepo *repository.UserRepository, logger *zap.Logger) *CompletedExerciseService {
	return &CompletedExerciseService{
		completedRepo: completedRepo,
		userRepo:      userRepo,
		logger:        logger,
	}
}

func (s *CompletedExerciseService) requireUser(userID int64) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

// MarkCompleted logs one finished exercise for today
func (s *CompletedExerciseService) MarkCompleted(userID int64, exerciseName, exerciseType, difficultyLevel string, durationSeconds int, notes string) (*models.CompletedExercise, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	entry := &models.CompletedExercise{
		UserID:          userID,
		ExerciseName:    exerciseName,
		ExerciseType:    exerciseType,
		DifficultyLevel: difficultyLevel,
		DurationSeconds: durationSeconds,
		Notes:           strings.TrimSpace(notes),
		PracticeDate:    time.Now(),
	}
	if err := s.completedRepo.Create(entry); err != nil {
		return nil, err
	}

	s.logger.Info("exercise logged",
		zap.Int64("user_id", userID),
		zap.String("exercise", exerciseName))
	return entry, nil
}

// GetByDate returns a user's log entries for one day
func (s *CompletedExerciseService) GetByDate(userID int64, date time.Time) ([]models.CompletedExercise, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.completedRepo.GetByDate(userID, date)
}

// GetAll returns every log entry for a user, newest first
func (s *CompletedExerciseService) GetAll(userID int64) ([]models.CompletedExercise, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.completedRepo.GetAll(userID)
}

// GetByDateRange returns log entries between two dates inclusive
func (s *CompletedExerciseService) GetByDateRange(userID int64, from, to time.Time) ([]models.CompletedExercise, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.completedRepo.GetByDateRange(userID, from, to)
}

// CompletionStatistics summarizes a user's log over time
type CompletionStatistics struct {
	ExerciseTypeCounts map[string]int `json:"exerciseTypeCounts"`
	DifficultyCounts   map[string]int `json:"difficultyCounts"`
	TotalCompleted     int            `json:"totalCompleted"`
	TodayCompleted     int            `json:"todayCompleted"`
	WeekCompleted      int            `json:"weekCompleted"`
}

// GetStatistics aggregates a user's log: lifetime, today and this week
func (s *CompletedExerciseService) GetStatistics(userID int64) (*CompletionStatistics, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	typeCounts, err := s.completedRepo.CountByType(userID)
	if err != nil {
		return nil, err
	}
	difficultyCounts, err := s.completedRepo.CountByDifficulty(userID)
	if err != nil {
		return nil, err
	}
	total, err := s.completedRepo.CountTotal(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today, err := s.completedRepo.CountByDay(userID, now)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := models.WeekBounds(now)
	week, err := s.completedRepo.GetByDateRange(userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return &CompletionStatistics{
		ExerciseTypeCounts: typeCounts,
		DifficultyCounts:   difficultyCounts,
		TotalCompleted:     total,
		TodayCompleted:     today,
		WeekCompleted:      len(week),
	}, nil
}

// DailySummary is the log for one day with duration and grouping totals
type DailySummary struct {
	Exercises          []models.CompletedExercise `json:"exercises"`
	TotalExercises     int                        `json:"totalExercises"`
	TotalDuration      int                        `json:"totalDuration"`
	ExerciseTypeCounts map[string]int             `json:"exerciseTypeCounts"`
	DifficultyCounts   map[string]int             `json:"difficultyCounts"`
}

// GetDailySummary reports one day's log with totals grouped by type and
// difficulty
func (s *CompletedExerciseService) GetDailySummary(userID int64, date time.Time) (*DailySummary, error) {
	entries, err := s.GetByDate(userID, date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Exercises:          entries,
		TotalExercises:     len(entries),
		ExerciseTypeCounts: make(map[string]int),
		DifficultyCounts:   make(map[string]int),
	}
	for _, entry := range entries {
		summary.TotalDuration += entry.DurationSeconds
		summary.ExerciseTypeCounts[entry.ExerciseType]++
		summary.DifficultyCounts[entry.DifficultyLevel]++
	}
	return summary, nil
}
