package service

import (
	"errors"
	"fmt"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"go.uber.org/zap"
)

var ErrUnknownGame = errors.New("unknown game id")

// defaultScoreLimit caps listing queries that carry no explicit limit
const defaultScoreLimit = 50

// GameScoreService records mini-game results and builds leaderboards
type GameScoreService struct {
	scoreRepo *repository.GameScoreRepository
	userRepo  *repository.UserRepository
	logger    *zap.Logger
}

// NewGameScoreService creates a new game score service
func NewGameScoreService(scoreRepo *repository.GameScoreRepository, userRepo *repository.UserRepository, logger *zap.Logger) *GameScoreService {
	return &GameScoreService{scoreRepo: scoreRepo, userRepo: userRepo, logger: logger}
}

func validGameID(gameID string) bool {
	for _, id := range models.GameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}

// CreateScore records a finished game session and credits its points to the
// user's account total
func (s *GameScoreService) CreateScore(score *models.GameScore) (*models.GameScore, error) {
	if !validGameID(score.GameID) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, score.GameID)
	}

	user, err := s.userRepo.GetUserByID(score.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.scoreRepo.Create(score); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddGamePoints(score.UserID, score.Points); err != nil {
		return nil, err
	}

	s.logger.Info("game score recorded",
		zap.Int64("user_id", score.UserID),
		zap.String("game_id", score.GameID),
		zap.Int("points", score.Points))
	return score, nil
}

// GetUserScores returns a user's latest sessions
func (s *GameScoreService) GetUserScores(userID int64, limit int) ([]models.GameScore, error) {
	if limit <= 0 {
		limit = defaultScoreLimit
	}
	return s.scoreRepo.GetByUser(userID, limit)
}

// GetUserBestScores returns a user's highest scoring sessions
func (s *GameScoreService) GetUserBestScores(userID int64, limit int) ([]models.GameScore, error) {
	if limit <= 0 {
		limit = defaultScoreLimit
	}
	return s.scoreRepo.GetBestByUser(userID, limit)
}

// GetUserRecentScores returns the last thirty days of sessions
func (s *GameScoreService) GetUserRecentScores(userID int64) ([]models.GameScore, error) {
	now := time.Now()
	return s.scoreRepo.GetByDateRange(userID, now.AddDate(0, 0, -30), now)
}

// GetUserHighAccuracyScores returns sessions at or above the threshold
func (s *GameScoreService) GetUserHighAccuracyScores(userID int64, threshold float64) ([]models.GameScore, error) {
	return s.scoreRepo.GetHighAccuracy(userID, threshold)
}

// GetUserScoresByDateRange returns sessions between two times
func (s *GameScoreService) GetUserScoresByDateRange(userID int64, from, to time.Time) ([]models.GameScore, error) {
	return s.scoreRepo.GetByDateRange(userID, from, to)
}

// GameStatistics is a user's lifetime game summary with breakdowns
type GameStatistics struct {
	repository.UserTotals
	GameBreakdown       []repository.GroupStat `json:"gameBreakdown"`
	DifficultyBreakdown []repository.GroupStat `json:"difficultyBreakdown"`
}

// GetUserStatistics aggregates lifetime totals plus per-game and
// per-difficulty breakdowns
func (s *GameScoreService) GetUserStatistics(userID int64) (*GameStatistics, error) {
	totals, err := s.scoreRepo.GetUserTotals(userID)
	if err != nil {
		return nil, err
	}

	gameBreakdown, err := s.scoreRepo.GetGameBreakdown(userID)
	if err != nil {
		return nil, err
	}

	difficultyBreakdown, err := s.scoreRepo.GetDifficultyBreakdown(userID)
	if err != nil {
		return nil, err
	}

	return &GameStatistics{
		UserTotals:          *totals,
		GameBreakdown:       gameBreakdown,
		DifficultyBreakdown: difficultyBreakdown,
	}, nil
}

// GetLeaderboard ranks users by points, optionally within one game
func (s *GameScoreService) GetLeaderboard(gameID string, limit int) ([]repository.LeaderboardEntry, error) {
	if gameID != "" && !validGameID(gameID) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}
	if limit <= 0 {
		limit = 10
	}
	return s.scoreRepo.GetLeaderboard(gameID, limit)
}

// WeeklyGameProgress summarizes the trailing week of game sessions
type WeeklyGameProgress struct {
	TotalGames      int            `json:"totalGames"`
	TotalPoints     int            `json:"totalPoints"`
	AverageAccuracy float64        `json:"averageAccuracy"`
	DailyPoints     map[string]int `json:"dailyPoints"`
}

// GetUserWeeklyProgress reports the last seven days of game activity with a
// per-day points map (zero-filled for idle days)
func (s *GameScoreService) GetUserWeeklyProgress(userID int64) (*WeeklyGameProgress, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	scores, err := s.scoreRepo.GetByDateRange(userID, weekAgo, now)
	if err != nil {
		return nil, err
	}

	progress := &WeeklyGameProgress{
		TotalGames:  len(scores),
		DailyPoints: make(map[string]int, 7),
	}
	for i := 0; i < 7; i++ {
		progress.DailyPoints[now.AddDate(0, 0, -i).Format("2006-01-02")] = 0
	}

	var accuracySum float64
	for _, score := range scores {
		progress.TotalPoints += score.Points
		accuracySum += score.Accuracy
		day := score.CreatedAt.Format("2006-01-02")
		if _, ok := progress.DailyPoints[day]; ok {
			progress.DailyPoints[day] += score.Points
		}
	}
	if len(scores) > 0 {
		progress.AverageAccuracy = accuracySum / float64(len(scores))
	}
	return progress, nil
}

// CompletionStats counts sessions per known game
type CompletionStats struct {
	Games            map[string]int `json:"games"`
	TotalUniqueGames int            `json:"totalUniqueGames"`
}

// GetGameCompletionStats counts a user's sessions across every known game
func (s *GameScoreService) GetGameCompletionStats(userID int64) (*CompletionStats, error) {
	stats := &CompletionStats{Games: make(map[string]int, len(models.GameIDs))}
	for _, gameID := range models.GameIDs {
		count, err := s.scoreRepo.CountByGame(userID, gameID)
		if err != nil {
			return nil, err
		}
		stats.Games[gameID] = count
		if count > 0 {
			stats.TotalUniqueGames++
		}
	}
	return stats, nil
}

// CleanupOldScores deletes sessions older than daysOld days
func (s *GameScoreService) CleanupOldScores(daysOld int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -daysOld)
	deleted, err := s.scoreRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("old game scores removed",
		zap.Int("days_old", daysOld), zap.Int64("deleted", deleted))
	return deleted, nil
}
