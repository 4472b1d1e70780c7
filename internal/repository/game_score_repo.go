package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// GameScoreRepository handles database operations for mini-game results
type GameScoreRepository struct {
	db database.DBTX
}

// NewGameScoreRepository creates a new game score repository
func NewGameScoreRepository(db database.DBTX) *GameScoreRepository {
	return &GameScoreRepository{db: db}
}

const gameScoreColumns = `id, user_id, game_id, points, accuracy, attempts, hints_used,
		total_time_ms, average_speed, difficulty, words_completed, levels_completed,
		games_completed, perfect_rounds, daily_challenges, created_at`

// Create inserts a game score record
func (r *GameScoreRepository) Create(s *models.GameScore) error {
	query := `
		INSERT INTO game_scores (user_id, game_id, points, accuracy, attempts, hints_used,
			total_time_ms, average_speed, difficulty, words_completed, levels_completed,
			games_completed, perfect_rounds, daily_challenges)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		s.UserID, s.GameID, s.Points, s.Accuracy, s.Attempts, s.HintsUsed,
		s.TotalTimeMs, s.AverageSpeed, s.Difficulty, s.WordsCompleted,
		s.LevelsCompleted, s.GamesCompleted, s.PerfectRounds, s.DailyChallenges,
	)
	if err != nil {
		return fmt.Errorf("failed to create game score: %w", err)
	}
	s.ID = id
	s.CreatedAt = time.Now()
	return nil
}

// GetByUser retrieves a user's scores, newest first
func (r *GameScoreRepository) GetByUser(userID int64, limit int) ([]models.GameScore, error) {
	query := "SELECT " + gameScoreColumns + ` FROM game_scores
		WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
	return r.query(query, userID, limit)
}

// GetBestByUser retrieves a user's highest scoring sessions
func (r *GameScoreRepository) GetBestByUser(userID int64, limit int) ([]models.GameScore, error) {
	query := "SELECT " + gameScoreColumns + ` FROM game_scores
		WHERE user_id = ? ORDER BY points DESC LIMIT ?`
	return r.query(query, userID, limit)
}

// GetHighAccuracy retrieves a user's sessions at or above an accuracy threshold
func (r *GameScoreRepository) GetHighAccuracy(userID int64, minAccuracy float64) ([]models.GameScore, error) {
	query := "SELECT " + gameScoreColumns + ` FROM game_scores
		WHERE user_id = ? AND accuracy >= ? ORDER BY accuracy DESC`
	return r.query(query, userID, minAccuracy)
}

// GetByDateRange retrieves a user's scores between two times
func (r *GameScoreRepository) GetByDateRange(userID int64, from, to time.Time) ([]models.GameScore, error) {
	query := "SELECT " + gameScoreColumns + ` FROM game_scores
		WHERE user_id = ? AND created_at BETWEEN ? AND ? ORDER BY created_at DESC`
	return r.query(query, userID, from, to)
}

// UserTotals aggregates one user's lifetime game results
type UserTotals struct {
	TotalPoints     int     `json:"totalPoints"`
	TotalGames      int     `json:"totalGames"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	BestScore       int     `json:"bestScore"`
}

// GetUserTotals aggregates points, games, accuracy and best score for a user
func (r *GameScoreRepository) GetUserTotals(userID int64) (*UserTotals, error) {
	query := `
		SELECT COALESCE(SUM(points), 0), COUNT(*), COALESCE(AVG(accuracy), 0), COALESCE(MAX(points), 0)
		FROM game_scores WHERE user_id = ?
	`
	t := &UserTotals{}
	err := r.db.QueryRow(query, userID).Scan(&t.TotalPoints, &t.TotalGames, &t.AverageAccuracy, &t.BestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to get user totals: %w", err)
	}
	return t, nil
}

// GroupStat aggregates sessions sharing one key (game id or difficulty)
type GroupStat struct {
	Key             string  `json:"key"`
	Games           int     `json:"games"`
	TotalPoints     int     `json:"totalPoints"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	BestScore       int     `json:"bestScore"`
}

// GetGameBreakdown aggregates a user's sessions per game
func (r *GameScoreRepository) GetGameBreakdown(userID int64) ([]GroupStat, error) {
	query := `
		SELECT game_id, COUNT(*), COALESCE(SUM(points), 0), COALESCE(AVG(accuracy), 0), COALESCE(MAX(points), 0)
		FROM game_scores WHERE user_id = ?
		GROUP BY game_id
	`
	return r.groupQuery(query, userID)
}

// GetDifficultyBreakdown aggregates a user's sessions per difficulty
func (r *GameScoreRepository) GetDifficultyBreakdown(userID int64) ([]GroupStat, error) {
	query := `
		SELECT difficulty, COUNT(*), COALESCE(SUM(points), 0), COALESCE(AVG(accuracy), 0), COALESCE(MAX(points), 0)
		FROM game_scores WHERE user_id = ?
		GROUP BY difficulty
	`
	return r.groupQuery(query, userID)
}

// LeaderboardEntry is one row of a points leaderboard
type LeaderboardEntry struct {
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	TotalPoints int    `json:"totalPoints"`
	Games       int    `json:"games"`
}

// GetLeaderboard ranks users by points, optionally within one game
func (r *GameScoreRepository) GetLeaderboard(gameID string, limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT gs.user_id, u.name, COALESCE(SUM(gs.points), 0) AS total_points, COUNT(*)
		FROM game_scores gs
		JOIN users u ON u.id = gs.user_id
	`
	args := []interface{}{}
	if gameID != "" {
		query += " WHERE gs.game_id = ?"
		args = append(args, gameID)
	}
	query += " GROUP BY gs.user_id, u.name ORDER BY total_points DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.TotalPoints, &e.Games); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetDailyPoints sums a user's points per day since a time
func (r *GameScoreRepository) GetDailyPoints(userID int64, since time.Time) (map[string]int, error) {
	query := "SELECT " + gameScoreColumns + ` FROM game_scores
		WHERE user_id = ? AND created_at >= ?`
	scores, err := r.query(query, userID, since)
	if err != nil {
		return nil, err
	}

	daily := make(map[string]int)
	for _, s := range scores {
		daily[s.CreatedAt.Format(dateLayout)] += s.Points
	}
	return daily, nil
}

// CountByGame counts a user's sessions for one game
func (r *GameScoreRepository) CountByGame(userID int64, gameID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM game_scores WHERE user_id = ? AND game_id = ?"
	err := r.db.QueryRow(query, userID, gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count game sessions: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes scores created before the cutoff, returning the count
func (r *GameScoreRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM game_scores WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old scores: %w", err)
	}
	return result.RowsAffected()
}

func (r *GameScoreRepository) query(query string, args ...interface{}) ([]models.GameScore, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query game scores: %w", err)
	}
	defer rows.Close()
	return collectGameScores(rows)
}

func (r *GameScoreRepository) groupQuery(query string, args ...interface{}) ([]GroupStat, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query score breakdown: %w", err)
	}
	defer rows.Close()

	var stats []GroupStat
	for rows.Next() {
		var s GroupStat
		if err := rows.Scan(&s.Key, &s.Games, &s.TotalPoints, &s.AverageAccuracy, &s.BestScore); err != nil {
			return nil, fmt.Errorf("failed to scan score breakdown: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func collectGameScores(rows *sql.Rows) ([]models.GameScore, error) {
	var scores []models.GameScore
	for rows.Next() {
		var s models.GameScore
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.GameID, &s.Points, &s.Accuracy, &s.Attempts, &s.HintsUsed,
			&s.TotalTimeMs, &s.AverageSpeed, &s.Difficulty, &s.WordsCompleted,
			&s.LevelsCompleted, &s.GamesCompleted, &s.PerfectRounds, &s.DailyChallenges,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game score: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
