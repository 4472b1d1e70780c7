package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// ExerciseRepository handles database operations for speech practice attempts
type ExerciseRepository struct {
	db database.DBTX
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db database.DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `id, user_id, exercise_type, target_text, overall_score, accuracy_score,
		fluency_score, clarity_score, feedback, audio_file_path, session_duration,
		points_earned, completed_at`

// Create inserts a practice attempt record
func (r *ExerciseRepository) Create(e *models.Exercise) error {
	query := `
		INSERT INTO exercises (user_id, exercise_type, target_text, overall_score, accuracy_score,
			fluency_score, clarity_score, feedback, audio_file_path, session_duration, points_earned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		e.UserID, e.ExerciseType, e.TargetText, e.OverallScore, e.AccuracyScore,
		e.FluencyScore, e.ClarityScore, e.Feedback, e.AudioFilePath,
		e.SessionDuration, e.PointsEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	e.ID = id
	e.CompletedAt = time.Now()
	return nil
}

// GetRecent retrieves a user's latest attempts, newest first
func (r *ExerciseRepository) GetRecent(userID int64, limit int) ([]models.Exercise, error) {
	query := "SELECT " + exerciseColumns + ` FROM exercises
		WHERE user_id = ? ORDER BY completed_at DESC LIMIT ?`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()
	return collectExercises(rows)
}

// TypeStat aggregates attempt counts and average score per exercise type
type TypeStat struct {
	ExerciseType string  `json:"exerciseType"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"averageScore"`
}

// GetTypeStats aggregates a user's attempts grouped by exercise type
func (r *ExerciseRepository) GetTypeStats(userID int64) ([]TypeStat, error) {
	query := `
		SELECT exercise_type, COUNT(*), AVG(overall_score)
		FROM exercises WHERE user_id = ?
		GROUP BY exercise_type
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query type stats: %w", err)
	}
	defer rows.Close()

	var stats []TypeStat
	for rows.Next() {
		var s TypeStat
		if err := rows.Scan(&s.ExerciseType, &s.Count, &s.AverageScore); err != nil {
			return nil, fmt.Errorf("failed to scan type stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CountSince counts a user's attempts completed on or after a time
func (r *ExerciseRepository) CountSince(userID int64, since time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM exercises WHERE user_id = ? AND completed_at >= ?"
	err := r.db.QueryRow(query, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count exercises: %w", err)
	}
	return count, nil
}

func collectExercises(rows *sql.Rows) ([]models.Exercise, error) {
	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ExerciseType, &e.TargetText, &e.OverallScore, &e.AccuracyScore,
			&e.FluencyScore, &e.ClarityScore, &e.Feedback, &e.AudioFilePath,
			&e.SessionDuration, &e.PointsEarned, &e.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
