package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// CompletedExerciseRepository handles database operations for the exercise log
type CompletedExerciseRepository struct {
	db database.DBTX
}

// NewCompletedExerciseRepository creates a new completed exercise repository
func NewCompletedExerciseRepository(db database.DBTX) *CompletedExerciseRepository {
	return &CompletedExerciseRepository{db: db}
}

const completedColumns = `id, user_id, exercise_name, exercise_type, difficulty_level,
		duration_seconds, notes, practice_date, completed_at`

// Create inserts a log entry
func (r *CompletedExerciseRepository) Create(e *models.CompletedExercise) error {
	query := `
		INSERT INTO completed_exercises (user_id, exercise_name, exercise_type, difficulty_level,
			duration_seconds, notes, practice_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		e.UserID, e.ExerciseName, e.ExerciseType, e.DifficultyLevel,
		e.DurationSeconds, e.Notes, e.PracticeDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create completed exercise: %w", err)
	}
	e.ID = id
	e.CompletedAt = time.Now()
	return nil
}

// GetByDate retrieves a user's log entries for one day, newest first
func (r *CompletedExerciseRepository) GetByDate(userID int64, date time.Time) ([]models.CompletedExercise, error) {
	query := "SELECT " + completedColumns + ` FROM completed_exercises
		WHERE user_id = ? AND practice_date = ? ORDER BY completed_at DESC`
	return r.query(query, userID, date.Format(dateLayout))
}

// GetAll retrieves every log entry for a user, newest first
func (r *CompletedExerciseRepository) GetAll(userID int64) ([]models.CompletedExercise, error) {
	query := "SELECT " + completedColumns + ` FROM completed_exercises
		WHERE user_id = ? ORDER BY completed_at DESC`
	return r.query(query, userID)
}

// GetByDateRange retrieves log entries between two dates inclusive
func (r *CompletedExerciseRepository) GetByDateRange(userID int64, from, to time.Time) ([]models.CompletedExercise, error) {
	query := "SELECT " + completedColumns + ` FROM completed_exercises
		WHERE user_id = ? AND practice_date BETWEEN ? AND ?
		ORDER BY completed_at DESC`
	return r.query(query, userID, from.Format(dateLayout), to.Format(dateLayout))
}

// CountBy aggregates a user's log entries by an allowed grouping column
func (r *CompletedExerciseRepository) countBy(userID int64, column string) (map[string]int, error) {
	query := "SELECT " + column + ", COUNT(*) FROM completed_exercises WHERE user_id = ? GROUP BY " + column
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercise counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan exercise count: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// CountByType aggregates a user's log entries per exercise type
func (r *CompletedExerciseRepository) CountByType(userID int64) (map[string]int, error) {
	return r.countBy(userID, "exercise_type")
}

// CountByDifficulty aggregates a user's log entries per difficulty level
func (r *CompletedExerciseRepository) CountByDifficulty(userID int64) (map[string]int, error) {
	return r.countBy(userID, "difficulty_level")
}

// CountTotal counts all log entries for a user
func (r *CompletedExerciseRepository) CountTotal(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM completed_exercises WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed exercises: %w", err)
	}
	return count, nil
}

// CountByDay counts a user's log entries for one day
func (r *CompletedExerciseRepository) CountByDay(userID int64, date time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM completed_exercises WHERE user_id = ? AND practice_date = ?"
	err := r.db.QueryRow(query, userID, date.Format(dateLayout)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed exercises: %w", err)
	}
	return count, nil
}

func (r *CompletedExerciseRepository) query(query string, args ...interface{}) ([]models.CompletedExercise, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed exercises: %w", err)
	}
	defer rows.Close()
	return collectCompleted(rows)
}

func collectCompleted(rows *sql.Rows) ([]models.CompletedExercise, error) {
	var entries []models.CompletedExercise
	for rows.Next() {
		var e models.CompletedExercise
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ExerciseName, &e.ExerciseType, &e.DifficultyLevel,
			&e.DurationSeconds, &e.Notes, &e.PracticeDate, &e.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan completed exercise: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
