package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// AIExerciseRepository handles database operations for generated exercises
type AIExerciseRepository struct {
	db database.DBTX
}

// NewAIExerciseRepository creates a new AI exercise repository
func NewAIExerciseRepository(db database.DBTX) *AIExerciseRepository {
	return &AIExerciseRepository{db: db}
}

const aiExerciseColumns = `id, user_id, exercise_type, content, target_phonemes, target_skills,
		difficulty_level, context, ai_reasoning, is_completed, performance_score,
		created_at, expires_at`

// Create inserts a generated exercise
func (r *AIExerciseRepository) Create(e *models.AIExercise) error {
	query := `
		INSERT INTO ai_exercises (user_id, exercise_type, content, target_phonemes, target_skills,
			difficulty_level, context, ai_reasoning, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		e.UserID, string(e.ExerciseType), e.Content, e.TargetPhonemes, e.TargetSkills,
		e.DifficultyLevel, e.Context, e.AIReasoning, e.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create generated exercise: %w", err)
	}
	e.ID = id
	e.CreatedAt = time.Now()
	return nil
}

// GetByID retrieves one generated exercise, nil when absent
func (r *AIExerciseRepository) GetByID(id int64) (*models.AIExercise, error) {
	query := "SELECT " + aiExerciseColumns + " FROM ai_exercises WHERE id = ?"
	e := &models.AIExercise{}
	err := r.db.QueryRow(query, id).Scan(
		&e.ID, &e.UserID, &e.ExerciseType, &e.Content, &e.TargetPhonemes, &e.TargetSkills,
		&e.DifficultyLevel, &e.Context, &e.AIReasoning, &e.IsCompleted, &e.PerformanceScore,
		&e.CreatedAt, &e.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generated exercise: %w", err)
	}
	return e, nil
}

// GetByUser retrieves all of a user's generated exercises, newest first
func (r *AIExerciseRepository) GetByUser(userID int64) ([]models.AIExercise, error) {
	query := "SELECT " + aiExerciseColumns + ` FROM ai_exercises
		WHERE user_id = ? ORDER BY created_at DESC`
	return r.query(query, userID)
}

// GetActiveByUser retrieves exercises that are neither completed nor expired
func (r *AIExerciseRepository) GetActiveByUser(userID int64, now time.Time) ([]models.AIExercise, error) {
	query := "SELECT " + aiExerciseColumns + ` FROM ai_exercises
		WHERE user_id = ? AND is_completed = ` + r.db.GetDialect().BoolValue(false) + `
		AND expires_at > ? ORDER BY created_at DESC`
	return r.query(query, userID, now)
}

// MarkCompleted records a performance score and closes the exercise.
// Returns false when no open exercise with that id exists.
func (r *AIExerciseRepository) MarkCompleted(id int64, performanceScore int) (bool, error) {
	query := `
		UPDATE ai_exercises
		SET is_completed = ` + r.db.GetDialect().BoolValue(true) + `, performance_score = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, performanceScore, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete generated exercise: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read completion result: %w", err)
	}
	return rows > 0, nil
}

func (r *AIExerciseRepository) query(query string, args ...interface{}) ([]models.AIExercise, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query generated exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.AIExercise
	for rows.Next() {
		var e models.AIExercise
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ExerciseType, &e.Content, &e.TargetPhonemes, &e.TargetSkills,
			&e.DifficultyLevel, &e.Context, &e.AIReasoning, &e.IsCompleted, &e.PerformanceScore,
			&e.CreatedAt, &e.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generated exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
