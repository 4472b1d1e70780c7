package repository

import (
	"database/sql"
	"fmt"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// BodyExerciseRepository handles database operations for the body exercise catalog
type BodyExerciseRepository struct {
	db database.DBTX
}

// NewBodyExerciseRepository creates a new body exercise repository
func NewBodyExerciseRepository(db database.DBTX) *BodyExerciseRepository {
	return &BodyExerciseRepository{db: db}
}

const bodyExerciseColumns = `id, exercise_name, exercise_type, difficulty_level, description,
		instructions, duration_seconds, repetitions, target_muscles, speech_benefits,
		video_url, image_url, is_active`

// Create inserts a catalog entry
func (r *BodyExerciseRepository) Create(e *models.BodyExercise) error {
	query := `
		INSERT INTO body_exercises (exercise_name, exercise_type, difficulty_level, description,
			instructions, duration_seconds, repetitions, target_muscles, speech_benefits,
			video_url, image_url, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		e.ExerciseName, e.ExerciseType, e.DifficultyLevel, e.Description,
		e.Instructions, e.DurationSeconds, e.Repetitions, e.TargetMuscles,
		e.SpeechBenefits, e.VideoURL, e.ImageURL, e.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create body exercise: %w", err)
	}
	e.ID = id
	return nil
}

// Count returns the number of catalog entries
func (r *BodyExerciseRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM body_exercises").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count body exercises: %w", err)
	}
	return count, nil
}

// GetAll retrieves every active catalog entry
func (r *BodyExerciseRepository) GetAll() ([]models.BodyExercise, error) {
	return r.query("SELECT " + bodyExerciseColumns + " FROM body_exercises WHERE is_active = " +
		r.db.GetDialect().BoolValue(true) + " ORDER BY difficulty_level, exercise_type")
}

// GetByDifficulty retrieves active entries for one difficulty level
func (r *BodyExerciseRepository) GetByDifficulty(level string) ([]models.BodyExercise, error) {
	return r.query("SELECT "+bodyExerciseColumns+" FROM body_exercises WHERE is_active = "+
		r.db.GetDialect().BoolValue(true)+" AND difficulty_level = ? ORDER BY exercise_type", level)
}

// GetByType retrieves active entries for one exercise type
func (r *BodyExerciseRepository) GetByType(exerciseType string) ([]models.BodyExercise, error) {
	return r.query("SELECT "+bodyExerciseColumns+" FROM body_exercises WHERE is_active = "+
		r.db.GetDialect().BoolValue(true)+" AND exercise_type = ? ORDER BY difficulty_level", exerciseType)
}

func (r *BodyExerciseRepository) query(query string, args ...interface{}) ([]models.BodyExercise, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query body exercises: %w", err)
	}
	defer rows.Close()
	return collectBodyExercises(rows)
}

func collectBodyExercises(rows *sql.Rows) ([]models.BodyExercise, error) {
	var exercises []models.BodyExercise
	for rows.Next() {
		var e models.BodyExercise
		if err := rows.Scan(
			&e.ID, &e.ExerciseName, &e.ExerciseType, &e.DifficultyLevel, &e.Description,
			&e.Instructions, &e.DurationSeconds, &e.Repetitions, &e.TargetMuscles,
			&e.SpeechBenefits, &e.VideoURL, &e.ImageURL, &e.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan body exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
