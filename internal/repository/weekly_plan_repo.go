package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// WeeklyPlanRepository handles database operations for weekly plans
type WeeklyPlanRepository struct {
	db database.DBTX
}

// NewWeeklyPlanRepository creates a new weekly plan repository
func NewWeeklyPlanRepository(db database.DBTX) *WeeklyPlanRepository {
	return &WeeklyPlanRepository{db: db}
}

const planColumns = `id, user_id, week_start, week_end, weekly_goal_minutes, completed_minutes,
		body_exercise_goal, body_exercises_done, speech_exercise_goal, speech_exercises_done,
		is_completed, weekly_streak, created_at, updated_at`

func scanPlan(row *sql.Row) (*models.WeeklyPlan, error) {
	p := &models.WeeklyPlan{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.WeekStart, &p.WeekEnd, &p.WeeklyGoalMinutes, &p.CompletedMinutes,
		&p.BodyExerciseGoal, &p.BodyExercisesDone, &p.SpeechExerciseGoal, &p.SpeechExercisesDone,
		&p.IsCompleted, &p.WeeklyStreak, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly plan: %w", err)
	}
	return p, nil
}

// EnsurePlan creates the plan row for a week when it does not exist yet.
// The unique (user_id, week_start) key makes this safe under concurrency.
func (r *WeeklyPlanRepository) EnsurePlan(p *models.WeeklyPlan) error {
	query := r.db.GetDialect().IgnoreConflictInsert(`
		INSERT INTO weekly_plans (user_id, week_start, week_end, weekly_goal_minutes,
			body_exercise_goal, speech_exercise_goal)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.Exec(query,
		p.UserID, p.WeekStart.Format(dateLayout), p.WeekEnd.Format(dateLayout),
		p.WeeklyGoalMinutes, p.BodyExerciseGoal, p.SpeechExerciseGoal,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure weekly plan: %w", err)
	}
	return nil
}

// GetByWeek retrieves a user's plan for the week starting at weekStart
func (r *WeeklyPlanRepository) GetByWeek(userID int64, weekStart time.Time) (*models.WeeklyPlan, error) {
	query := "SELECT " + planColumns + " FROM weekly_plans WHERE user_id = ? AND week_start = ?"
	return scanPlan(r.db.QueryRow(query, userID, weekStart.Format(dateLayout)))
}

// Accumulate folds daily activity into the weekly counters in one relative
// UPDATE. is_completed is assigned first so every dialect evaluates it
// against the pre-update minute count.
func (r *WeeklyPlanRepository) Accumulate(userID int64, weekStart time.Time, minutes, speechExercises, bodyExercises int) error {
	query := `
		UPDATE weekly_plans
		SET is_completed = completed_minutes + ? >= weekly_goal_minutes,
			completed_minutes = completed_minutes + ?,
			speech_exercises_done = speech_exercises_done + ?,
			body_exercises_done = body_exercises_done + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND week_start = ?
	`
	_, err := r.db.Exec(query, minutes, minutes, speechExercises, bodyExercises,
		userID, weekStart.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to accumulate weekly plan: %w", err)
	}
	return nil
}

// ResetWeek zeroes the progress counters of every plan for the given week
func (r *WeeklyPlanRepository) ResetWeek(weekStart time.Time) (int64, error) {
	query := `
		UPDATE weekly_plans
		SET completed_minutes = 0, body_exercises_done = 0, speech_exercises_done = 0,
			is_completed = ` + r.db.GetDialect().BoolValue(false) + `,
			updated_at = CURRENT_TIMESTAMP
		WHERE week_start = ?
	`
	result, err := r.db.Exec(query, weekStart.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly plans: %w", err)
	}
	return result.RowsAffected()
}

// GetHistory retrieves all of a user's plans, newest week first
func (r *WeeklyPlanRepository) GetHistory(userID int64) ([]models.WeeklyPlan, error) {
	query := "SELECT " + planColumns + " FROM weekly_plans WHERE user_id = ? ORDER BY week_start DESC"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan history: %w", err)
	}
	defer rows.Close()
	return collectPlans(rows)
}

// GetAllForWeek retrieves every user's plan for one week
func (r *WeeklyPlanRepository) GetAllForWeek(weekStart time.Time) ([]models.WeeklyPlan, error) {
	query := "SELECT " + planColumns + " FROM weekly_plans WHERE week_start = ?"
	rows, err := r.db.Query(query, weekStart.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly plans: %w", err)
	}
	defer rows.Close()
	return collectPlans(rows)
}

func collectPlans(rows *sql.Rows) ([]models.WeeklyPlan, error) {
	var plans []models.WeeklyPlan
	for rows.Next() {
		var p models.WeeklyPlan
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.WeekStart, &p.WeekEnd, &p.WeeklyGoalMinutes, &p.CompletedMinutes,
			&p.BodyExerciseGoal, &p.BodyExercisesDone, &p.SpeechExerciseGoal, &p.SpeechExercisesDone,
			&p.IsCompleted, &p.WeeklyStreak, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan weekly plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
