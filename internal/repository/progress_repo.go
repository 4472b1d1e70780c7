package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// dateLayout is the canonical format for DATE columns across all dialects
const dateLayout = "2006-01-02"

// PracticeKind is the closed set of speech practice categories tracked per day
type PracticeKind string

const (
	PracticeReading      PracticeKind = "reading"
	PracticeRepetition   PracticeKind = "repetition"
	PracticeConversation PracticeKind = "conversation"
	PracticeBreathing    PracticeKind = "breathing"
)

// counterColumn maps a practice kind to its daily counter column.
// The closed switch keeps exercise types out of raw SQL.
func counterColumn(kind PracticeKind) (string, error) {
	switch kind {
	case PracticeReading:
		return "reading_exercises", nil
	case PracticeRepetition:
		return "repetition_exercises", nil
	case PracticeConversation:
		return "conversation_practice", nil
	case PracticeBreathing:
		return "breathing_exercises", nil
	}
	return "", fmt.Errorf("unknown practice kind %q", kind)
}

// ProgressRepository handles database operations for daily practice records
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ensureDay guarantees a progress row exists for the user and date
func (r *ProgressRepository) ensureDay(userID int64, date time.Time) error {
	query := r.db.GetDialect().IgnoreConflictInsert(
		"INSERT INTO user_progress (user_id, practice_date) VALUES (?, ?)")
	_, err := r.db.Exec(query, userID, date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to ensure progress row: %w", err)
	}
	return nil
}

// AccumulateExercise folds one finished exercise into the day's totals in a
// single relative UPDATE, so concurrent sessions never lose counts.
// minutes are added to practice time and the rolling average absorbs score.
func (r *ProgressRepository) AccumulateExercise(userID int64, date time.Time, kind PracticeKind, minutes int, score float64, points, dailyGoal int) error {
	column, err := counterColumn(kind)
	if err != nil {
		return err
	}

	if err := r.ensureDay(userID, date); err != nil {
		return err
	}

	// goals_met and average_score are computed before the counters they read
	// are reassigned, which keeps MySQL's in-order SET semantics identical to
	// the old-row semantics of SQLite and PostgreSQL.
	query := `
		UPDATE user_progress
		SET average_score = ((average_score * exercises_completed) + ?) / (exercises_completed + 1),
			goals_met = total_practice_time + ? >= ?,
			exercises_completed = exercises_completed + 1,
			total_practice_time = total_practice_time + ?,
			points_earned = points_earned + ?,
			` + column + ` = ` + column + ` + 1
		WHERE user_id = ? AND practice_date = ?
	`
	_, err = r.db.Exec(query, score, minutes, dailyGoal, minutes, points, userID, date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("failed to accumulate progress: %w", err)
	}
	return nil
}

// SetDay overwrites a day's totals with absolute values
func (r *ProgressRepository) SetDay(p *models.UserProgress, dailyGoal int) error {
	if err := r.ensureDay(p.UserID, p.PracticeDate); err != nil {
		return err
	}

	p.GoalsMet = p.TotalPracticeTime >= dailyGoal
	query := `
		UPDATE user_progress
		SET total_practice_time = ?, exercises_completed = ?, average_score = ?,
			reading_exercises = ?, repetition_exercises = ?, conversation_practice = ?,
			breathing_exercises = ?, points_earned = ?, goals_met = ?
		WHERE user_id = ? AND practice_date = ?
	`
	_, err := r.db.Exec(query,
		p.TotalPracticeTime, p.ExercisesCompleted, p.AverageScore,
		p.ReadingExercises, p.RepetitionExercises, p.ConversationPractice,
		p.BreathingExercises, p.PointsEarned, p.GoalsMet,
		p.UserID, p.PracticeDate.Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to set daily progress: %w", err)
	}
	return nil
}

const progressColumns = `id, user_id, practice_date, total_practice_time, exercises_completed,
		average_score, reading_exercises, repetition_exercises, conversation_practice,
		breathing_exercises, points_earned, goals_met`

func scanProgress(row *sql.Row) (*models.UserProgress, error) {
	p := &models.UserProgress{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.PracticeDate, &p.TotalPracticeTime, &p.ExercisesCompleted,
		&p.AverageScore, &p.ReadingExercises, &p.RepetitionExercises, &p.ConversationPractice,
		&p.BreathingExercises, &p.PointsEarned, &p.GoalsMet,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

// GetByDate retrieves the progress row for a user on a date, nil when absent
func (r *ProgressRepository) GetByDate(userID int64, date time.Time) (*models.UserProgress, error) {
	query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ? AND practice_date = ?"
	return scanProgress(r.db.QueryRow(query, userID, date.Format(dateLayout)))
}

// GetRange retrieves progress rows between two dates inclusive, oldest first
func (r *ProgressRepository) GetRange(userID int64, from, to time.Time) ([]models.UserProgress, error) {
	query := "SELECT " + progressColumns + ` FROM user_progress
		WHERE user_id = ? AND practice_date BETWEEN ? AND ?
		ORDER BY practice_date`
	rows, err := r.db.Query(query, userID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query progress range: %w", err)
	}
	defer rows.Close()

	var records []models.UserProgress
	for rows.Next() {
		var p models.UserProgress
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.PracticeDate, &p.TotalPracticeTime, &p.ExercisesCompleted,
			&p.AverageScore, &p.ReadingExercises, &p.RepetitionExercises, &p.ConversationPractice,
			&p.BreathingExercises, &p.PointsEarned, &p.GoalsMet,
		); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
