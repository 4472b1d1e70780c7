package repository

import (
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// FluencyRepository handles database operations for fluency analysis results
type FluencyRepository struct {
	db database.DBTX
}

// NewFluencyRepository creates a new fluency repository
func NewFluencyRepository(db database.DBTX) *FluencyRepository {
	return &FluencyRepository{db: db}
}

// Create inserts a fluency score record
func (r *FluencyRepository) Create(s *models.FluencyScore) error {
	query := `
		INSERT INTO fluency_scores (user_id, pronunciation_score, rhythm_score, pace_score,
			expression_score, overall_score, speaking_rate_wpm, pause_count, stutter_detected,
			emotion_detected, feedback_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		s.UserID, s.PronunciationScore, s.RhythmScore, s.PaceScore,
		s.ExpressionScore, s.OverallScore, s.SpeakingRateWPM, s.PauseCount,
		s.StutterDetected, s.EmotionDetected, s.FeedbackNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to create fluency score: %w", err)
	}
	s.ID = id
	s.CreatedAt = time.Now()
	return nil
}

// GetRecent retrieves a user's latest fluency scores, newest first
func (r *FluencyRepository) GetRecent(userID int64, limit int) ([]models.FluencyScore, error) {
	query := `
		SELECT id, user_id, pronunciation_score, rhythm_score, pace_score, expression_score,
			overall_score, speaking_rate_wpm, pause_count, stutter_detected, emotion_detected,
			feedback_notes, created_at
		FROM fluency_scores
		WHERE user_id = ? ORDER BY created_at DESC LIMIT ?
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fluency scores: %w", err)
	}
	defer rows.Close()

	var scores []models.FluencyScore
	for rows.Next() {
		var s models.FluencyScore
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.PronunciationScore, &s.RhythmScore, &s.PaceScore,
			&s.ExpressionScore, &s.OverallScore, &s.SpeakingRateWPM, &s.PauseCount,
			&s.StutterDetected, &s.EmotionDetected, &s.FeedbackNotes, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fluency score: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
