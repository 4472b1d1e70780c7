package models

import (
	"fmt"
	"time"
)

// GeneratedExerciseType is the closed set of exercise kinds the generator produces
type GeneratedExerciseType string

const (
	GeneratedSentence      GeneratedExerciseType = "sentence"
	GeneratedStory         GeneratedExerciseType = "story"
	GeneratedConversation  GeneratedExerciseType = "conversation"
	GeneratedTongueTwister GeneratedExerciseType = "tongue_twister"
)

// GeneratedExerciseTypes lists all generator exercise kinds in plan order
var GeneratedExerciseTypes = []GeneratedExerciseType{
	GeneratedSentence,
	GeneratedStory,
	GeneratedConversation,
	GeneratedTongueTwister,
}

// ParseGeneratedExerciseType validates a request parameter against the closed set
func ParseGeneratedExerciseType(s string) (GeneratedExerciseType, error) {
	switch GeneratedExerciseType(s) {
	case GeneratedSentence, GeneratedStory, GeneratedConversation, GeneratedTongueTwister:
		return GeneratedExerciseType(s), nil
	}
	return "", fmt.Errorf("unknown exercise type %q", s)
}

// AIExerciseLifetime is how long a generated exercise stays available
const AIExerciseLifetime = 7 * 24 * time.Hour

// AIExercise is a personalized exercise produced by the template generator
type AIExercise struct {
	ID               int64                 `json:"id"`
	UserID           int64                 `json:"userId"`
	ExerciseType     GeneratedExerciseType `json:"exerciseType"`
	Content          string                `json:"content"`
	TargetPhonemes   string                `json:"targetPhonemes"`
	TargetSkills     string                `json:"targetSkills"`
	DifficultyLevel  string                `json:"difficultyLevel"`
	Context          string                `json:"context"`
	AIReasoning      string                `json:"aiReasoning"`
	IsCompleted      bool                  `json:"isCompleted"`
	PerformanceScore int                   `json:"performanceScore"`
	CreatedAt        time.Time             `json:"createdAt"`
	ExpiresAt        time.Time             `json:"expiresAt"`
}

// IsActive reports whether the exercise is still open for practice at t
func (e *AIExercise) IsActive(t time.Time) bool {
	return !e.IsCompleted && t.Before(e.ExpiresAt)
}
