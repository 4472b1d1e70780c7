package models

import (
	"fmt"
	"time"
)

// SpeechExerciseType is the closed set of practice attempt kinds the
// analyzer accepts
type SpeechExerciseType string

const (
	SpeechPhoneme       SpeechExerciseType = "phoneme"
	SpeechWord          SpeechExerciseType = "word"
	SpeechSentence      SpeechExerciseType = "sentence"
	SpeechConversation  SpeechExerciseType = "conversation"
	SpeechTongueTwister SpeechExerciseType = "tongue_twister"
)

// ParseSpeechExerciseType validates a request parameter against the closed set
func ParseSpeechExerciseType(s string) (SpeechExerciseType, error) {
	switch SpeechExerciseType(s) {
	case SpeechPhoneme, SpeechWord, SpeechSentence, SpeechConversation, SpeechTongueTwister:
		return SpeechExerciseType(s), nil
	}
	return "", fmt.Errorf("unknown exercise type %q", s)
}

// Exercise records a single speech practice attempt with its scores
type Exercise struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ExerciseType    string    `json:"exerciseType"`
	TargetText      string    `json:"targetText"`
	OverallScore    int       `json:"overallScore"`
	AccuracyScore   int       `json:"accuracyScore"`
	FluencyScore    int       `json:"fluencyScore"`
	ClarityScore    int       `json:"clarityScore"`
	Feedback        string    `json:"feedback"`
	AudioFilePath   string    `json:"audioFilePath,omitempty"`
	SessionDuration int       `json:"sessionDuration"`
	PointsEarned    int       `json:"pointsEarned"`
	CompletedAt     time.Time `json:"completedAt"`
}

// CompletedExercise records a finished body or speech exercise for the daily log
type CompletedExercise struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	ExerciseName    string    `json:"exerciseName"`
	ExerciseType    string    `json:"exerciseType"`
	DifficultyLevel string    `json:"difficultyLevel"`
	DurationSeconds int       `json:"durationSeconds"`
	Notes           string    `json:"notes,omitempty"`
	PracticeDate    time.Time `json:"practiceDate"`
	CompletedAt     time.Time `json:"completedAt"`
}
