package models

import "time"

// UserProgress holds one user's practice totals for a single day
type UserProgress struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"userId"`
	PracticeDate         time.Time `json:"practiceDate"`
	TotalPracticeTime    int       `json:"totalPracticeTime"`
	ExercisesCompleted   int       `json:"exercisesCompleted"`
	AverageScore         float64   `json:"averageScore"`
	ReadingExercises     int       `json:"readingExercises"`
	RepetitionExercises  int       `json:"repetitionExercises"`
	ConversationPractice int       `json:"conversationPractice"`
	BreathingExercises   int       `json:"breathingExercises"`
	PointsEarned         int       `json:"pointsEarned"`
	GoalsMet             bool      `json:"goalsMet"`
}

// FluencyScore holds per-skill results from one speech analysis session
type FluencyScore struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"userId"`
	PronunciationScore int       `json:"pronunciationScore"`
	RhythmScore        int       `json:"rhythmScore"`
	PaceScore          int       `json:"paceScore"`
	ExpressionScore    int       `json:"expressionScore"`
	OverallScore       int       `json:"overallFluencyScore"`
	SpeakingRateWPM    int       `json:"speakingRateWpm"`
	PauseCount         int       `json:"pauseCount"`
	StutterDetected    bool      `json:"stutterDetected"`
	EmotionDetected    string    `json:"emotionDetected"`
	FeedbackNotes      string    `json:"feedbackNotes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}
