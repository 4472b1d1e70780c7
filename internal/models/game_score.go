package models

import "time"

// GameIDs lists every mini-game that reports scores
var GameIDs = []string{
	"word-repetition",
	"tongue-twister",
	"fill-in-blank",
	"sound-matching",
	"audio-quiz",
	"timed-pronunciation",
	"phoneme-blending",
}

// GameScore records the outcome of one mini-game session
type GameScore struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	GameID          string    `json:"gameId"`
	Points          int       `json:"points"`
	Accuracy        float64   `json:"accuracy"`
	Attempts        int       `json:"attempts"`
	HintsUsed       int       `json:"hintsUsed"`
	TotalTimeMs     int64     `json:"totalTimeMs"`
	AverageSpeed    float64   `json:"averageSpeed"`
	Difficulty      string    `json:"difficulty"`
	WordsCompleted  int       `json:"wordsCompleted"`
	LevelsCompleted int       `json:"levelsCompleted"`
	GamesCompleted  int       `json:"gamesCompleted"`
	PerfectRounds   int       `json:"perfectRounds"`
	DailyChallenges int       `json:"dailyChallenges"`
	CreatedAt       time.Time `json:"timestamp"`
}

// RedeemCode is a reward code unlocked at a points threshold
type RedeemCode struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	PointsThreshold int        `json:"pointsThreshold"`
	Used            bool       `json:"used"`
	UsedAt          *time.Time `json:"usedAt,omitempty"`
}
