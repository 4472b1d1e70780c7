package models

import "time"

// Difficulty levels used across users, exercises and plans
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// User represents a learner account in the system
type User struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Age                int       `json:"age"`
	NativeLanguage     string    `json:"nativeLanguage"`
	TargetLanguage     string    `json:"targetLanguage"`
	DifficultyLevel    string    `json:"difficultyLevel"`
	TotalPoints        int       `json:"totalPoints"`
	StreakDays         int       `json:"streakDays"`
	ExercisesCompleted int       `json:"exercisesCompleted"`
	DailyGoal          int       `json:"dailyGoal"`
	WeeklyGoal         int       `json:"weeklyGoal"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Defaults applied when a new account is created
const (
	DefaultAge        = 25
	DefaultLanguage   = "English"
	DefaultDailyGoal  = 15
	DefaultWeeklyGoal = 105
)

// NewUser returns a user with account defaults applied
func NewUser(name, email string) *User {
	return &User{
		Name:            name,
		Email:           email,
		Age:             DefaultAge,
		NativeLanguage:  DefaultLanguage,
		TargetLanguage:  DefaultLanguage,
		DifficultyLevel: DifficultyIntermediate,
		DailyGoal:       DefaultDailyGoal,
		WeeklyGoal:      DefaultWeeklyGoal,
	}
}
