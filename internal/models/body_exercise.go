package models

// Body exercise types
const (
	BodyTypeBreathing  = "breathing"
	BodyTypeFacial     = "facial"
	BodyTypeJaw        = "jaw"
	BodyTypeTongue     = "tongue"
	BodyTypeVocal      = "vocal"
	BodyTypeGesture    = "gesture"
	BodyTypeRelaxation = "relaxation"
)

// BodyExercise is a catalog entry for a physical warm-up exercise
type BodyExercise struct {
	ID              int64  `json:"id"`
	ExerciseName    string `json:"exerciseName"`
	ExerciseType    string `json:"exerciseType"`
	DifficultyLevel string `json:"difficultyLevel"`
	Description     string `json:"description"`
	Instructions    string `json:"instructions"`
	DurationSeconds int    `json:"durationSeconds"`
	Repetitions     int    `json:"repetitions"`
	TargetMuscles   string `json:"targetMuscles"`
	SpeechBenefits  string `json:"speechBenefits"`
	VideoURL        string `json:"videoUrl,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	IsActive        bool   `json:"isActive"`
}
