package service

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"
	"speechcoach/internal/wordbank"

	"go.uber.org/zap"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// recentScoreWindow is how many past analysis sessions inform generation
const recentScoreWindow = 10

// maxSuggestionDuration filters body exercise suggestions to five minutes
const maxSuggestionDuration = 300

// suggestionLimit caps body exercise suggestions
const suggestionLimit = 3

// Weaknesses grades each speech skill from recent analysis sessions.
// Severity is "high", "moderate" or "low" per skill.
type Weaknesses struct {
	Pronunciation string
	Rhythm        string
	Pace          string
	Expression    string
	Stuttering    bool
	LowConfidence bool
}

// highSkills lists the skills graded high, in a stable order
func (w *Weaknesses) highSkills() []string {
	var skills []string
	for _, s := range []struct {
		name     string
		severity string
	}{
		{"pronunciation", w.Pronunciation},
		{"rhythm", w.Rhythm},
		{"pace", w.Pace},
		{"expression", w.Expression},
	} {
		if s.severity == "high" {
			skills = append(skills, s.name)
		}
	}
	return skills
}

// GeneratorService builds personalized exercises from templates, driven by
// the user's recent fluency analysis results
type GeneratorService struct {
	aiRepo      *repository.AIExerciseRepository
	fluencyRepo *repository.FluencyRepository
	bodyRepo    *repository.BodyExerciseRepository
	bank        *wordbank.Bank
	logger      *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGeneratorService creates a new generator service
func NewGeneratorService(aiRepo *repository.AIExerciseRepository, fluencyRepo *repository.FluencyRepository, bodyRepo *repository.BodyExerciseRepository, bank *wordbank.Bank, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{
		aiRepo:      aiRepo,
		fluencyRepo: fluencyRepo,
		bodyRepo:    bodyRepo,
		bank:        bank,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func severity(avg float64) string {
	if avg < 75 {
		return "high"
	}
	if avg < 85 {
		return "moderate"
	}
	return "low"
}

// analyzeWeaknesses grades the user's skills over the recent score window.
// Users without any sessions get moderate grades across the board.
func (s *GeneratorService) analyzeWeaknesses(userID int64) (*Weaknesses, error) {
	scores, err := s.fluencyRepo.GetRecent(userID, recentScoreWindow)
	if err != nil {
		return nil, err
	}

	if len(scores) == 0 {
		return &Weaknesses{
			Pronunciation: "moderate",
			Rhythm:        "moderate",
			Pace:          "moderate",
			Expression:    "moderate",
		}, nil
	}

	var pronunciation, rhythm, pace, expression float64
	var stutterCount, nervousCount int
	for _, fs := range scores {
		pronunciation += float64(fs.PronunciationScore)
		rhythm += float64(fs.RhythmScore)
		pace += float64(fs.PaceScore)
		expression += float64(fs.ExpressionScore)
		if fs.StutterDetected {
			stutterCount++
		}
		if fs.EmotionDetected == "nervous" {
			nervousCount++
		}
	}
	n := float64(len(scores))

	return &Weaknesses{
		Pronunciation: severity(pronunciation / n),
		Rhythm:        severity(rhythm / n),
		Pace:          severity(pace / n),
		Expression:    severity(expression / n),
		Stuttering:    stutterCount > 0,
		LowConfidence: nervousCount > 2,
	}, nil
}

// GenerateExercise builds and stores one personalized exercise of the given type
func (s *GeneratorService) GenerateExercise(user *models.User, exerciseType models.GeneratedExerciseType) (*models.AIExercise, error) {
	weaknesses, err := s.analyzeWeaknesses(user.ID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	content := s.generateContent(exerciseType, weaknesses)
	s.mu.Unlock()

	exercise := &models.AIExercise{
		UserID:          user.ID,
		ExerciseType:    exerciseType,
		Content:         content,
		TargetPhonemes:  targetPhonemes(weaknesses),
		TargetSkills:    strings.Join(weaknesses.highSkills(), ","),
		DifficultyLevel: user.DifficultyLevel,
		Context:         exerciseContext(exerciseType),
		AIReasoning:     reasoning(weaknesses, exerciseType),
		ExpiresAt:       time.Now().Add(models.AIExerciseLifetime),
	}

	if err := s.aiRepo.Create(exercise); err != nil {
		return nil, err
	}
	s.logger.Info("exercise generated",
		zap.Int64("user_id", user.ID),
		zap.String("type", string(exerciseType)))
	return exercise, nil
}

// GenerateWeeklyExercisePlan builds one exercise of every type
func (s *GeneratorService) GenerateWeeklyExercisePlan(user *models.User) ([]models.AIExercise, error) {
	plan := make([]models.AIExercise, 0, len(models.GeneratedExerciseTypes))
	for _, t := range models.GeneratedExerciseTypes {
		exercise, err := s.GenerateExercise(user, t)
		if err != nil {
			return nil, err
		}
		plan = append(plan, *exercise)
	}
	return plan, nil
}

// ListExercises returns all of a user's generated exercises, newest first
func (s *GeneratorService) ListExercises(userID int64) ([]models.AIExercise, error) {
	return s.aiRepo.GetByUser(userID)
}

// ListActiveExercises returns exercises still open for practice
func (s *GeneratorService) ListActiveExercises(userID int64) ([]models.AIExercise, error) {
	return s.aiRepo.GetActiveByUser(userID, time.Now())
}

// CompleteExercise records a performance score and closes the exercise
func (s *GeneratorService) CompleteExercise(id int64, performanceScore int) (*models.AIExercise, error) {
	updated, err := s.aiRepo.MarkCompleted(id, performanceScore)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrExerciseNotFound
	}
	return s.aiRepo.GetByID(id)
}

// SuggestBodyExercises picks up to three short body exercises matching the
// user's level. An empty target area draws from every relaxation area. The
// returned stress level summarizes the user's recent sessions.
func (s *GeneratorService) SuggestBodyExercises(user *models.User, targetArea string) ([]models.BodyExercise, string, error) {
	areas := []string{models.BodyTypeBreathing, models.BodyTypeFacial, models.BodyTypeGesture}
	if targetArea != "" {
		areas = []string{targetArea}
	}

	var suggestions []models.BodyExercise
	for _, area := range areas {
		exercises, err := s.bodyRepo.GetByType(area)
		if err != nil {
			return nil, "", err
		}
		for _, e := range exercises {
			if e.DifficultyLevel != user.DifficultyLevel {
				continue
			}
			if e.DurationSeconds > maxSuggestionDuration {
				continue
			}
			suggestions = append(suggestions, e)
			if len(suggestions) >= suggestionLimit {
				break
			}
		}
		if len(suggestions) >= suggestionLimit {
			break
		}
	}

	stressLevel, err := s.detectStressLevel(user.ID)
	if err != nil {
		return nil, "", err
	}
	return suggestions, stressLevel, nil
}

// detectStressLevel grades stress from nervous sessions and overall scores
func (s *GeneratorService) detectStressLevel(userID int64) (string, error) {
	scores, err := s.fluencyRepo.GetRecent(userID, recentScoreWindow)
	if err != nil {
		return "", err
	}
	if len(scores) == 0 {
		return "moderate", nil
	}

	var nervousCount int
	var overall float64
	for _, fs := range scores {
		if fs.EmotionDetected == "nervous" {
			nervousCount++
		}
		overall += float64(fs.OverallScore)
	}
	avg := overall / float64(len(scores))

	switch {
	case nervousCount > 2 || avg < 70:
		return "high", nil
	case nervousCount > 0 || avg < 80:
		return "moderate", nil
	default:
		return "low", nil
	}
}

func (s *GeneratorService) generateContent(exerciseType models.GeneratedExerciseType, w *Weaknesses) string {
	switch exerciseType {
	case models.GeneratedStory:
		return s.bank.StoryTemplate(s.rng)
	case models.GeneratedConversation:
		return s.bank.ConversationScenario(s.rng)
	case models.GeneratedTongueTwister:
		return s.bank.TongueTwisterPattern(s.rng)
	default:
		return s.generateSentence(w)
	}
}

// generateSentence favors an articulation-heavy structure when
// pronunciation is the user's weakest skill
func (s *GeneratorService) generateSentence(w *Weaknesses) string {
	if w.Pronunciation == "high" {
		return "The " + s.bank.Word("adjective", s.rng) + " " + s.bank.Word("noun", s.rng) +
			" " + s.bank.Word("verb", s.rng) + " " + s.bank.Word("adverb", s.rng) + "."
	}
	return "She " + s.bank.Word("verb", s.rng) + " " + s.bank.Word("adjective", s.rng) +
		" " + s.bank.Word("noun", s.rng) + " in the " + s.bank.Word("location", s.rng) + "."
}

func targetPhonemes(w *Weaknesses) string {
	var phonemes []string
	if w.Pronunciation == "high" {
		phonemes = append(phonemes, "th", "r", "s", "l", "sh")
	}
	if w.Rhythm == "high" {
		phonemes = append(phonemes, "stress", "intonation", "pitch")
	}
	return strings.Join(phonemes, ",")
}

func exerciseContext(exerciseType models.GeneratedExerciseType) string {
	switch exerciseType {
	case models.GeneratedStory:
		return "narrative"
	case models.GeneratedConversation:
		return "real-life scenario"
	case models.GeneratedTongueTwister:
		return "articulation practice"
	default:
		return "general practice"
	}
}

func reasoning(w *Weaknesses, exerciseType models.GeneratedExerciseType) string {
	var b strings.Builder
	b.WriteString("This exercise was generated to help you improve ")

	areas := w.highSkills()
	if len(areas) == 0 {
		b.WriteString("overall fluency and maintain your current progress.")
	} else {
		b.WriteString(strings.Join(areas, ", "))
		b.WriteString(" based on your recent performance analysis.")
	}

	b.WriteString(" The ")
	b.WriteString(string(exerciseType))
	b.WriteString(" format will provide targeted practice for these areas.")
	return b.String()
}

// SkillAverages holds per-skill means over the analyzed sessions
type SkillAverages struct {
	Pronunciation float64 `json:"pronunciation"`
	Rhythm        float64 `json:"rhythm"`
	Pace          float64 `json:"pace"`
	Expression    float64 `json:"expression"`
	Overall       float64 `json:"overall"`
}

// SkillTrends labels each skill as excellent, good or needs improvement
type SkillTrends struct {
	Pronunciation string `json:"pronunciation"`
	Rhythm        string `json:"rhythm"`
	Pace          string `json:"pace"`
	Expression    string `json:"expression"`
}

// FluencyIssues counts sessions with detected problems
type FluencyIssues struct {
	StutterDetected int `json:"stutterDetected"`
	NervousSessions int `json:"nervousSessions"`
}

// FluencyAnalysis is the trend report over a user's recent sessions
type FluencyAnalysis struct {
	Averages        SkillAverages         `json:"averages"`
	Trends          SkillTrends           `json:"trends"`
	Issues          FluencyIssues         `json:"issues"`
	Recommendations []string              `json:"recommendations"`
	RecentScores    []models.FluencyScore `json:"recentScores"`
	TotalSessions   int                   `json:"totalSessions"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func trendLabel(avg float64) string {
	if avg > 85 {
		return "excellent"
	}
	if avg > 75 {
		return "good"
	}
	return "needs improvement"
}

// AnalyzeFluencyTrends summarizes recent sessions into averages, trend
// labels and practice recommendations. Returns nil when the user has no
// analysis sessions yet.
func (s *GeneratorService) AnalyzeFluencyTrends(userID int64) (*FluencyAnalysis, error) {
	scores, err := s.fluencyRepo.GetRecent(userID, recentScoreWindow)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	var pronunciation, rhythm, pace, expression, overall float64
	var stutterCount, nervousCount int
	for _, fs := range scores {
		pronunciation += float64(fs.PronunciationScore)
		rhythm += float64(fs.RhythmScore)
		pace += float64(fs.PaceScore)
		expression += float64(fs.ExpressionScore)
		overall += float64(fs.OverallScore)
		if fs.StutterDetected {
			stutterCount++
		}
		if fs.EmotionDetected == "nervous" {
			nervousCount++
		}
	}
	n := float64(len(scores))
	avgPronunciation := pronunciation / n
	avgRhythm := rhythm / n
	avgPace := pace / n
	avgExpression := expression / n

	var recommendations []string
	if avgPronunciation < 75 {
		recommendations = append(recommendations, "Focus on pronunciation exercises")
	}
	if avgRhythm < 75 {
		recommendations = append(recommendations, "Practice rhythm and intonation")
	}
	if avgPace < 75 {
		recommendations = append(recommendations, "Work on speaking pace and flow")
	}
	if avgExpression < 75 {
		recommendations = append(recommendations, "Improve emotional expression in speech")
	}
	if stutterCount > 0 {
		recommendations = append(recommendations, "Consider stuttering-specific exercises")
	}
	if nervousCount > 2 {
		recommendations = append(recommendations, "Practice confidence-building exercises")
	}

	return &FluencyAnalysis{
		Averages: SkillAverages{
			Pronunciation: round2(avgPronunciation),
			Rhythm:        round2(avgRhythm),
			Pace:          round2(avgPace),
			Expression:    round2(avgExpression),
			Overall:       round2(overall / n),
		},
		Trends: SkillTrends{
			Pronunciation: trendLabel(avgPronunciation),
			Rhythm:        trendLabel(avgRhythm),
			Pace:          trendLabel(avgPace),
			Expression:    trendLabel(avgExpression),
		},
		Issues: FluencyIssues{
			StutterDetected: stutterCount,
			NervousSessions: nervousCount,
		},
		Recommendations: recommendations,
		RecentScores:    scores,
		TotalSessions:   len(scores),
	}, nil
}
