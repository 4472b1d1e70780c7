package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"go.uber.org/zap"
)

// AnalysisResult carries the scores and feedback for one practice attempt
type AnalysisResult struct {
	OverallScore  int       `json:"overallScore"`
	AccuracyScore int       `json:"accuracyScore"`
	ClarityScore  int       `json:"clarityScore"`
	FluencyScore  int       `json:"fluencyScore"`
	Feedback      []string  `json:"feedback"`
	Improvement   int       `json:"improvement"`
	ExerciseType  string    `json:"exerciseType"`
	TargetText    string    `json:"targetText"`
	Timestamp     time.Time `json:"timestamp"`
}

// Analyzer scores a recorded practice attempt
type Analyzer interface {
	Analyze(ctx context.Context, audio []byte, exerciseType models.SpeechExerciseType, targetText string) (*AnalysisResult, error)
}

// MockAnalyzer produces plausible scores without any audio processing.
// It is the default analyzer and the fallback when the remote one fails.
type MockAnalyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockAnalyzer creates a mock analyzer
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// phonemeDifficulty grades a target phoneme for score adjustment
func phonemeDifficulty(phoneme string) string {
	switch strings.ToLower(phoneme) {
	case "th", "r", "l":
		return models.DifficultyAdvanced
	case "s", "z":
		return models.DifficultyIntermediate
	case "p", "b", "m":
		return models.DifficultyBeginner
	default:
		return models.DifficultyIntermediate
	}
}

// Analyze ignores the audio and scores from the exercise type alone
func (m *MockAnalyzer) Analyze(_ context.Context, _ []byte, exerciseType models.SpeechExerciseType, targetText string) (*AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseScore := 70 + m.rng.Intn(25)

	switch exerciseType {
	case models.SpeechPhoneme:
		switch phonemeDifficulty(targetText) {
		case models.DifficultyAdvanced:
			baseScore -= 8
		case models.DifficultyIntermediate:
			baseScore -= 3
		default:
			baseScore += 2
		}
	case models.SpeechConversation:
		baseScore -= 5
	case models.SpeechTongueTwister:
		baseScore -= 10
	}

	overall := clamp(baseScore, 50, 100)

	return &AnalysisResult{
		OverallScore:  overall,
		AccuracyScore: clamp(overall+m.rng.Intn(10)-5, 45, 100),
		ClarityScore:  clamp(overall+m.rng.Intn(10)-5, 50, 100),
		FluencyScore:  clamp(overall+m.rng.Intn(15)-7, 45, 100),
		Feedback:      buildFeedback(overall, exerciseType, targetText),
		Improvement:   m.rng.Intn(6) - 2,
		ExerciseType:  string(exerciseType),
		TargetText:    targetText,
		Timestamp:     time.Now(),
	}, nil
}

func buildFeedback(score int, exerciseType models.SpeechExerciseType, targetText string) []string {
	var feedback []string
	kind := string(exerciseType)

	switch {
	case score >= 85:
		feedback = append(feedback,
			"Excellent pronunciation! You've mastered this "+kind+".",
			"Your articulation is very clear and accurate.")
		if exerciseType == models.SpeechPhoneme {
			feedback = append(feedback, "Try using this sound in more complex words.")
		}
	case score >= 70:
		feedback = append(feedback,
			"Good progress! Your "+kind+" pronunciation is improving.",
			"Focus on maintaining consistency in your articulation.")
		if strings.Contains(targetText, "th") {
			feedback = append(feedback, "Remember to place your tongue between your teeth for the 'th' sound.")
		}
	default:
		feedback = append(feedback,
			"Keep practicing! "+kind+" exercises require regular practice.",
			"Try speaking more slowly and focus on mouth positioning.",
			"Practice this "+kind+" daily for better results.")
	}

	switch exerciseType {
	case models.SpeechPhoneme:
		if score < 80 {
			feedback = append(feedback, "Use a mirror to check your mouth position while practicing.")
		}
	case models.SpeechConversation:
		feedback = append(feedback, "Pay attention to natural rhythm and intonation.")
	case models.SpeechTongueTwister:
		feedback = append(feedback, "Start slowly and gradually increase speed.")
	}

	return feedback
}

// RemoteAnalyzer posts the recording to an external analysis service
type RemoteAnalyzer struct {
	baseURL string
	client  *http.Client
}

// NewRemoteAnalyzer creates an analyzer calling the service at baseURL
func NewRemoteAnalyzer(baseURL string, timeout time.Duration) *RemoteAnalyzer {
	return &RemoteAnalyzer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Analyze uploads the audio as multipart form data and decodes the scores
func (r *RemoteAnalyzer) Analyze(ctx context.Context, audio []byte, exerciseType models.SpeechExerciseType, targetText string) (*AnalysisResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio", "recording.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.WriteField("exerciseType", string(exerciseType)); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.WriteField("targetText", targetText); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/analyze", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build analyzer request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	var result AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode analyzer response: %w", err)
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	return &result, nil
}

// AnalysisService scores practice attempts and folds the results into the
// user's points, daily progress and weekly plan
type AnalysisService struct {
	exerciseRepo *repository.ExerciseRepository
	users        *UserService
	plans        *WeeklyPlanService
	analyzer     Analyzer
	fallback     *MockAnalyzer
	logger       *zap.Logger
}

// NewAnalysisService creates an analysis service. A nil analyzer means the
// mock is used directly.
func NewAnalysisService(exerciseRepo *repository.ExerciseRepository, users *UserService, plans *WeeklyPlanService, analyzer Analyzer, logger *zap.Logger) *AnalysisService {
	mock := NewMockAnalyzer()
	if analyzer == nil {
		analyzer = mock
	}
	return &AnalysisService{
		exerciseRepo: exerciseRepo,
		users:        users,
		plans:        plans,
		analyzer:     analyzer,
		fallback:     mock,
		logger:       logger,
	}
}

// practiceKind maps an attempt type to its daily progress counter
func practiceKind(exerciseType models.SpeechExerciseType) repository.PracticeKind {
	switch exerciseType {
	case models.SpeechSentence:
		return repository.PracticeReading
	case models.SpeechConversation:
		return repository.PracticeConversation
	default:
		return repository.PracticeRepetition
	}
}

// Analyze scores a recording and records the attempt: an exercise row,
// points and streak on the user, today's progress and the weekly plan
func (s *AnalysisService) Analyze(ctx context.Context, user *models.User, audio []byte, exerciseType models.SpeechExerciseType, targetText string) (*AnalysisResult, error) {
	result, err := s.analyzer.Analyze(ctx, audio, exerciseType, targetText)
	if err != nil {
		s.logger.Warn("analyzer failed, using mock scores", zap.Error(err))
		result, err = s.fallback.Analyze(ctx, audio, exerciseType, targetText)
		if err != nil {
			return nil, err
		}
	}

	pointsEarned := result.OverallScore / 10
	if pointsEarned < 5 {
		pointsEarned = 5
	}

	exercise := &models.Exercise{
		UserID:        user.ID,
		ExerciseType:  string(exerciseType),
		TargetText:    targetText,
		OverallScore:  result.OverallScore,
		AccuracyScore: result.AccuracyScore,
		ClarityScore:  result.ClarityScore,
		FluencyScore:  result.FluencyScore,
		Feedback:      strings.Join(result.Feedback, "; "),
		PointsEarned:  pointsEarned,
	}
	if err := s.exerciseRepo.Create(exercise); err != nil {
		return nil, err
	}

	// Streak bookkeeping reads today's progress row, so it runs before
	// the row is created or updated below
	if err := s.users.AwardPoints(user, pointsEarned); err != nil {
		return nil, err
	}
	if err := s.users.RecordPractice(user, practiceKind(exerciseType), float64(result.OverallScore), pointsEarned); err != nil {
		return nil, err
	}
	if err := s.plans.UpdateFromDailyProgress(user, time.Now(), MinutesPerExercise, 1); err != nil {
		return nil, err
	}

	s.logger.Info("attempt analyzed",
		zap.Int64("user_id", user.ID),
		zap.String("type", string(exerciseType)),
		zap.Int("overall", result.OverallScore))
	return result, nil
}

// QuickAnalyze scores without persisting anything
func (s *AnalysisService) QuickAnalyze(ctx context.Context, exerciseType models.SpeechExerciseType, targetText string) (*AnalysisResult, error) {
	return s.fallback.Analyze(ctx, nil, exerciseType, targetText)
}

// PhonemeInfo describes one phoneme in the reference catalog
type PhonemeInfo struct {
	Symbol      string   `json:"symbol"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Difficulty  string   `json:"difficulty"`
}

// PhonemeData returns the phoneme reference catalog
func PhonemeData() map[string][]PhonemeInfo {
	return map[string][]PhonemeInfo{
		"vowels": {
			{Symbol: "iː", Description: "Long EE sound as in 'see'", Examples: []string{"see", "bee", "tree"}, Difficulty: models.DifficultyBeginner},
			{Symbol: "ɪ", Description: "Short I sound as in 'bit'", Examples: []string{"bit", "sit", "win"}, Difficulty: models.DifficultyBeginner},
			{Symbol: "æ", Description: "Short A sound as in 'cat'", Examples: []string{"cat", "bat", "hand"}, Difficulty: models.DifficultyIntermediate},
		},
		"consonants": {
			{Symbol: "th", Description: "TH sound as in 'think'", Examples: []string{"think", "both", "three"}, Difficulty: models.DifficultyAdvanced},
			{Symbol: "s", Description: "S sound as in 'sun'", Examples: []string{"sun", "house", "lesson"}, Difficulty: models.DifficultyIntermediate},
			{Symbol: "r", Description: "R sound as in 'red'", Examples: []string{"red", "car", "sorry"}, Difficulty: models.DifficultyAdvanced},
		},
	}
}

// ConversationScenarioInfo describes one guided conversation setting
type ConversationScenarioInfo struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

// ExerciseContent returns the static practice material for an exercise type
func ExerciseContent(exerciseType models.SpeechExerciseType) map[string]interface{} {
	switch exerciseType {
	case models.SpeechPhoneme:
		return map[string]interface{}{"phonemes": PhonemeData()}
	case models.SpeechWord:
		return map[string]interface{}{"words": map[string][]string{
			"basic":        {"hello", "thank", "water", "please"},
			"intermediate": {"communication", "pronunciation", "vocabulary"},
			"advanced":     {"throughout", "strength", "breathe"},
		}}
	case models.SpeechSentence:
		return map[string]interface{}{"sentences": map[string][]string{
			"easy":   {"How are you today?", "What time is it?"},
			"medium": {"I would like to make a reservation.", "Could you please speak more slowly?"},
			"hard":   {"The project deadline has been extended until Friday."},
		}}
	case models.SpeechConversation:
		return map[string]interface{}{"scenarios": map[string]ConversationScenarioInfo{
			"restaurant": {Title: "Ordering at a Restaurant", Difficulty: "easy"},
			"doctor":     {Title: "At the Doctor's Office", Difficulty: "medium"},
			"interview":  {Title: "Job Interview", Difficulty: "hard"},
		}}
	default:
		return map[string]interface{}{"twisters": map[string][]string{
			"easy":   {"She sells seashells by the seashore"},
			"medium": {"Peter Piper picked a peck of pickled peppers"},
			"hard":   {"The sixth sick sheik's sixth sheep's sick"},
		}}
	}
}
