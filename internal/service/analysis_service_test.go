package service

import (
	"context"
	"strings"
	"testing"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"
)

func TestMockAnalyzerScoreRanges(t *testing.T) {
	analyzer := NewMockAnalyzer()
	ctx := context.Background()

	types := []models.SpeechExerciseType{
		models.SpeechPhoneme,
		models.SpeechWord,
		models.SpeechSentence,
		models.SpeechConversation,
		models.SpeechTongueTwister,
	}

	for _, exerciseType := range types {
		for i := 0; i < 50; i++ {
			result, err := analyzer.Analyze(ctx, nil, exerciseType, "th")
			if err != nil {
				t.Fatalf("Analyze(%s) error: %v", exerciseType, err)
			}
			if result.OverallScore < 50 || result.OverallScore > 100 {
				t.Fatalf("Analyze(%s) overall = %d, want 50..100", exerciseType, result.OverallScore)
			}
			if result.AccuracyScore < 45 || result.AccuracyScore > 100 {
				t.Fatalf("Analyze(%s) accuracy = %d, want 45..100", exerciseType, result.AccuracyScore)
			}
			if result.ClarityScore < 50 || result.ClarityScore > 100 {
				t.Fatalf("Analyze(%s) clarity = %d, want 50..100", exerciseType, result.ClarityScore)
			}
			if result.FluencyScore < 45 || result.FluencyScore > 100 {
				t.Fatalf("Analyze(%s) fluency = %d, want 45..100", exerciseType, result.FluencyScore)
			}
			if len(result.Feedback) == 0 {
				t.Fatalf("Analyze(%s) returned no feedback", exerciseType)
			}
			if result.ExerciseType != string(exerciseType) {
				t.Fatalf("Analyze(%s) echoed type %q", exerciseType, result.ExerciseType)
			}
		}
	}
}

func TestPhonemeDifficulty(t *testing.T) {
	tests := []struct {
		phoneme string
		want    string
	}{
		{"th", models.DifficultyAdvanced},
		{"R", models.DifficultyAdvanced},
		{"l", models.DifficultyAdvanced},
		{"s", models.DifficultyIntermediate},
		{"z", models.DifficultyIntermediate},
		{"p", models.DifficultyBeginner},
		{"b", models.DifficultyBeginner},
		{"m", models.DifficultyBeginner},
		{"unknown", models.DifficultyIntermediate},
	}

	for _, tt := range tests {
		if got := phonemeDifficulty(tt.phoneme); got != tt.want {
			t.Errorf("phonemeDifficulty(%q) = %q, want %q", tt.phoneme, got, tt.want)
		}
	}
}

func TestBuildFeedback(t *testing.T) {
	feedback := buildFeedback(90, models.SpeechPhoneme, "th")
	if !strings.Contains(feedback[0], "Excellent") {
		t.Errorf("high score feedback should praise, got %q", feedback[0])
	}

	feedback = buildFeedback(75, models.SpeechWord, "think")
	found := false
	for _, f := range feedback {
		if strings.Contains(f, "tongue between your teeth") {
			found = true
		}
	}
	if !found {
		t.Errorf("mid score feedback for a th word should include the tongue tip, got %v", feedback)
	}

	feedback = buildFeedback(55, models.SpeechTongueTwister, "she sells seashells")
	found = false
	for _, f := range feedback {
		if strings.Contains(f, "Start slowly") {
			found = true
		}
	}
	if !found {
		t.Errorf("tongue twister feedback should advise starting slowly, got %v", feedback)
	}
}

func TestPracticeKind(t *testing.T) {
	tests := []struct {
		exerciseType models.SpeechExerciseType
		want         repository.PracticeKind
	}{
		{models.SpeechSentence, repository.PracticeReading},
		{models.SpeechConversation, repository.PracticeConversation},
		{models.SpeechPhoneme, repository.PracticeRepetition},
		{models.SpeechWord, repository.PracticeRepetition},
		{models.SpeechTongueTwister, repository.PracticeRepetition},
	}

	for _, tt := range tests {
		if got := practiceKind(tt.exerciseType); got != tt.want {
			t.Errorf("practiceKind(%s) = %v, want %v", tt.exerciseType, got, tt.want)
		}
	}
}

func TestExerciseContent(t *testing.T) {
	content := ExerciseContent(models.SpeechPhoneme)
	if _, ok := content["phonemes"]; !ok {
		t.Error("phoneme content missing phonemes key")
	}

	content = ExerciseContent(models.SpeechWord)
	if _, ok := content["words"]; !ok {
		t.Error("word content missing words key")
	}

	content = ExerciseContent(models.SpeechTongueTwister)
	if _, ok := content["twisters"]; !ok {
		t.Error("tongue twister content missing twisters key")
	}
}

func TestPhonemeData(t *testing.T) {
	data := PhonemeData()
	if len(data["vowels"]) == 0 {
		t.Error("phoneme catalog has no vowels")
	}
	if len(data["consonants"]) == 0 {
		t.Error("phoneme catalog has no consonants")
	}
	for group, phonemes := range data {
		for _, p := range phonemes {
			if p.Symbol == "" || p.Description == "" || len(p.Examples) == 0 {
				t.Errorf("incomplete phoneme entry in %s: %+v", group, p)
			}
		}
	}
}
