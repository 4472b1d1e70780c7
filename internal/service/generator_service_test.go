package service

import (
	"math/rand"
	"strings"
	"testing"

	"speechcoach/internal/models"
	"speechcoach/internal/wordbank"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want string
	}{
		{"well below threshold", 50, "high"},
		{"just below high cutoff", 74.9, "high"},
		{"exactly 75 is moderate", 75, "moderate"},
		{"just below low cutoff", 84.9, "moderate"},
		{"exactly 85 is low", 85, "low"},
		{"strong scores", 95, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := severity(tt.avg); got != tt.want {
				t.Errorf("severity(%v) = %q, want %q", tt.avg, got, tt.want)
			}
		})
	}
}

func TestTrendLabel(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{90, "excellent"},
		{85, "good"},
		{80, "good"},
		{75, "needs improvement"},
		{60, "needs improvement"},
	}

	for _, tt := range tests {
		if got := trendLabel(tt.avg); got != tt.want {
			t.Errorf("trendLabel(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{83.333333, 83.33},
		{72.456, 72.46},
		{100, 100},
		{0, 0},
	}

	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHighSkills(t *testing.T) {
	tests := []struct {
		name string
		w    Weaknesses
		want []string
	}{
		{
			name: "no weaknesses",
			w:    Weaknesses{Pronunciation: "low", Rhythm: "moderate", Pace: "low", Expression: "low"},
			want: nil,
		},
		{
			name: "one high skill",
			w:    Weaknesses{Pronunciation: "high", Rhythm: "low", Pace: "low", Expression: "low"},
			want: []string{"pronunciation"},
		},
		{
			name: "all high in stable order",
			w:    Weaknesses{Pronunciation: "high", Rhythm: "high", Pace: "high", Expression: "high"},
			want: []string{"pronunciation", "rhythm", "pace", "expression"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.w.highSkills()
			if len(got) != len(tt.want) {
				t.Fatalf("highSkills() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("highSkills()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTargetPhonemes(t *testing.T) {
	tests := []struct {
		name string
		w    Weaknesses
		want string
	}{
		{
			name: "no high skills",
			w:    Weaknesses{Pronunciation: "moderate", Rhythm: "low"},
			want: "",
		},
		{
			name: "weak pronunciation",
			w:    Weaknesses{Pronunciation: "high"},
			want: "th,r,s,l,sh",
		},
		{
			name: "weak rhythm",
			w:    Weaknesses{Rhythm: "high"},
			want: "stress,intonation,pitch",
		},
		{
			name: "both weak",
			w:    Weaknesses{Pronunciation: "high", Rhythm: "high"},
			want: "th,r,s,l,sh,stress,intonation,pitch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := targetPhonemes(&tt.w); got != tt.want {
				t.Errorf("targetPhonemes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExerciseContext(t *testing.T) {
	tests := []struct {
		exerciseType models.GeneratedExerciseType
		want         string
	}{
		{models.GeneratedStory, "narrative"},
		{models.GeneratedConversation, "real-life scenario"},
		{models.GeneratedTongueTwister, "articulation practice"},
		{models.GeneratedSentence, "general practice"},
	}

	for _, tt := range tests {
		if got := exerciseContext(tt.exerciseType); got != tt.want {
			t.Errorf("exerciseContext(%s) = %q, want %q", tt.exerciseType, got, tt.want)
		}
	}
}

func TestReasoning(t *testing.T) {
	noWeaknesses := Weaknesses{Pronunciation: "low", Rhythm: "low", Pace: "low", Expression: "low"}
	got := reasoning(&noWeaknesses, models.GeneratedStory)
	if !strings.Contains(got, "overall fluency") {
		t.Errorf("reasoning without weaknesses should mention overall fluency, got %q", got)
	}
	if !strings.Contains(got, "story") {
		t.Errorf("reasoning should name the exercise format, got %q", got)
	}

	weak := Weaknesses{Pronunciation: "high", Rhythm: "high"}
	got = reasoning(&weak, models.GeneratedTongueTwister)
	if !strings.Contains(got, "pronunciation, rhythm") {
		t.Errorf("reasoning should list the weak skills, got %q", got)
	}
	if !strings.Contains(got, "tongue_twister") {
		t.Errorf("reasoning should name the exercise format, got %q", got)
	}
}

func TestGenerateContent(t *testing.T) {
	svc := &GeneratorService{
		bank: wordbank.Default(),
		rng:  rand.New(rand.NewSource(11)),
	}
	w := &Weaknesses{Pronunciation: "moderate"}

	for _, exerciseType := range models.GeneratedExerciseTypes {
		content := svc.generateContent(exerciseType, w)
		if content == "" {
			t.Errorf("generateContent(%s) returned empty content", exerciseType)
		}
		if strings.Contains(content, "{") {
			t.Errorf("generateContent(%s) left an unfilled placeholder: %q", exerciseType, content)
		}
	}
}

func TestGenerateSentenceFavorsArticulation(t *testing.T) {
	svc := &GeneratorService{
		bank: wordbank.Default(),
		rng:  rand.New(rand.NewSource(5)),
	}

	got := svc.generateSentence(&Weaknesses{Pronunciation: "high"})
	if !strings.HasPrefix(got, "The ") {
		t.Errorf("articulation sentence should start with %q, got %q", "The", got)
	}

	got = svc.generateSentence(&Weaknesses{Pronunciation: "low"})
	if !strings.HasPrefix(got, "She ") {
		t.Errorf("general sentence should start with %q, got %q", "She", got)
	}
}
