package wordbank

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	bank := Default()
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name     string
		template string
	}{
		{
			name:     "single placeholder",
			template: "The {character} smiled.",
		},
		{
			name:     "multiple placeholders",
			template: "{character} met {character} at the {location}.",
		},
		{
			name:     "no placeholders",
			template: "Plain sentence without slots.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bank.Fill(tt.template, rng)
			if strings.Contains(got, "{") || strings.Contains(got, "}") {
				t.Errorf("Fill(%q) left placeholders: %q", tt.template, got)
			}
			if got == "" {
				t.Errorf("Fill(%q) returned empty string", tt.template)
			}
		})
	}
}

func TestFillLeavesUnknownPlaceholders(t *testing.T) {
	bank := Default()
	rng := rand.New(rand.NewSource(1))

	got := bank.Fill("A {gizmo} appeared.", rng)
	if !strings.Contains(got, "{gizmo}") {
		t.Errorf("expected unknown placeholder to survive, got %q", got)
	}
}

func TestWord(t *testing.T) {
	bank := Default()
	rng := rand.New(rand.NewSource(7))

	word := bank.Word("adjective", rng)
	if word == "" || word == "word" {
		t.Errorf("Word(adjective) = %q, expected a vocabulary entry", word)
	}

	if got := bank.Word("no-such-category", rng); got != "word" {
		t.Errorf("Word(unknown) = %q, want fallback %q", got, "word")
	}
}

// Every placeholder used by a built-in template must have a filler category,
// otherwise Fill would hand users text with literal braces in it.
func TestTemplatesHaveFillerCategories(t *testing.T) {
	bank := Default()
	placeholder := regexp.MustCompile(`\{([a-z_]+)\}`)

	var templates []string
	templates = append(templates, bank.storyTemplates...)
	templates = append(templates, bank.conversationScenarios...)
	templates = append(templates, bank.tongueTwisterPatterns...)

	for _, tmpl := range templates {
		for _, match := range placeholder.FindAllStringSubmatch(tmpl, -1) {
			if _, ok := bank.fillers[match[1]]; !ok {
				t.Errorf("template %q uses category %q with no filler words", tmpl, match[1])
			}
		}
	}
}

func TestTemplatePickersProduceCompleteText(t *testing.T) {
	bank := Default()
	rng := rand.New(rand.NewSource(99))

	pickers := map[string]func(*rand.Rand) string{
		"story":          bank.StoryTemplate,
		"conversation":   bank.ConversationScenario,
		"tongue twister": bank.TongueTwisterPattern,
	}

	for name, pick := range pickers {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				got := pick(rng)
				if got == "" {
					t.Fatal("picker returned empty string")
				}
				if strings.Contains(got, "{") {
					t.Fatalf("picker left unfilled placeholder: %q", got)
				}
			}
		})
	}
}
