// Package wordbank holds the template pools and filler vocabulary used by the
// exercise generator. A Bank is immutable after construction so it can be
// shared freely between goroutines.
package wordbank

import (
	"math/rand"
	"strings"
)

// Bank provides sentence templates and the words used to fill them
type Bank struct {
	storyTemplates        []string
	conversationScenarios []string
	tongueTwisterPatterns []string
	fillers               map[string][]string
}

// Default returns the built-in bank
func Default() *Bank {
	return &Bank{
		storyTemplates: []string{
			"Once upon a time, {character} was walking through {location} when they discovered {object}. This discovery would change everything.",
			"In the bustling city of {city}, {profession} {name} faced their biggest challenge yet: {challenge}.",
			"The {season} morning brought with it {weather} and a sense of {emotion} as {character} prepared for {event}.",
			"Deep in the {environment}, {character} learned an important lesson about {lesson} through {experience}.",
			"When {character} received the news about {event}, their world turned upside down, leading to {consequence}.",
		},
		conversationScenarios: []string{
			"Ordering food at a {restaurant_type} restaurant",
			"Discussing {topic} with a colleague at work",
			"Planning a {vacation_type} vacation with family",
			"Resolving a {issue_type} issue with customer service",
			"Participating in a {meeting_type} meeting at school",
		},
		tongueTwisterPatterns: []string{
			"The {adjective} {noun} {verb} {adverb} through the {location}.",
			"{number} {adjective} {animals} {verb} {adverb} in the {place}.",
			"How much {substance} could a {profession} {verb} if a {profession} could {verb} {substance}?",
			"She {verb} {adjective} {noun} by the {location}.",
			"The {adjective} {noun} {verb} {adverb} while {verb_ing} the {object}.",
		},
		fillers: map[string][]string{
			"character":       {"Sarah", "Michael", "Emma", "David", "Lisa", "James", "Maria", "Robert"},
			"location":        {"forest", "beach", "mountain", "park", "garden", "library", "museum", "cafe"},
			"object":          {"mysterious book", "ancient coin", "magical key", "strange device", "beautiful flower"},
			"city":            {"New York", "London", "Tokyo", "Paris", "Sydney", "Toronto", "Berlin", "Rome"},
			"name":            {"Alex", "Jordan", "Taylor", "Casey", "Morgan", "Riley", "Quinn", "Avery"},
			"challenge":       {"solving a complex problem", "helping others", "learning new skills", "overcoming fears"},
			"season":          {"spring", "summer", "autumn", "winter"},
			"weather":         {"sunshine", "rain", "snow", "wind", "fog"},
			"emotion":         {"excitement", "wonder", "curiosity", "determination", "hope"},
			"event":           {"an important meeting", "a special celebration", "a challenging exam", "an adventure"},
			"environment":     {"forest", "ocean", "desert", "jungle", "mountain"},
			"lesson":          {"friendship", "courage", "patience", "kindness", "perseverance"},
			"experience":      {"helping a stranger", "facing a fear", "learning from mistakes", "discovering new places"},
			"consequence":     {"unexpected friendships", "new opportunities", "personal growth", "life-changing decisions"},
			"restaurant_type": {"Italian", "Chinese", "Mexican", "Indian", "French", "Japanese"},
			"topic":           {"project planning", "team collaboration", "problem solving", "innovation"},
			"vacation_type":   {"beach", "mountain", "city", "cultural", "adventure", "relaxing"},
			"issue_type":      {"delivery", "billing", "technical", "service", "quality"},
			"meeting_type":    {"class discussion", "team planning", "problem solving", "creative brainstorming"},
			"adjective":       {"quick", "brown", "lazy", "sleepy", "happy", "clever", "brave", "wise"},
			"noun":            {"fox", "dog", "cat", "bird", "fish", "rabbit", "squirrel", "deer"},
			"verb":            {"jumps", "runs", "walks", "flies", "swims", "hops", "climbs", "dances"},
			"adverb":          {"quickly", "slowly", "happily", "carefully", "bravely", "wisely", "gently"},
			"animals":         {"cats", "dogs", "birds", "fish", "rabbits", "squirrels", "deer", "foxes"},
			"number":          {"two", "three", "four", "five", "six", "seven", "eight", "nine"},
			"place":           {"garden", "forest", "park", "beach", "mountain", "lake", "river", "meadow"},
			"profession":      {"woodchuck", "woodpecker", "woodworker", "woodcutter"},
			"substance":       {"wood", "water", "sand", "stone", "metal", "clay"},
			"verb_ing":        {"reading", "writing", "singing", "dancing", "cooking", "painting", "studying"},
		},
	}
}

// StoryTemplate picks a filled story template
func (b *Bank) StoryTemplate(rng *rand.Rand) string {
	return b.Fill(b.storyTemplates[rng.Intn(len(b.storyTemplates))], rng)
}

// ConversationScenario picks a filled conversation scenario
func (b *Bank) ConversationScenario(rng *rand.Rand) string {
	return b.Fill(b.conversationScenarios[rng.Intn(len(b.conversationScenarios))], rng)
}

// TongueTwisterPattern picks a filled tongue twister
func (b *Bank) TongueTwisterPattern(rng *rand.Rand) string {
	return b.Fill(b.tongueTwisterPatterns[rng.Intn(len(b.tongueTwisterPatterns))], rng)
}

// Fill replaces every known {placeholder} in the template with one randomly
// chosen word per category. Unknown placeholders are left untouched.
func (b *Bank) Fill(template string, rng *rand.Rand) string {
	result := template
	for category, words := range b.fillers {
		placeholder := "{" + category + "}"
		if strings.Contains(result, placeholder) {
			result = strings.ReplaceAll(result, placeholder, words[rng.Intn(len(words))])
		}
	}
	return result
}

// Word picks one word from a filler category, or "word" for unknown categories
func (b *Bank) Word(category string, rng *rand.Rand) string {
	words := b.fillers[category]
	if len(words) == 0 {
		return "word"
	}
	return words[rng.Intn(len(words))]
}
