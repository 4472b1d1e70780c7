package service

import (
	"testing"

	"speechcoach/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBodyExerciseCatalog(t *testing.T) {
	assert.NotEmpty(t, bodyExerciseCatalog)

	names := make(map[string]bool, len(bodyExerciseCatalog))
	types := make(map[string]bool)
	difficulties := make(map[string]bool)

	for _, e := range bodyExerciseCatalog {
		assert.False(t, names[e.ExerciseName], "duplicate exercise name %q", e.ExerciseName)
		names[e.ExerciseName] = true
		types[e.ExerciseType] = true
		difficulties[e.DifficultyLevel] = true

		assert.NotEmpty(t, e.Description, "%s has no description", e.ExerciseName)
		assert.NotEmpty(t, e.Instructions, "%s has no instructions", e.ExerciseName)
		assert.Positive(t, e.DurationSeconds, "%s has no duration", e.ExerciseName)
		assert.Positive(t, e.Repetitions, "%s has no repetitions", e.ExerciseName)
		assert.True(t, e.IsActive, "%s should be active", e.ExerciseName)
	}

	// Every difficulty is represented so personalization always finds matches
	for _, level := range []string{
		models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced,
	} {
		assert.True(t, difficulties[level], "catalog missing difficulty %s", level)
	}

	// The core warm-up areas are all covered
	for _, exerciseType := range []string{
		models.BodyTypeBreathing, models.BodyTypeFacial, models.BodyTypeJaw,
		models.BodyTypeTongue, models.BodyTypeVocal,
	} {
		assert.True(t, types[exerciseType], "catalog missing type %s", exerciseType)
	}
}
