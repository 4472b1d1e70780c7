package service

import (
	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"go.uber.org/zap"
)

// SeedService populates the body exercise catalog on first boot
type SeedService struct {
	bodyRepo *repository.BodyExerciseRepository
	logger   *zap.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(bodyRepo *repository.BodyExerciseRepository, logger *zap.Logger) *SeedService {
	return &SeedService{bodyRepo: bodyRepo, logger: logger}
}

// Run inserts the built-in catalog when the table is empty. Safe to call on
// every startup.
func (s *SeedService) Run() error {
	count, err := s.bodyRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range bodyExerciseCatalog {
		e := bodyExerciseCatalog[i]
		if err := s.bodyRepo.Create(&e); err != nil {
			return err
		}
	}
	s.logger.Info("body exercise catalog seeded", zap.Int("count", len(bodyExerciseCatalog)))
	return nil
}

var bodyExerciseCatalog = []models.BodyExercise{
	{
		ExerciseName:    "Deep Breathing for Speech",
		ExerciseType:    models.BodyTypeBreathing,
		DifficultyLevel: models.DifficultyBeginner,
		Description:     "Simple breathing exercise to improve breath control for speech",
		Instructions:    "1. Sit comfortably with your back straight\n2. Place one hand on your chest, one on your stomach\n3. Breathe in slowly through your nose for 4 counts\n4. Hold for 2 counts\n5. Exhale slowly through your mouth for 6 counts\n6. Repeat 5 times",
		DurationSeconds: 60,
		Repetitions:     5,
		TargetMuscles:   "Diaphragm, Lungs",
		SpeechBenefits:  "Improves breath control, reduces speech anxiety, increases vocal power",
		IsActive:        true,
	},
	{
		ExerciseName:    "Lip Stretches",
		ExerciseType:    models.BodyTypeFacial,
		DifficultyLevel: models.DifficultyBeginner,
		Description:     "Gentle lip exercises to improve articulation",
		Instructions:    "1. Pucker your lips like you're going to kiss\n2. Hold for 3 seconds\n3. Smile widely, showing your teeth\n4. Hold for 3 seconds\n5. Alternate between pucker and smile\n6. Repeat 10 times",
		DurationSeconds: 45,
		Repetitions:     10,
		TargetMuscles:   "Lips, Facial muscles",
		SpeechBenefits:  "Improves lip mobility, enhances articulation of labial sounds (p, b, m, w)",
		IsActive:        true,
	},
	{
		ExerciseName:    "Tongue Twists",
		ExerciseType:    models.BodyTypeTongue,
		DifficultyLevel: models.DifficultyBeginner,
		Description:     "Basic tongue exercises for better articulation",
		Instructions:    "1. Stick your tongue out as far as possible\n2. Hold for 3 seconds\n3. Move tongue to the right corner of your mouth\n4. Hold for 3 seconds\n5. Move to the left corner\n6. Hold for 3 seconds\n7. Return to center\n8. Repeat 5 times",
		DurationSeconds: 60,
		Repetitions:     5,
		TargetMuscles:   "Tongue, Jaw",
		SpeechBenefits:  "Improves tongue flexibility, enhances articulation of lingual sounds (t, d, l, n)",
		IsActive:        true,
	},
	{
		ExerciseName:    "Jaw Relaxation",
		ExerciseType:    models.BodyTypeJaw,
		DifficultyLevel: models.DifficultyBeginner,
		Description:     "Gentle jaw exercises to reduce tension",
		Instructions:    "1. Place your fingertips on your jaw joints\n2. Open your mouth slowly and widely\n3. Hold for 3 seconds\n4. Close slowly\n5. Repeat 5 times\n6. Then gently massage your jaw in circular motions",
		DurationSeconds: 90,
		Repetitions:     5,
		TargetMuscles:   "Jaw muscles, Temporomandibular joint",
		SpeechBenefits:  "Reduces jaw tension, improves mouth opening, enhances speech clarity",
		IsActive:        true,
	},
	{
		ExerciseName:    "Humming for Voice",
		ExerciseType:    models.BodyTypeVocal,
		DifficultyLevel: models.DifficultyBeginner,
		Description:     "Simple vocal warm-up exercise",
		Instructions:    "1. Close your lips gently\n2. Take a deep breath\n3. Hum 'mmmm' on a comfortable pitch\n4. Feel the vibration in your lips and face\n5. Hold for 10 seconds\n6. Repeat 3 times",
		DurationSeconds: 60,
		Repetitions:     3,
		TargetMuscles:   "Vocal cords, Lips, Facial muscles",
		SpeechBenefits:  "Warms up vocal cords, improves resonance, reduces vocal strain",
		IsActive:        true,
	},
	{
		ExerciseName:    "Diaphragmatic Breathing",
		ExerciseType:    models.BodyTypeBreathing,
		DifficultyLevel: models.DifficultyIntermediate,
		Description:     "Advanced breathing technique for speech projection",
		Instructions:    "1. Lie on your back with knees bent\n2. Place a book on your stomach\n3. Breathe in deeply - the book should rise\n4. Breathe out - the book should fall\n5. Practice for 2 minutes\n6. Then practice while sitting and standing",
		DurationSeconds: 120,
		Repetitions:     3,
		TargetMuscles:   "Diaphragm, Abdominal muscles",
		SpeechBenefits:  "Improves breath support, increases vocal projection, reduces vocal fatigue",
		IsActive:        true,
	},
	{
		ExerciseName:    "Facial Muscle Control",
		ExerciseType:    models.BodyTypeFacial,
		DifficultyLevel: models.DifficultyIntermediate,
		Description:     "Advanced facial muscle exercises for expression",
		Instructions:    "1. Raise your eyebrows as high as possible\n2. Hold for 3 seconds\n3. Frown deeply\n4. Hold for 3 seconds\n5. Puff out your cheeks\n6. Hold for 3 seconds\n7. Suck in your cheeks\n8. Hold for 3 seconds\n9. Repeat sequence 5 times",
		DurationSeconds: 90,
		Repetitions:     5,
		TargetMuscles:   "Facial muscles, Forehead, Cheeks",
		SpeechBenefits:  "Improves facial expression, enhances communication, reduces muscle tension",
		IsActive:        true,
	},
	{
		ExerciseName:    "Tongue Precision",
		ExerciseType:    models.BodyTypeTongue,
		DifficultyLevel: models.DifficultyIntermediate,
		Description:     "Advanced tongue exercises for precise articulation",
		Instructions:    "1. Touch the tip of your tongue to your upper lip\n2. Hold for 2 seconds\n3. Touch the tip to your lower lip\n4. Hold for 2 seconds\n5. Touch the tip to the roof of your mouth\n6. Hold for 2 seconds\n7. Touch the tip to your teeth\n8. Repeat sequence 8 times",
		DurationSeconds: 75,
		Repetitions:     8,
		TargetMuscles:   "Tongue, Mouth muscles",
		SpeechBenefits:  "Improves tongue precision, enhances articulation, strengthens mouth muscles",
		IsActive:        true,
	},
	{
		ExerciseName:    "Jaw Strengthening",
		ExerciseType:    models.BodyTypeJaw,
		DifficultyLevel: models.DifficultyIntermediate,
		Description:     "Strengthening exercises for jaw muscles",
		Instructions:    "1. Place your fist under your chin\n2. Open your mouth against the resistance\n3. Hold for 5 seconds\n4. Close your mouth\n5. Repeat 8 times\n6. Then place your fist on your forehead\n7. Try to open your mouth against it\n8. Repeat 8 times",
		DurationSeconds: 120,
		Repetitions:     8,
		TargetMuscles:   "Jaw muscles, Neck muscles",
		SpeechBenefits:  "Strengthens jaw muscles, improves chewing, enhances speech stability",
		IsActive:        true,
	},
	{
		ExerciseName:    "Vocal Resonance",
		ExerciseType:    models.BodyTypeVocal,
		DifficultyLevel: models.DifficultyIntermediate,
		Description:     "Advanced vocal exercises for better resonance",
		Instructions:    "1. Say 'mmmm' on different pitches (low, medium, high)\n2. Hold each pitch for 5 seconds\n3. Then say 'nnnn' on the same pitches\n4. Finally say 'ng' (like in 'sing') on the same pitches\n5. Feel the vibration in different parts of your face\n6. Repeat each sound 3 times",
		DurationSeconds: 90,
		Repetitions:     3,
		TargetMuscles:   "Vocal cords, Facial bones, Sinuses",
		SpeechBenefits:  "Improves vocal resonance, enhances voice quality, increases vocal range",
		IsActive:        true,
	},
	{
		ExerciseName:    "Circular Breathing",
		ExerciseType:    models.BodyTypeBreathing,
		DifficultyLevel: models.DifficultyAdvanced,
		Description:     "Advanced breathing technique for continuous speech",
		Instructions:    "1. Take a deep breath through your nose\n2. Start exhaling through your mouth\n3. While exhaling, quickly inhale through your nose\n4. Continue exhaling the air from your mouth\n5. Practice with a straw in water\n6. Aim for continuous bubbles",
		DurationSeconds: 180,
		Repetitions:     5,
		TargetMuscles:   "Diaphragm, Lungs, Mouth",
		SpeechBenefits:  "Enables continuous speech, improves breath control, enhances vocal endurance",
		IsActive:        true,
	},
	{
		ExerciseName:    "Facial Expression Mastery",
		ExerciseType:    models.BodyTypeFacial,
		DifficultyLevel: models.DifficultyAdvanced,
		Description:     "Complex facial muscle coordination",
		Instructions:    "1. Practice exaggerated expressions: surprise, anger, joy, sadness\n2. Hold each expression for 5 seconds\n3. Transition smoothly between expressions\n4. Add vocal sounds to each expression\n5. Practice in front of a mirror\n6. Repeat sequence 3 times",
		DurationSeconds: 150,
		Repetitions:     3,
		TargetMuscles:   "All facial muscles, Expression muscles",
		SpeechBenefits:  "Improves emotional expression, enhances communication, strengthens facial muscles",
		IsActive:        true,
	},
	{
		ExerciseName:    "Tongue Acrobatics",
		ExerciseType:    models.BodyTypeTongue,
		DifficultyLevel: models.DifficultyAdvanced,
		Description:     "Complex tongue movements for advanced articulation",
		Instructions:    "1. Roll your tongue into a tube\n2. Hold for 3 seconds\n3. Touch your tongue to your nose\n4. Hold for 3 seconds\n5. Touch your tongue to your chin\n6. Hold for 3 seconds\n7. Move tongue in figure-8 pattern\n8. Repeat sequence 5 times",
		DurationSeconds: 120,
		Repetitions:     5,
		TargetMuscles:   "Tongue, Mouth muscles, Coordination",
		SpeechBenefits:  "Improves tongue dexterity, enhances complex articulation, strengthens coordination",
		IsActive:        true,
	},
	{
		ExerciseName:    "Jaw Mobility",
		ExerciseType:    models.BodyTypeJaw,
		DifficultyLevel: models.DifficultyAdvanced,
		Description:     "Advanced jaw movement exercises",
		Instructions:    "1. Open your mouth as wide as possible\n2. Hold for 5 seconds\n3. Move your jaw to the right\n4. Hold for 3 seconds\n5. Move to the left\n6. Hold for 3 seconds\n7. Move forward\n8. Hold for 3 seconds\n9. Return to center\n10. Repeat sequence 5 times",
		DurationSeconds: 150,
		Repetitions:     5,
		TargetMuscles:   "Jaw muscles, Temporomandibular joint, Neck",
		SpeechBenefits:  "Improves jaw mobility, reduces jaw tension, enhances speech articulation",
		IsActive:        true,
	},
	{
		ExerciseName:    "Vocal Projection",
		ExerciseType:    models.BodyTypeVocal,
		DifficultyLevel: models.DifficultyAdvanced,
		Description:     "Advanced vocal projection exercises",
		Instructions:    "1. Stand in a large room\n2. Take a deep breath\n3. Say 'Hello' loudly and clearly\n4. Project your voice to the far wall\n5. Practice different pitches and volumes\n6. Add movement (walking, turning)\n7. Practice for 3 minutes\n8. Rest for 1 minute\n9. Repeat 2 more times",
		DurationSeconds: 240,
		Repetitions:     3,
		TargetMuscles:   "Vocal cords, Diaphragm, Abdominal muscles",
		SpeechBenefits:  "Improves vocal projection, enhances public speaking, increases vocal power",
		IsActive:        true,
	},
}
