package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"speechcoach/internal/database"

	"go.uber.org/zap"
)

// BackupData is the portable snapshot of all user-owned records. The body
// exercise catalog is reseeded on boot and generated exercises expire within
// a week, so neither is included.
type BackupData struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exported_at"`
	Users        []UserBackup        `json:"users"`
	Exercises    []ExerciseBackup    `json:"exercises"`
	DailyRecords []ProgressBackup    `json:"daily_records"`
	WeeklyPlans  []WeeklyPlanBackup  `json:"weekly_plans"`
	GameScores   []GameScoreBackup   `json:"game_scores"`
	Completed    []CompletedBackup   `json:"completed_exercises"`
	Fluency      []FluencyBackup     `json:"fluency_scores"`
	RedeemCodes  []RedeemCodeBackup  `json:"redeem_codes"`
}

// UserBackup is one account row
type UserBackup struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"password_hash"`
	Age                int       `json:"age"`
	NativeLanguage     string    `json:"native_language"`
	TargetLanguage     string    `json:"target_language"`
	DifficultyLevel    string    `json:"difficulty_level"`
	TotalPoints        int       `json:"total_points"`
	StreakDays         int       `json:"streak_days"`
	ExercisesCompleted int       `json:"exercises_completed"`
	DailyGoal          int       `json:"daily_goal"`
	WeeklyGoal         int       `json:"weekly_goal"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExerciseBackup is one scored practice attempt
type ExerciseBackup struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ExerciseType    string    `json:"exercise_type"`
	TargetText      string    `json:"target_text"`
	OverallScore    int       `json:"overall_score"`
	AccuracyScore   int       `json:"accuracy_score"`
	FluencyScore    int       `json:"fluency_score"`
	ClarityScore    int       `json:"clarity_score"`
	Feedback        string    `json:"feedback"`
	AudioFilePath   string    `json:"audio_file_path"`
	SessionDuration int       `json:"session_duration"`
	PointsEarned    int       `json:"points_earned"`
	CompletedAt     time.Time `json:"completed_at"`
}

// ProgressBackup is one daily progress row
type ProgressBackup struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	PracticeDate         time.Time `json:"practice_date"`
	TotalPracticeTime    int       `json:"total_practice_time"`
	ExercisesCompleted   int       `json:"exercises_completed"`
	AverageScore         float64   `json:"average_score"`
	ReadingExercises     int       `json:"reading_exercises"`
	RepetitionExercises  int       `json:"repetition_exercises"`
	ConversationPractice int       `json:"conversation_practice"`
	BreathingExercises   int       `json:"breathing_exercises"`
	PointsEarned         int       `json:"points_earned"`
	GoalsMet             bool      `json:"goals_met"`
}

// WeeklyPlanBackup is one weekly plan row
type WeeklyPlanBackup struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	WeekStart           time.Time `json:"week_start"`
	WeekEnd             time.Time `json:"week_end"`
	WeeklyGoalMinutes   int       `json:"weekly_goal_minutes"`
	CompletedMinutes    int       `json:"completed_minutes"`
	BodyExerciseGoal    int       `json:"body_exercise_goal"`
	BodyExercisesDone   int       `json:"body_exercises_done"`
	SpeechExerciseGoal  int       `json:"speech_exercise_goal"`
	SpeechExercisesDone int       `json:"speech_exercises_done"`
	IsCompleted         bool      `json:"is_completed"`
	WeeklyStreak        int       `json:"weekly_streak"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// GameScoreBackup is one mini-game session row
type GameScoreBackup struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	GameID          string    `json:"game_id"`
	Points          int       `json:"points"`
	Accuracy        float64   `json:"accuracy"`
	Attempts        int       `json:"attempts"`
	HintsUsed       int       `json:"hints_used"`
	TotalTimeMs     int64     `json:"total_time_ms"`
	AverageSpeed    float64   `json:"average_speed"`
	Difficulty      string    `json:"difficulty"`
	WordsCompleted  int       `json:"words_completed"`
	LevelsCompleted int       `json:"levels_completed"`
	GamesCompleted  int       `json:"games_completed"`
	PerfectRounds   int       `json:"perfect_rounds"`
	DailyChallenges int       `json:"daily_challenges"`
	CreatedAt       time.Time `json:"created_at"`
}

// CompletedBackup is one completed exercise log entry
type CompletedBackup struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ExerciseName    string    `json:"exercise_name"`
	ExerciseType    string    `json:"exercise_type"`
	DifficultyLevel string    `json:"difficulty_level"`
	DurationSeconds int       `json:"duration_seconds"`
	Notes           string    `json:"notes"`
	PracticeDate    time.Time `json:"practice_date"`
	CompletedAt     time.Time `json:"completed_at"`
}

// FluencyBackup is one analysis session row
type FluencyBackup struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	PronunciationScore int       `json:"pronunciation_score"`
	RhythmScore        int       `json:"rhythm_score"`
	PaceScore          int       `json:"pace_score"`
	ExpressionScore    int       `json:"expression_score"`
	OverallScore       int       `json:"overall_score"`
	SpeakingRateWPM    int       `json:"speaking_rate_wpm"`
	PauseCount         int       `json:"pause_count"`
	StutterDetected    bool      `json:"stutter_detected"`
	EmotionDetected    string    `json:"emotion_detected"`
	FeedbackNotes      string    `json:"feedback_notes"`
	CreatedAt          time.Time `json:"created_at"`
}

// RedeemCodeBackup is one reward code row
type RedeemCodeBackup struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	PointsThreshold int        `json:"points_threshold"`
	Used            bool       `json:"used"`
	UsedAt          *time.Time `json:"used_at"`
}

// BackupService exports and restores the user-owned tables as JSON
type BackupService struct {
	db     *database.DB
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	return &BackupService{db: db, logger: logger}
}

// Export writes a complete snapshot to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	s.logger.Info("database exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes a complete snapshot as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	steps := []struct {
		name string
		fn   func(*BackupData) error
	}{
		{"users", s.exportUsers},
		{"exercises", s.exportExercises},
		{"daily records", s.exportProgress},
		{"weekly plans", s.exportWeeklyPlans},
		{"game scores", s.exportGameScores},
		{"completed exercises", s.exportCompleted},
		{"fluency scores", s.exportFluency},
		{"redeem codes", s.exportRedeemCodes},
	}
	for _, step := range steps {
		if err := step.fn(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	s.logger.Info("export collected",
		zap.Int("users", len(backup.Users)),
		zap.Int("exercises", len(backup.Exercises)),
		zap.Int("daily_records", len(backup.DailyRecords)),
		zap.Int("weekly_plans", len(backup.WeeklyPlans)),
		zap.Int("game_scores", len(backup.GameScores)))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a snapshot from a file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a snapshot from a reader. Records are inserted
// with their original IDs, so importing into a non-empty database can fail
// on key conflicts.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	s.logger.Info("importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt))

	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importExercises(backup.Exercises); err != nil {
		return fmt.Errorf("failed to import exercises: %w", err)
	}
	if err := s.importProgress(backup.DailyRecords); err != nil {
		return fmt.Errorf("failed to import daily records: %w", err)
	}
	if err := s.importWeeklyPlans(backup.WeeklyPlans); err != nil {
		return fmt.Errorf("failed to import weekly plans: %w", err)
	}
	if err := s.importGameScores(backup.GameScores); err != nil {
		return fmt.Errorf("failed to import game scores: %w", err)
	}
	if err := s.importCompleted(backup.Completed); err != nil {
		return fmt.Errorf("failed to import completed exercises: %w", err)
	}
	if err := s.importFluency(backup.Fluency); err != nil {
		return fmt.Errorf("failed to import fluency scores: %w", err)
	}
	if err := s.importRedeemCodes(backup.RedeemCodes); err != nil {
		return fmt.Errorf("failed to import redeem codes: %w", err)
	}

	s.logger.Info("database import complete")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, name, email, password_hash, age, native_language, target_language,
		difficulty_level, total_points, streak_days, exercises_completed, daily_goal, weekly_goal,
		created_at, updated_at FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age,
			&u.NativeLanguage, &u.TargetLanguage, &u.DifficultyLevel,
			&u.TotalPoints, &u.StreakDays, &u.ExercisesCompleted,
			&u.DailyGoal, &u.WeeklyGoal, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportExercises(backup *BackupData) error {
	query := `SELECT id, user_id, exercise_type, target_text, overall_score, accuracy_score,
		fluency_score, clarity_score, feedback, audio_file_path, session_duration, points_earned,
		completed_at FROM exercises ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e ExerciseBackup
		if err := rows.Scan(&e.ID, &e.UserID, &e.ExerciseType, &e.TargetText,
			&e.OverallScore, &e.AccuracyScore, &e.FluencyScore, &e.ClarityScore,
			&e.Feedback, &e.AudioFilePath, &e.SessionDuration, &e.PointsEarned,
			&e.CompletedAt); err != nil {
			return err
		}
		backup.Exercises = append(backup.Exercises, e)
	}
	return rows.Err()
}

func (s *BackupService) exportProgress(backup *BackupData) error {
	query := `SELECT id, user_id, practice_date, total_practice_time, exercises_completed,
		average_score, reading_exercises, repetition_exercises, conversation_practice,
		breathing_exercises, points_earned, goals_met FROM user_progress ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProgressBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.PracticeDate, &p.TotalPracticeTime,
			&p.ExercisesCompleted, &p.AverageScore, &p.ReadingExercises,
			&p.RepetitionExercises, &p.ConversationPractice, &p.BreathingExercises,
			&p.PointsEarned, &p.GoalsMet); err != nil {
			return err
		}
		backup.DailyRecords = append(backup.DailyRecords, p)
	}
	return rows.Err()
}

func (s *BackupService) exportWeeklyPlans(backup *BackupData) error {
	query := `SELECT id, user_id, week_start, week_end, weekly_goal_minutes, completed_minutes,
		body_exercise_goal, body_exercises_done, speech_exercise_goal, speech_exercises_done,
		is_completed, weekly_streak, created_at, updated_at FROM weekly_plans ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p WeeklyPlanBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.WeekStart, &p.WeekEnd,
			&p.WeeklyGoalMinutes, &p.CompletedMinutes, &p.BodyExerciseGoal,
			&p.BodyExercisesDone, &p.SpeechExerciseGoal, &p.SpeechExercisesDone,
			&p.IsCompleted, &p.WeeklyStreak, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		backup.WeeklyPlans = append(backup.WeeklyPlans, p)
	}
	return rows.Err()
}

func (s *BackupService) exportGameScores(backup *BackupData) error {
	query := `SELECT id, user_id, game_id, points, accuracy, attempts, hints_used, total_time_ms,
		average_speed, difficulty, words_completed, levels_completed, games_completed,
		perfect_rounds, daily_challenges, created_at FROM game_scores ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g GameScoreBackup
		if err := rows.Scan(&g.ID, &g.UserID, &g.GameID, &g.Points, &g.Accuracy,
			&g.Attempts, &g.HintsUsed, &g.TotalTimeMs, &g.AverageSpeed, &g.Difficulty,
			&g.WordsCompleted, &g.LevelsCompleted, &g.GamesCompleted,
			&g.PerfectRounds, &g.DailyChallenges, &g.CreatedAt); err != nil {
			return err
		}
		backup.GameScores = append(backup.GameScores, g)
	}
	return rows.Err()
}

func (s *BackupService) exportCompleted(backup *BackupData) error {
	query := `SELECT id, user_id, exercise_name, exercise_type, difficulty_level,
		duration_seconds, notes, practice_date, completed_at FROM completed_exercises ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c CompletedBackup
		if err := rows.Scan(&c.ID, &c.UserID, &c.ExerciseName, &c.ExerciseType,
			&c.DifficultyLevel, &c.DurationSeconds, &c.Notes, &c.PracticeDate,
			&c.CompletedAt); err != nil {
			return err
		}
		backup.Completed = append(backup.Completed, c)
	}
	return rows.Err()
}

func (s *BackupService) exportFluency(backup *BackupData) error {
	query := `SELECT id, user_id, pronunciation_score, rhythm_score, pace_score, expression_score,
		overall_score, speaking_rate_wpm, pause_count, stutter_detected, emotion_detected,
		feedback_notes, created_at FROM fluency_scores ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FluencyBackup
		if err := rows.Scan(&f.ID, &f.UserID, &f.PronunciationScore, &f.RhythmScore,
			&f.PaceScore, &f.ExpressionScore, &f.OverallScore, &f.SpeakingRateWPM,
			&f.PauseCount, &f.StutterDetected, &f.EmotionDetected, &f.FeedbackNotes,
			&f.CreatedAt); err != nil {
			return err
		}
		backup.Fluency = append(backup.Fluency, f)
	}
	return rows.Err()
}

func (s *BackupService) exportRedeemCodes(backup *BackupData) error {
	query := `SELECT id, code, points_threshold, used, used_at FROM redeem_codes ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c RedeemCodeBackup
		var usedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Code, &c.PointsThreshold, &c.Used, &usedAt); err != nil {
			return err
		}
		if usedAt.Valid {
			c.UsedAt = &usedAt.Time
		}
		backup.RedeemCodes = append(backup.RedeemCodes, c)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	for _, u := range users {
		query := `INSERT INTO users (id, name, email, password_hash, age, native_language,
			target_language, difficulty_level, total_points, streak_days, exercises_completed,
			daily_goal, weekly_goal, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, u.ID, u.Name, u.Email, u.PasswordHash, u.Age,
			u.NativeLanguage, u.TargetLanguage, u.DifficultyLevel,
			u.TotalPoints, u.StreakDays, u.ExercisesCompleted,
			u.DailyGoal, u.WeeklyGoal, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importExercises(exercises []ExerciseBackup) error {
	for _, e := range exercises {
		query := `INSERT INTO exercises (id, user_id, exercise_type, target_text, overall_score,
			accuracy_score, fluency_score, clarity_score, feedback, audio_file_path,
			session_duration, points_earned, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, e.ID, e.UserID, e.ExerciseType, e.TargetText,
			e.OverallScore, e.AccuracyScore, e.FluencyScore, e.ClarityScore,
			e.Feedback, e.AudioFilePath, e.SessionDuration, e.PointsEarned, e.CompletedAt)
		if err != nil {
			return fmt.Errorf("exercise %d: %w", e.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importProgress(records []ProgressBackup) error {
	for _, p := range records {
		query := `INSERT INTO user_progress (id, user_id, practice_date, total_practice_time,
			exercises_completed, average_score, reading_exercises, repetition_exercises,
			conversation_practice, breathing_exercises, points_earned, goals_met)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, p.ID, p.UserID, p.PracticeDate, p.TotalPracticeTime,
			p.ExercisesCompleted, p.AverageScore, p.ReadingExercises,
			p.RepetitionExercises, p.ConversationPractice, p.BreathingExercises,
			p.PointsEarned, p.GoalsMet)
		if err != nil {
			return fmt.Errorf("daily record %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importWeeklyPlans(plans []WeeklyPlanBackup) error {
	for _, p := range plans {
		query := `INSERT INTO weekly_plans (id, user_id, week_start, week_end, weekly_goal_minutes,
			completed_minutes, body_exercise_goal, body_exercises_done, speech_exercise_goal,
			speech_exercises_done, is_completed, weekly_streak, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, p.ID, p.UserID, p.WeekStart, p.WeekEnd,
			p.WeeklyGoalMinutes, p.CompletedMinutes, p.BodyExerciseGoal,
			p.BodyExercisesDone, p.SpeechExerciseGoal, p.SpeechExercisesDone,
			p.IsCompleted, p.WeeklyStreak, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("weekly plan %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGameScores(scores []GameScoreBackup) error {
	for _, g := range scores {
		query := `INSERT INTO game_scores (id, user_id, game_id, points, accuracy, attempts,
			hints_used, total_time_ms, average_speed, difficulty, words_completed,
			levels_completed, games_completed, perfect_rounds, daily_challenges, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, g.ID, g.UserID, g.GameID, g.Points, g.Accuracy,
			g.Attempts, g.HintsUsed, g.TotalTimeMs, g.AverageSpeed, g.Difficulty,
			g.WordsCompleted, g.LevelsCompleted, g.GamesCompleted,
			g.PerfectRounds, g.DailyChallenges, g.CreatedAt)
		if err != nil {
			return fmt.Errorf("game score %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importCompleted(completed []CompletedBackup) error {
	for _, c := range completed {
		query := `INSERT INTO completed_exercises (id, user_id, exercise_name, exercise_type,
			difficulty_level, duration_seconds, notes, practice_date, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, c.ID, c.UserID, c.ExerciseName, c.ExerciseType,
			c.DifficultyLevel, c.DurationSeconds, c.Notes, c.PracticeDate, c.CompletedAt)
		if err != nil {
			return fmt.Errorf("completed exercise %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFluency(scores []FluencyBackup) error {
	for _, f := range scores {
		query := `INSERT INTO fluency_scores (id, user_id, pronunciation_score, rhythm_score,
			pace_score, expression_score, overall_score, speaking_rate_wpm, pause_count,
			stutter_detected, emotion_detected, feedback_notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, f.ID, f.UserID, f.PronunciationScore, f.RhythmScore,
			f.PaceScore, f.ExpressionScore, f.OverallScore, f.SpeakingRateWPM,
			f.PauseCount, f.StutterDetected, f.EmotionDetected, f.FeedbackNotes, f.CreatedAt)
		if err != nil {
			return fmt.Errorf("fluency score %d: %w", f.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importRedeemCodes(codes []RedeemCodeBackup) error {
	for _, c := range codes {
		var usedAt interface{}
		if c.UsedAt != nil {
			usedAt = *c.UsedAt
		}
		query := `INSERT INTO redeem_codes (id, code, points_threshold, used, used_at)
			VALUES (?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, c.ID, c.Code, c.PointsThreshold, c.Used, usedAt)
		if err != nil {
			return fmt.Errorf("redeem code %d: %w", c.ID, err)
		}
	}
	return nil
}
