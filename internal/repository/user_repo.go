package repository

import (
	"database/sql"
	"fmt"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, age, native_language, target_language,
		difficulty_level, total_points, streak_days, exercises_completed, daily_goal, weekly_goal,
		created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.NativeLanguage,
		&user.TargetLanguage,
		&user.DifficultyLevel,
		&user.TotalPoints,
		&user.StreakDays,
		&user.ExercisesCompleted,
		&user.DailyGoal,
		&user.WeeklyGoal,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, age, native_language, target_language,
			difficulty_level, total_points, streak_days, exercises_completed, daily_goal, weekly_goal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		user.Name, user.Email, user.PasswordHash, user.Age,
		user.NativeLanguage, user.TargetLanguage, user.DifficultyLevel,
		user.TotalPoints, user.StreakDays, user.ExercisesCompleted,
		user.DailyGoal, user.WeeklyGoal,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetAllUsers retrieves all users ordered by creation time
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at DESC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Age,
			&user.NativeLanguage,
			&user.TargetLanguage,
			&user.DifficultyLevel,
			&user.TotalPoints,
			&user.StreakDays,
			&user.ExercisesCompleted,
			&user.DailyGoal,
			&user.WeeklyGoal,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's profile fields
func (r *UserRepository) UpdateUser(user *models.User) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, age = ?, native_language = ?, target_language = ?,
			difficulty_level = ?, daily_goal = ?, weekly_goal = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		user.Name, user.Email, user.Age, user.NativeLanguage, user.TargetLanguage,
		user.DifficultyLevel, user.DailyGoal, user.WeeklyGoal, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// AddPoints atomically adds earned points and one completed exercise
func (r *UserRepository) AddPoints(userID int64, points int) error {
	query := `
		UPDATE users
		SET total_points = total_points + ?,
			exercises_completed = exercises_completed + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, points, userID)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}
	return nil
}

// AddGamePoints atomically adds mini-game points without touching the
// exercise counter
func (r *UserRepository) AddGamePoints(userID int64, points int) error {
	query := `
		UPDATE users
		SET total_points = total_points + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, points, userID)
	if err != nil {
		return fmt.Errorf("failed to add game points: %w", err)
	}
	return nil
}

// SetStreak sets the user's current streak length
func (r *UserRepository) SetStreak(userID int64, streak int) error {
	query := "UPDATE users SET streak_days = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, streak, userID)
	if err != nil {
		return fmt.Errorf("failed to set streak: %w", err)
	}
	return nil
}

// DeleteUser deletes a user and all associated data
func (r *UserRepository) DeleteUser(id int64) error {
	query := "DELETE FROM users WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// CountUsers returns the total number of accounts
func (r *UserRepository) CountUsers() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
