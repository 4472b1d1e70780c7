package repository

import (
	"testing"
	"time"

	"speechcoach/internal/database"
	"speechcoach/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	db := &database.DB{DB: mockDB, Dialect: database.NewSQLiteDialect()}
	return NewUserRepository(db), mock
}

func userRows(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "age", "native_language", "target_language",
		"difficulty_level", "total_points", "streak_days", "exercises_completed",
		"daily_goal", "weekly_goal", "created_at", "updated_at",
	}).AddRow(
		user.ID, user.Name, user.Email, user.PasswordHash, user.Age,
		user.NativeLanguage, user.TargetLanguage, user.DifficultyLevel,
		user.TotalPoints, user.StreakDays, user.ExercisesCompleted,
		user.DailyGoal, user.WeeklyGoal, user.CreatedAt, user.UpdatedAt,
	)
}

func TestGetUserByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	want := &models.User{
		ID:              7,
		Name:            "Maria",
		Email:           "maria@example.com",
		PasswordHash:    "hash",
		Age:             29,
		NativeLanguage:  "es",
		TargetLanguage:  "en",
		DifficultyLevel: models.DifficultyIntermediate,
		TotalPoints:     120,
		StreakDays:      4,
		DailyGoal:       15,
		WeeklyGoal:      105,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
		WithArgs(int64(7)).
		WillReturnRows(userRows(want))

	got, err := repo.GetUserByID(7)
	if err != nil {
		t.Fatalf("GetUserByID() error: %v", err)
	}
	if got == nil {
		t.Fatal("GetUserByID() returned nil user")
	}
	if got.ID != want.ID || got.Email != want.Email || got.TotalPoints != want.TotalPoints {
		t.Errorf("GetUserByID() = %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.GetUserByID(99)
	if err != nil {
		t.Fatalf("GetUserByID() error: %v", err)
	}
	if got != nil {
		t.Errorf("GetUserByID() = %+v, want nil for missing user", got)
	}
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Maria", "maria@example.com", "hash", 29, "es", "en",
			models.DifficultyIntermediate, 0, 0, 0, 15, 105).
		WillReturnResult(sqlmock.NewResult(12, 1))

	user := &models.User{
		Name:            "Maria",
		Email:           "maria@example.com",
		PasswordHash:    "hash",
		Age:             29,
		NativeLanguage:  "es",
		TargetLanguage:  "en",
		DifficultyLevel: models.DifficultyIntermediate,
		DailyGoal:       15,
		WeeklyGoal:      105,
	}

	created, err := repo.CreateUser(user)
	if err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("CreateUser() id = %d, want 12", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAddPoints(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE users").
		WithArgs(25, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AddPoints(7, 25); err != nil {
		t.Fatalf("AddPoints() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountUsers()
	if err != nil {
		t.Fatalf("CountUsers() error: %v", err)
	}
	if count != 3 {
		t.Errorf("CountUsers() = %d, want 3", count)
	}
}
