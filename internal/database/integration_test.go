package database

import (
	"context"
	"os"
	"testing"
)

// TestDatabaseIntegration verifies init plus migrations against SQLite
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_integration.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	tables := []string{
		"users", "exercises", "user_progress", "weekly_plans", "body_exercises",
		"game_scores", "ai_exercises", "fluency_scores", "completed_exercises",
		"redeem_codes",
	}
	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestDatabaseTransactions verifies commit and rollback behavior
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_transactions.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	_, err = tx.ExecContext(ctx, "INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		"Test User", "test@example.com", "hashedpass")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", "test@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}

	tx2, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}

	_, err = tx2.ExecContext(ctx, "INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		"Second User", "second@example.com", "hashedpass")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}

	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", "second@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}
}

// TestConcurrentAccess verifies concurrent reads against one connection
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_concurrent.db"
	defer os.Remove(dbPath)

	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	_, err = db.ExecContext(ctx, "INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)",
		"Concurrent User", "concurrent@example.com", "hashedpass")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			var name string
			err := db.QueryRowContext(ctx, "SELECT name FROM users WHERE email = ?", "concurrent@example.com").Scan(&name)
			if err != nil {
				t.Errorf("Concurrent read failed: %v", err)
			}
			if name != "Concurrent User" {
				t.Errorf("Expected name 'Concurrent User', got '%s'", name)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
