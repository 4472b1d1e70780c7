package database

import (
	"testing"
)

func TestDialectProperties(t *testing.T) {
	tests := []struct {
		name                 string
		dialect              Dialect
		driverName           string
		supportsLastInsertId bool
		migrationsSubdir     string
		boolTrue             string
	}{
		{
			name:                 "sqlite",
			dialect:              NewSQLiteDialect(),
			driverName:           "sqlite3",
			supportsLastInsertId: true,
			migrationsSubdir:     "sqlite",
			boolTrue:             "1",
		},
		{
			name:                 "postgres",
			dialect:              NewPostgresDialect(),
			driverName:           "postgres",
			supportsLastInsertId: false,
			migrationsSubdir:     "postgres",
			boolTrue:             "TRUE",
		},
		{
			name:                 "mysql",
			dialect:              NewMySQLDialect(),
			driverName:           "mysql",
			supportsLastInsertId: true,
			migrationsSubdir:     "mysql",
			boolTrue:             "TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driverName {
				t.Errorf("DriverName() = %v, want %v", got, tt.driverName)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.supportsLastInsertId {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.supportsLastInsertId)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsSubdir)
			}
			if got := tt.dialect.BoolValue(true); got != tt.boolTrue {
				t.Errorf("BoolValue(true) = %v, want %v", got, tt.boolTrue)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "sqlite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = ?",
		},
		{
			name:     "postgres single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "postgres multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO users (name, email) VALUES (?, ?)",
			expected: "INSERT INTO users (name, email) VALUES ($1, $2)",
		},
		{
			name:     "mysql no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE users SET name = ?, email = ? WHERE id = ?",
			expected: "UPDATE users SET name = ?, email = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", got, tt.expected)
			}
		})
	}
}
