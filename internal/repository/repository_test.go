package repository

import (
	"context"
	"os"
	"testing"

	"github.com/rmittal-realty/api/internal/config"
	"github.com/rmittal-realty/api/internal/database"
)

// getTestConfig returns database configuration for integration tests.
func getTestConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		Name:     getEnvOrDefault("DB_NAME", "realty_test"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		PoolMin:  2,
		PoolMax:  5,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupTestDB creates a test database connection, skipping in short mode.
// Requires a PostgreSQL instance with the migrations applied.
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, getTestConfig())
	if err != nil {
		t.Fatalf("Failed to create database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}
