// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/lshigami/interview-coach/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// FakeLLM is a scripted LLMGateway.
type FakeLLM struct {
	mu sync.Mutex

	Question string
	Feedback string
	Err      error

	Roles []string
	Calls int
}

func (f *FakeLLM) GenerateQuestion(_ context.Context, role string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.Roles = append(f.Roles, role)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Question, nil
}

func (f *FakeLLM) EvaluateAnswer(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return "", f.Err
	}
	return f.Feedback, nil
}
