package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pratik-mahalle/proftrack/internal/db"
)

var dbCounter atomic.Int64

// NewTestDB creates an in-memory SQLite database with all migrations applied
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	name := fmt.Sprintf("file:proftrack_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbCounter.Add(1))
	sqlDB, err := sql.Open("sqlite", name)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database := db.Wrap(sqlDB, db.DialectSQLite)
	if _, err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return database
}

// CleanupDB closes the test database
func CleanupDB(database *db.DB) {
	if database != nil {
		_ = database.Close()
	}
}

// Clock is a settable time source for services that take a now func
type Clock struct {
	now atomic.Int64
}

// NewClock returns a clock frozen at t, truncated to whole seconds
func NewClock(t time.Time) *Clock {
	c := &Clock{}
	c.Set(t)
	return c
}

// Now returns the current frozen instant
func (c *Clock) Now() time.Time {
	return time.Unix(c.now.Load(), 0).UTC()
}

// Set moves the clock to t
func (c *Clock) Set(t time.Time) {
	c.now.Store(t.Unix())
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.now.Add(int64(d / time.Second))
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
