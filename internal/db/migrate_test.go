package db_test

import (
	"context"
	"testing"

	dbfs "github.com/hireloop/hireloop/db"
	"github.com/hireloop/hireloop/internal/db"
)

func TestMigrate(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// all application tables exist afterwards
	for _, table := range []string{
		"users", "skills", "jobs", "job_skills",
		"job_applications", "aptitude_tests", "aptitude_questions", "test_submissions",
	} {
		var name string
		err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	var applied int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied == 0 {
		t.Fatalf("no migrations recorded")
	}

	// running again is a no-op
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	var again int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&again); err != nil {
		t.Fatalf("recount migrations: %v", err)
	}
	if again != applied {
		t.Fatalf("migrations re-applied: %d then %d", applied, again)
	}
}
