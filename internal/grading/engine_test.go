package grading_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	dbfs "github.com/hireloop/hireloop/db"
	"github.com/hireloop/hireloop/internal/db"
	"github.com/hireloop/hireloop/internal/grading"
	sqliterepo "github.com/hireloop/hireloop/internal/repository/sqlite"
	"github.com/hireloop/hireloop/pkg/models"
)

// setupRepo opens a private in-memory database with the real schema applied.
// cache=shared keeps the pool's connections on the same database.
func setupRepo(t *testing.T) (*sqliterepo.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	d, err := db.New(ctx, "file:"+name+"?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	return sqliterepo.New(d, nil), func() { d.Close() }
}

type fixture struct {
	candidateID   int64
	recruiterID   int64
	jobID         int64
	applicationID int64
	testID        int64
}

// seed creates a recruiter, a candidate, a job, an application and, when
// passing is non-nil or withTest is set, an aptitude test with four questions
// whose correct answers are option indexes 0..3 for ids q1..q4.
func seed(t *testing.T, repo *sqliterepo.SQLiteRepo, withTest bool, passing *float64) fixture {
	t.Helper()
	ctx := context.Background()

	recruiterID, err := repo.CreateUser(ctx, &models.User{Name: "R", Email: t.Name() + "-r@example.com", Role: models.RoleRecruiter, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	candidateID, err := repo.CreateUser(ctx, &models.User{Name: "C", Email: t.Name() + "-c@example.com", Role: models.RoleCandidate, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	jobID, err := repo.CreateJob(ctx, &models.Job{RecruiterID: recruiterID, Title: "Backend Engineer", Skills: []string{"Go", "SQL"}})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	appID, err := repo.CreateApplication(ctx, &models.JobApplication{JobID: jobID, CandidateID: candidateID})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	fx := fixture{candidateID: candidateID, recruiterID: recruiterID, jobID: jobID, applicationID: appID}

	if withTest {
		opts := []string{"a", "b", "c", "d"}
		questions := []models.AptitudeQuestion{
			{ID: "q1", Question: "1", Options: opts, CorrectAnswer: 0},
			{ID: "q2", Question: "2", Options: opts, CorrectAnswer: 1},
			{ID: "q3", Question: "3", Options: opts, CorrectAnswer: 2},
			{ID: "q4", Question: "4", Options: opts, CorrectAnswer: 3},
		}
		testID, err := repo.CreateTest(ctx, &models.AptitudeTest{JobID: jobID, PassingPercentage: passing}, questions)
		if err != nil {
			t.Fatalf("create test: %v", err)
		}
		fx.testID = testID
	}

	return fx
}

func TestSubmit_PassMovesApplicationToUnderReview(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	passing := 70.0
	fx := seed(t, repo, true, &passing)
	engine := grading.NewEngine(repo, repo, repo, nil)
	ctx := context.Background()

	sub, threshold, err := engine.Submit(ctx, fx.applicationID, fx.candidateID, map[string]int{"q1": 0, "q2": 9, "q3": 2, "q4": 3})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if sub.CorrectAnswers != 3 || sub.TotalQuestions != 4 || sub.Score != 75.00 {
		t.Fatalf("unexpected grading: %+v", sub)
	}
	if sub.IsPassed == nil || !*sub.IsPassed {
		t.Fatalf("expected passing verdict")
	}
	if threshold == nil || *threshold != 70.0 {
		t.Fatalf("expected the test's threshold back, got %v", threshold)
	}

	app, err := repo.GetApplication(ctx, fx.applicationID)
	if err != nil || app == nil {
		t.Fatalf("load application: %v", err)
	}
	if app.Status != models.StatusUnderReview {
		t.Fatalf("expected status %q got %q", models.StatusUnderReview, app.Status)
	}
}

func TestSubmit_FailMovesApplicationToRejected(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	passing := 80.0
	fx := seed(t, repo, true, &passing)
	engine := grading.NewEngine(repo, repo, repo, nil)
	ctx := context.Background()

	sub, _, err := engine.Submit(ctx, fx.applicationID, fx.candidateID, map[string]int{"q1": 0, "q2": 9, "q3": 2, "q4": 3})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Score != 75.00 {
		t.Fatalf("expected 75.00 got %v", sub.Score)
	}
	if sub.IsPassed == nil || *sub.IsPassed {
		t.Fatalf("expected failing verdict")
	}

	app, _ := repo.GetApplication(ctx, fx.applicationID)
	if app.Status != models.StatusRejected {
		t.Fatalf("expected status %q got %q", models.StatusRejected, app.Status)
	}
}

func TestSubmit_NoThresholdLeavesStatusUntouched(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	fx := seed(t, repo, true, nil)
	engine := grading.NewEngine(repo, repo, repo, nil)
	ctx := context.Background()

	sub, threshold, err := engine.Submit(ctx, fx.applicationID, fx.candidateID, map[string]int{"q1": 0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.IsPassed != nil {
		t.Fatalf("expected no verdict, got %v", *sub.IsPassed)
	}
	if threshold != nil {
		t.Fatalf("expected no threshold, got %v", *threshold)
	}

	app, _ := repo.GetApplication(ctx, fx.applicationID)
	if app.Status != models.StatusApplied {
		t.Fatalf("expected status %q got %q", models.StatusApplied, app.Status)
	}
}

func TestSubmit_SecondAttemptRejectedAndFirstKept(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	passing := 70.0
	fx := seed(t, repo, true, &passing)
	engine := grading.NewEngine(repo, repo, repo, nil)
	ctx := context.Background()

	first, _, err := engine.Submit(ctx, fx.applicationID, fx.candidateID, map[string]int{"q1": 0, "q2": 1, "q3": 2, "q4": 3})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, _, err = engine.Submit(ctx, fx.applicationID, fx.candidateID, map[string]int{"q1": 3, "q2": 3, "q3": 3, "q4": 3})
	if !errors.Is(err, grading.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted got %v", err)
	}

	stored, err := repo.GetByApplicationAndCandidate(ctx, fx.applicationID, fx.candidateID)
	if err != nil || stored == nil {
		t.Fatalf("load submission: %v", err)
	}
	if stored.ID != first.ID || stored.Score != first.Score || stored.CorrectAnswers != first.CorrectAnswers {
		t.Fatalf("first submission altered: stored %+v first %+v", stored, first)
	}
}

func TestSubmit_ApplicationNotFound(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	fx := seed(t, repo, true, nil)
	engine := grading.NewEngine(repo, repo, repo, nil)

	_, _, err := engine.Submit(context.Background(), 9999, fx.candidateID, map[string]int{"q1": 0})
	if !errors.Is(err, grading.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound got %v", err)
	}

	// an application that belongs to someone else is not found either
	_, _, err = engine.Submit(context.Background(), fx.applicationID, fx.recruiterID, map[string]int{"q1": 0})
	if !errors.Is(err, grading.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound got %v", err)
	}
}

func TestSubmit_TestNotFound(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	fx := seed(t, repo, false, nil)
	engine := grading.NewEngine(repo, repo, repo, nil)

	_, _, err := engine.Submit(context.Background(), fx.applicationID, fx.candidateID, map[string]int{"q1": 0})
	if !errors.Is(err, grading.ErrTestNotFound) {
		t.Fatalf("expected ErrTestNotFound got %v", err)
	}
}
