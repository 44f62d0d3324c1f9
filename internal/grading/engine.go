package grading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

var (
	// ErrApplicationNotFound means the job application does not exist.
	ErrApplicationNotFound = errors.New("job application not found")
	// ErrTestNotFound means the application's job has no aptitude test.
	ErrTestNotFound = errors.New("aptitude test not found")
	// ErrAlreadySubmitted means a submission already exists for the
	// (application, candidate) pair. Submissions are write-once.
	ErrAlreadySubmitted = errors.New("test already submitted")
)

// Engine grades submissions and applies the resulting application-status
// transition. It is stateless; all persistence goes through the repositories.
type Engine struct {
	apps        repository.ApplicationRepo
	tests       repository.TestRepo
	submissions repository.SubmissionRepo
	logger      *slog.Logger
}

func NewEngine(apps repository.ApplicationRepo, tests repository.TestRepo, submissions repository.SubmissionRepo, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{apps: apps, tests: tests, submissions: submissions, logger: logger}
}

// Submit grades the candidate's answers for the application's test and
// persists the submission, returning it with the test's passing threshold so
// callers need not re-load the test. The pre-check gives a friendly Conflict;
// the unique constraint on (job_application_id, candidate_id) is the real
// guard, so a racing duplicate surfaces as ErrAlreadySubmitted too, never as a
// second row.
func (e *Engine) Submit(ctx context.Context, applicationID, candidateID int64, answers map[string]int) (*models.TestSubmission, *float64, error) {
	app, err := e.apps.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, nil, fmt.Errorf("load application: %w", err)
	}
	if app == nil || app.CandidateID != candidateID {
		return nil, nil, ErrApplicationNotFound
	}

	test, err := e.tests.GetTestByJob(ctx, app.JobID)
	if err != nil {
		return nil, nil, fmt.Errorf("load test: %w", err)
	}
	if test == nil {
		return nil, nil, ErrTestNotFound
	}

	existing, err := e.submissions.GetByApplicationAndCandidate(ctx, applicationID, candidateID)
	if err != nil {
		return nil, nil, fmt.Errorf("check existing submission: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrAlreadySubmitted
	}

	questions, err := e.tests.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load questions: %w", err)
	}

	res := Grade(questions, answers, test.PassingPercentage)

	sub := &models.TestSubmission{
		TestID:           test.ID,
		JobApplicationID: applicationID,
		CandidateID:      candidateID,
		Answers:          answers,
		Score:            res.Score,
		TotalQuestions:   res.TotalQuestions,
		CorrectAnswers:   res.CorrectAnswers,
		IsPassed:         res.Verdict.IsPassed(),
		SubmittedAt:      time.Now().UTC().UnixMilli(),
	}

	id, err := e.submissions.CreateSubmission(ctx, sub)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrAlreadySubmitted
		}
		return nil, nil, fmt.Errorf("store submission: %w", err)
	}
	sub.ID = id

	if err := e.ApplyGradingOutcome(ctx, app, res.Verdict); err != nil {
		// the submission is stored; report the transition failure rather
		// than pretend grading failed
		return nil, nil, fmt.Errorf("apply grading outcome: %w", err)
	}

	e.logger.Info("test graded",
		slog.Int64("application_id", applicationID),
		slog.Int64("candidate_id", candidateID),
		slog.Float64("score", res.Score),
		slog.String("verdict", res.Verdict.String()),
	)

	return sub, test.PassingPercentage, nil
}

// ApplyGradingOutcome is the named status transition triggered by grading:
// passed moves the application to Under Review, failed to Rejected, and no
// verdict leaves the status untouched.
func (e *Engine) ApplyGradingOutcome(ctx context.Context, app *models.JobApplication, verdict Verdict) error {
	var status string
	switch verdict {
	case VerdictPassed:
		status = models.StatusUnderReview
	case VerdictFailed:
		status = models.StatusRejected
	default:
		return nil
	}

	if err := e.apps.UpdateStatus(ctx, app.ID, status); err != nil {
		return err
	}
	app.Status = status
	return nil
}

// VisibleToRecruiter is the gating predicate: an application is visible iff
// its job has no test, or this application has a submission with a passing
// verdict. It is recomputed from current state on every read; tests can be
// created or deleted after applications exist, so the result is never stored.
func (e *Engine) VisibleToRecruiter(ctx context.Context, app *models.JobApplication) (bool, error) {
	test, err := e.tests.GetTestByJob(ctx, app.JobID)
	if err != nil {
		return false, fmt.Errorf("load test: %w", err)
	}
	if test == nil {
		return true, nil
	}

	sub, err := e.submissions.GetByApplication(ctx, app.ID)
	if err != nil {
		return false, fmt.Errorf("load submission: %w", err)
	}
	if sub == nil {
		return false, nil
	}

	return sub.IsPassed != nil && *sub.IsPassed, nil
}
