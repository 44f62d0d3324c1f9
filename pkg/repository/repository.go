package repository

import (
	"context"
	"errors"

	"github.com/hireloop/hireloop/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (duplicate email, duplicate skill, second application or submission for the
// same pair, second test for a job). Implementations must map their driver's
// unique-violation error to this sentinel so callers can surface a Conflict.
var ErrDuplicate = errors.New("duplicate record")

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type SkillRepo interface {
	CreateSkill(ctx context.Context, s *models.Skill) (int64, error)
	FindSkillsByCandidate(ctx context.Context, candidateID int64) ([]models.Skill, error)
	DeleteSkill(ctx context.Context, candidateID, skillID int64) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]models.Job, error)
	FindSkillsByJob(ctx context.Context, jobID int64) ([]string, error)
	CountJobsByRecruiter(ctx context.Context, recruiterID int64) (int64, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error)
	GetApplication(ctx context.Context, id int64) (*models.JobApplication, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.JobApplication, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error)
	ListByRecruiter(ctx context.Context, recruiterID int64) ([]models.JobApplication, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountByStatusForRecruiter(ctx context.Context, recruiterID int64) (map[string]int64, error)
}

type TestRepo interface {
	CreateTest(ctx context.Context, t *models.AptitudeTest, questions []models.AptitudeQuestion) (int64, error)
	GetTestByJob(ctx context.Context, jobID int64) (*models.AptitudeTest, error)
	ListQuestions(ctx context.Context, testID int64) ([]models.AptitudeQuestion, error)
	DeleteTest(ctx context.Context, jobID int64) error
}

type SubmissionRepo interface {
	CreateSubmission(ctx context.Context, s *models.TestSubmission) (int64, error)
	GetByApplication(ctx context.Context, jobApplicationID int64) (*models.TestSubmission, error)
	GetByApplicationAndCandidate(ctx context.Context, jobApplicationID, candidateID int64) (*models.TestSubmission, error)
}
