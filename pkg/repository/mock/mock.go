package mock

import (
	"context"
	"database/sql"

	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
	Skill *SkillRepo
	Jobs  *JobRepo
	Apps  *ApplicationRepo
	Tests *TestRepo
	Subs  *SubmissionRepo
}

func NewMocks() *Mocks {
	jobs := &JobRepo{}
	return &Mocks{
		Users: &UserRepo{},
		Skill: &SkillRepo{},
		Jobs:  jobs,
		Apps:  &ApplicationRepo{Jobs: jobs},
		Tests: &TestRepo{},
		Subs:  &SubmissionRepo{},
	}
}

type UserRepo struct {
	Stored    *models.User
	CreateErr error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.User{ID: 1, Name: u.Name, Email: u.Email, Role: u.Role, PasswordHash: u.PasswordHash}
	return 1, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

type SkillRepo struct {
	Skills    []models.Skill
	CreateErr error
	ListErr   error
	nextID    int64
}

var _ repository.SkillRepo = (*SkillRepo)(nil)

func (m *SkillRepo) CreateSkill(ctx context.Context, s *models.Skill) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.Skills {
		if existing.CandidateID == s.CandidateID && existing.Name == s.Name {
			return 0, repository.ErrDuplicate
		}
	}
	m.nextID++
	stored := *s
	stored.ID = m.nextID
	m.Skills = append(m.Skills, stored)
	return stored.ID, nil
}

func (m *SkillRepo) FindSkillsByCandidate(ctx context.Context, candidateID int64) ([]models.Skill, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Skill
	for _, s := range m.Skills {
		if s.CandidateID == candidateID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *SkillRepo) DeleteSkill(ctx context.Context, candidateID, skillID int64) error {
	out := m.Skills[:0]
	deleted := false
	for _, s := range m.Skills {
		if s.ID == skillID && s.CandidateID == candidateID {
			deleted = true
			continue
		}
		out = append(out, s)
	}
	m.Skills = out
	if !deleted {
		return sql.ErrNoRows
	}
	return nil
}

type JobRepo struct {
	Jobs    []models.Job
	ListErr error
	nextID  int64
}

var _ repository.JobRepo = (*JobRepo)(nil)

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	m.nextID++
	stored := *j
	stored.ID = m.nextID
	m.Jobs = append(m.Jobs, stored)
	return stored.ID, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	for i := range m.Jobs {
		if m.Jobs[i].ID == id {
			j := m.Jobs[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (m *JobRepo) ListJobs(ctx context.Context, limit, offset int) ([]models.Job, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Job, len(m.Jobs))
	copy(out, m.Jobs)
	return out, nil
}

func (m *JobRepo) FindSkillsByJob(ctx context.Context, jobID int64) ([]string, error) {
	j, _ := m.GetJob(ctx, jobID)
	if j == nil {
		return nil, nil
	}
	return j.Skills, nil
}

func (m *JobRepo) CountJobsByRecruiter(ctx context.Context, recruiterID int64) (int64, error) {
	var cnt int64
	for _, j := range m.Jobs {
		if j.RecruiterID == recruiterID {
			cnt++
		}
	}
	return cnt, nil
}

// ApplicationRepo needs Jobs to answer the recruiter-scoped queries the real
// store answers with a join.
type ApplicationRepo struct {
	Apps      []models.JobApplication
	Jobs      *JobRepo
	UpdateErr error
	nextID    int64
}

var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error) {
	for _, existing := range m.Apps {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return 0, repository.ErrDuplicate
		}
	}
	m.nextID++
	stored := *a
	stored.ID = m.nextID
	m.Apps = append(m.Apps, stored)
	return stored.ID, nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id int64) (*models.JobApplication, error) {
	for i := range m.Apps {
		if m.Apps[i].ID == id {
			a := m.Apps[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *ApplicationRepo) ListByCandidate(ctx context.Context, candidateID int64) ([]models.JobApplication, error) {
	var out []models.JobApplication
	for _, a := range m.Apps {
		if a.CandidateID == candidateID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error) {
	var out []models.JobApplication
	for _, a := range m.Apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.Apps {
		if m.Apps[i].ID == id {
			m.Apps[i].Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *ApplicationRepo) ListByRecruiter(ctx context.Context, recruiterID int64) ([]models.JobApplication, error) {
	var out []models.JobApplication
	for _, a := range m.Apps {
		if m.ownedBy(a.JobID, recruiterID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *ApplicationRepo) CountByStatusForRecruiter(ctx context.Context, recruiterID int64) (map[string]int64, error) {
	out := map[string]int64{}
	for _, a := range m.Apps {
		if m.ownedBy(a.JobID, recruiterID) {
			out[a.Status]++
		}
	}
	return out, nil
}

func (m *ApplicationRepo) ownedBy(jobID, recruiterID int64) bool {
	if m.Jobs == nil {
		return true
	}
	for _, j := range m.Jobs.Jobs {
		if j.ID == jobID {
			return j.RecruiterID == recruiterID
		}
	}
	return false
}

type TestRepo struct {
	Test      *models.AptitudeTest
	Questions []models.AptitudeQuestion
	nextID    int64
}

var _ repository.TestRepo = (*TestRepo)(nil)

func (m *TestRepo) CreateTest(ctx context.Context, t *models.AptitudeTest, questions []models.AptitudeQuestion) (int64, error) {
	if m.Test != nil && m.Test.JobID == t.JobID {
		return 0, repository.ErrDuplicate
	}
	m.nextID++
	stored := *t
	stored.ID = m.nextID
	m.Test = &stored
	m.Questions = append([]models.AptitudeQuestion(nil), questions...)
	for i := range m.Questions {
		m.Questions[i].TestID = stored.ID
	}
	return stored.ID, nil
}

func (m *TestRepo) GetTestByJob(ctx context.Context, jobID int64) (*models.AptitudeTest, error) {
	if m.Test != nil && m.Test.JobID == jobID {
		t := *m.Test
		return &t, nil
	}
	return nil, nil
}

func (m *TestRepo) ListQuestions(ctx context.Context, testID int64) ([]models.AptitudeQuestion, error) {
	var out []models.AptitudeQuestion
	for _, q := range m.Questions {
		if q.TestID == testID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *TestRepo) DeleteTest(ctx context.Context, jobID int64) error {
	if m.Test == nil || m.Test.JobID != jobID {
		return sql.ErrNoRows
	}
	m.Test = nil
	m.Questions = nil
	return nil
}

type SubmissionRepo struct {
	Subs      []models.TestSubmission
	CreateErr error
	nextID    int64
}

var _ repository.SubmissionRepo = (*SubmissionRepo)(nil)

func (m *SubmissionRepo) CreateSubmission(ctx context.Context, s *models.TestSubmission) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, existing := range m.Subs {
		if existing.JobApplicationID == s.JobApplicationID && existing.CandidateID == s.CandidateID {
			return 0, repository.ErrDuplicate
		}
	}
	m.nextID++
	stored := *s
	stored.ID = m.nextID
	m.Subs = append(m.Subs, stored)
	return stored.ID, nil
}

func (m *SubmissionRepo) GetByApplication(ctx context.Context, jobApplicationID int64) (*models.TestSubmission, error) {
	for i := range m.Subs {
		if m.Subs[i].JobApplicationID == jobApplicationID {
			s := m.Subs[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (m *SubmissionRepo) GetByApplicationAndCandidate(ctx context.Context, jobApplicationID, candidateID int64) (*models.TestSubmission, error) {
	for i := range m.Subs {
		if m.Subs[i].JobApplicationID == jobApplicationID && m.Subs[i].CandidateID == candidateID {
			s := m.Subs[i]
			return &s, nil
		}
	}
	return nil, nil
}
