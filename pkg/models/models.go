package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are unix milliseconds (UTC).

// User roles.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// Job application statuses.
const (
	StatusApplied     = "Applied"
	StatusUnderReview = "Under Review"
	StatusInterview   = "Interview"
	StatusOffer       = "Offer"
	StatusRejected    = "Rejected"
)

// ValidStatus reports whether s is one of the known application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"password_hash,omitempty" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type Skill struct {
	ID          int64  `json:"id" db:"id"`
	CandidateID int64  `json:"candidate_id" db:"candidate_id"`
	Name        string `json:"name" db:"name"`
	Created     int64  `json:"created" db:"created"`
}

type Job struct {
	ID          int64    `json:"id" db:"id"`
	RecruiterID int64    `json:"recruiter_id" db:"recruiter_id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description,omitempty" db:"description"`
	Location    string   `json:"location,omitempty" db:"location"`
	Skills      []string `json:"skills,omitempty"`
	Created     int64    `json:"created" db:"created"`
}

type JobApplication struct {
	ID          int64  `json:"id" db:"id"`
	JobID       int64  `json:"job_id" db:"job_id"`
	CandidateID int64  `json:"candidate_id" db:"candidate_id"`
	Status      string `json:"status" db:"status"`
	AppliedAt   int64  `json:"applied_at" db:"applied_at"`
}

type AptitudeTest struct {
	ID                int64    `json:"id" db:"id"`
	JobID             int64    `json:"job_id" db:"job_id"`
	PassingPercentage *float64 `json:"passing_percentage,omitempty" db:"passing_percentage"`
	TimeLimitMinutes  *int64   `json:"time_limit_minutes,omitempty" db:"time_limit_minutes"`
	Created           int64    `json:"created" db:"created"`
}

type AptitudeQuestion struct {
	ID            string   `json:"id" db:"id"`
	TestID        int64    `json:"test_id" db:"test_id"`
	Question      string   `json:"question" db:"question"`
	Options       []string `json:"options" db:"options"`
	CorrectAnswer int      `json:"correct_answer" db:"correct_answer"`
	Category      *string  `json:"category,omitempty" db:"category"`
	Position      int      `json:"position" db:"position"`
}

type TestSubmission struct {
	ID               int64          `json:"id" db:"id"`
	TestID           int64          `json:"test_id" db:"test_id"`
	JobApplicationID int64          `json:"job_application_id" db:"job_application_id"`
	CandidateID      int64          `json:"candidate_id" db:"candidate_id"`
	Answers          map[string]int `json:"answers" db:"answers"`
	Score            float64        `json:"score" db:"score"`
	TotalQuestions   int            `json:"total_questions" db:"total_questions"`
	CorrectAnswers   int            `json:"correct_answers" db:"correct_answers"`
	IsPassed         *bool          `json:"is_passed" db:"is_passed"`
	SubmittedAt      int64          `json:"submitted_at" db:"submitted_at"`
}
