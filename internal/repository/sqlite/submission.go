package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

// CreateSubmission inserts a graded submission. Submissions are write-once:
// the UNIQUE (job_application_id, candidate_id) constraint makes the insert
// the atomic duplicate guard, so two racing submissions cannot both land.
func (r *SQLiteRepo) CreateSubmission(ctx context.Context, s *models.TestSubmission) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("submission is nil")
	}

	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return 0, fmt.Errorf("marshal answers: %w", err)
	}

	var isPassed any
	if s.IsPassed != nil {
		isPassed = *s.IsPassed
	}

	submittedAt := s.SubmittedAt
	if submittedAt == 0 {
		submittedAt = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO test_submissions (test_id, job_application_id, candidate_id, answers, score, total_questions, correct_answers, is_passed, submitted_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.TestID, s.JobApplicationID, s.CandidateID, string(answers), s.Score, s.TotalQuestions, s.CorrectAnswers, isPassed, submittedAt)
	if err != nil {
		return 0, mapDup(err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByApplication(ctx context.Context, jobApplicationID int64) (*models.TestSubmission, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, test_id, job_application_id, candidate_id, answers, score, total_questions, correct_answers, is_passed, submitted_at FROM test_submissions WHERE job_application_id = ?`, jobApplicationID)
	return scanSubmission(row)
}

func (r *SQLiteRepo) GetByApplicationAndCandidate(ctx context.Context, jobApplicationID, candidateID int64) (*models.TestSubmission, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, test_id, job_application_id, candidate_id, answers, score, total_questions, correct_answers, is_passed, submitted_at FROM test_submissions WHERE job_application_id = ? AND candidate_id = ?`, jobApplicationID, candidateID)
	return scanSubmission(row)
}

func scanSubmission(row *sql.Row) (*models.TestSubmission, error) {
	var s models.TestSubmission
	var answers string
	var isPassed sql.NullBool
	if err := row.Scan(&s.ID, &s.TestID, &s.JobApplicationID, &s.CandidateID, &answers, &s.Score, &s.TotalQuestions, &s.CorrectAnswers, &isPassed, &s.SubmittedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if err := json.Unmarshal([]byte(answers), &s.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	if isPassed.Valid {
		v := isPassed.Bool
		s.IsPassed = &v
	}

	return &s, nil
}
