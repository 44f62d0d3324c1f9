package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("application is nil")
	}

	status := a.Status
	if status == "" {
		status = models.StatusApplied
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO job_applications (job_id, candidate_id, status, applied_at) VALUES (?, ?, ?, ?)`, a.JobID, a.CandidateID, status, now())
	if err != nil {
		return 0, mapDup(err)
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id int64) (*models.JobApplication, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, job_id, candidate_id, status, applied_at FROM job_applications WHERE id = ?`, id)
	var a models.JobApplication
	if err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.AppliedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}

func (r *SQLiteRepo) ListByCandidate(ctx context.Context, candidateID int64) ([]models.JobApplication, error) {
	return r.listApplications(ctx, `SELECT id, job_id, candidate_id, status, applied_at FROM job_applications WHERE candidate_id = ? ORDER BY applied_at DESC, id DESC`, candidateID)
}

func (r *SQLiteRepo) ListByJob(ctx context.Context, jobID int64) ([]models.JobApplication, error) {
	return r.listApplications(ctx, `SELECT id, job_id, candidate_id, status, applied_at FROM job_applications WHERE job_id = ? ORDER BY applied_at DESC, id DESC`, jobID)
}

// ListByRecruiter returns applications across all of the recruiter's jobs.
func (r *SQLiteRepo) ListByRecruiter(ctx context.Context, recruiterID int64) ([]models.JobApplication, error) {
	return r.listApplications(ctx, `SELECT a.id, a.job_id, a.candidate_id, a.status, a.applied_at FROM job_applications a JOIN jobs j ON j.id = a.job_id WHERE j.recruiter_id = ? ORDER BY a.applied_at DESC, a.id DESC`, recruiterID)
}

func (r *SQLiteRepo) listApplications(ctx context.Context, query string, args ...any) ([]models.JobApplication, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.JobApplication
	for rows.Next() {
		var a models.JobApplication
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	res, err := r.conn.Exec(ctx, `UPDATE job_applications SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatusForRecruiter aggregates application counts per status across all
// of the recruiter's jobs.
func (r *SQLiteRepo) CountByStatusForRecruiter(ctx context.Context, recruiterID int64) (map[string]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.status, COUNT(*) FROM job_applications a JOIN jobs j ON j.id = a.job_id WHERE j.recruiter_id = ? GROUP BY a.status`, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var status string
		var cnt int64
		if err := rows.Scan(&status, &cnt); err != nil {
			return nil, err
		}

		out[status] = cnt
	}

	return out, rows.Err()
}
