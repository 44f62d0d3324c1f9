package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

// CreateJob inserts the job and its required-skill list in a single
// transaction. Skill order as submitted by the recruiter is preserved.
func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job is nil")
	}

	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT INTO jobs (recruiter_id, title, description, location, created) VALUES (?, ?, ?, ?, ?)`, j.RecruiterID, j.Title, j.Description, j.Location, now())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, name := range j.Skills {
		if _, err := tx.ExecContext(ctx, `INSERT INTO job_skills (job_id, name, position) VALUES (?, ?, ?)`, id, name, i); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	return id, nil
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, recruiter_id, title, description, location, created FROM jobs WHERE id = ?`, id)
	var j models.Job
	if err := row.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Location, &j.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	skills, err := r.FindSkillsByJob(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	j.Skills = skills

	return &j, nil
}

// ListJobs returns jobs newest first, with their skill lists attached.
func (r *SQLiteRepo) ListJobs(ctx context.Context, limit, offset int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT id, recruiter_id, title, description, location, created FROM jobs ORDER BY created DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Description, &j.Location, &j.Created); err != nil {
			return nil, err
		}

		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		skills, err := r.FindSkillsByJob(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Skills = skills
	}

	return out, nil
}

// FindSkillsByJob returns the job's required skill names in recruiter order.
func (r *SQLiteRepo) FindSkillsByJob(ctx context.Context, jobID int64) ([]string, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT name FROM job_skills WHERE job_id = ? ORDER BY position, id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		out = append(out, name)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountJobsByRecruiter(ctx context.Context, recruiterID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE recruiter_id = ?`, recruiterID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}
