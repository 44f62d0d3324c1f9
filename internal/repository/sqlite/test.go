package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hireloop/hireloop/pkg/models"
)

// CreateTest inserts a test and its questions in one transaction. The UNIQUE
// constraint on aptitude_tests.job_id rejects a second test for the same job.
// Question IDs are generated here (UUID strings) when not provided.
func (r *SQLiteRepo) CreateTest(ctx context.Context, t *models.AptitudeTest, questions []models.AptitudeQuestion) (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("test is nil")
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

	res, err := tx.ExecContext(ctx, `INSERT INTO aptitude_tests (job_id, passing_percentage, time_limit_minutes, created) VALUES (?, ?, ?, ?)`, t.JobID, t.PassingPercentage, t.TimeLimitMinutes, now())
	if err != nil {
		return 0, mapDup(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return 0, fmt.Errorf("marshal options: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO aptitude_questions (id, test_id, question, options, correct_answer, category, position) VALUES (?, ?, ?, ?, ?, ?, ?)`, q.ID, id, q.Question, string(opts), q.CorrectAnswer, q.Category, i); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	return id, nil
}

func (r *SQLiteRepo) GetTestByJob(ctx context.Context, jobID int64) (*models.AptitudeTest, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, job_id, passing_percentage, time_limit_minutes, created FROM aptitude_tests WHERE job_id = ?`, jobID)
	var t models.AptitudeTest
	var passing sql.NullFloat64
	var limit sql.NullInt64
	if err := row.Scan(&t.ID, &t.JobID, &passing, &limit, &t.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if passing.Valid {
		v := passing.Float64
		t.PassingPercentage = &v
	}
	if limit.Valid {
		v := limit.Int64
		t.TimeLimitMinutes = &v
	}

	return &t, nil
}

// ListQuestions returns the test's questions in authoring order.
func (r *SQLiteRepo) ListQuestions(ctx context.Context, testID int64) ([]models.AptitudeQuestion, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, test_id, question, options, correct_answer, category, position FROM aptitude_questions WHERE test_id = ? ORDER BY position, id`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AptitudeQuestion
	for rows.Next() {
		var q models.AptitudeQuestion
		var opts string
		var category sql.NullString
		if err := rows.Scan(&q.ID, &q.TestID, &q.Question, &opts, &q.CorrectAnswer, &category, &q.Position); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options for question %s: %w", q.ID, err)
		}
		if category.Valid {
			v := category.String
			q.Category = &v
		}
		out = append(out, q)
	}

	return out, rows.Err()
}

// DeleteTest removes the job's test; questions go with it via ON DELETE CASCADE.
func (r *SQLiteRepo) DeleteTest(ctx context.Context, jobID int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM aptitude_tests WHERE job_id = ?`, jobID)
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
