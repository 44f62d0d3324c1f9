package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

func (r *SQLiteRepo) CreateSkill(ctx context.Context, s *models.Skill) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("skill is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO skills (candidate_id, name, created) VALUES (?, ?, ?)`, s.CandidateID, s.Name, now())
	if err != nil {
		return 0, mapDup(err)
	}

	return res.LastInsertId()
}

// FindSkillsByCandidate returns the candidate's skills in insertion order.
func (r *SQLiteRepo) FindSkillsByCandidate(ctx context.Context, candidateID int64) ([]models.Skill, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, candidate_id, name, created FROM skills WHERE candidate_id = ? ORDER BY id`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.CandidateID, &s.Name, &s.Created); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

// DeleteSkill removes the candidate's skill, returning sql.ErrNoRows when the
// skill does not exist or belongs to someone else.
func (r *SQLiteRepo) DeleteSkill(ctx context.Context, candidateID, skillID int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM skills WHERE id = ? AND candidate_id = ?`, skillID, candidateID)
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
