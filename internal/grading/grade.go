// Package grading implements aptitude-test auto-grading, the application
// status transition it triggers, and the recruiter visibility gate.
package grading

import (
	"math"

	"github.com/hireloop/hireloop/pkg/models"
)

// Verdict is the three-state grading outcome. A test without a configured
// passing percentage yields VerdictNone: the submission is scored but carries
// no pass/fail judgement and must not touch the application status.
type Verdict int8

const (
	VerdictNone Verdict = iota
	VerdictPassed
	VerdictFailed
)

func (v Verdict) String() string {
	switch v {
	case VerdictPassed:
		return "passed"
	case VerdictFailed:
		return "failed"
	}
	return "none"
}

// IsPassed maps the verdict onto the nullable is_passed column.
func (v Verdict) IsPassed() *bool {
	switch v {
	case VerdictPassed:
		b := true
		return &b
	case VerdictFailed:
		b := false
		return &b
	}
	return nil
}

// Result is the outcome of grading one submission.
type Result struct {
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	Verdict        Verdict
}

// Grade scores the answers against the question key. Answers are keyed by
// question ID; missing or unrecognized keys never count and never error, so a
// partially completed submission is scored as-is. An empty question list
// scores zero with no verdict impact beyond the threshold comparison.
func Grade(questions []models.AptitudeQuestion, answers map[string]int, passingPercentage *float64) Result {
	res := Result{TotalQuestions: len(questions)}

	for _, q := range questions {
		if sel, ok := answers[q.ID]; ok && sel == q.CorrectAnswer {
			res.CorrectAnswers++
		}
	}

	if res.TotalQuestions > 0 {
		res.Score = round2(float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100)
	}

	if passingPercentage != nil {
		if res.Score >= *passingPercentage {
			res.Verdict = VerdictPassed
		} else {
			res.Verdict = VerdictFailed
		}
	}

	return res
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
