// Package match implements the skill-overlap scoring used to order job
// listings for a candidate. Scoring is pure: no I/O, no errors, a single pass
// over the inputs.
package match

import (
	"math"
	"strings"
)

// Normalize trims and lowercases skill names, dropping entries that are empty
// after normalization.
func Normalize(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matches reports whether two normalized skill names refer to the same skill:
// exact equality, or one contained in the other ("react" matches "react.js").
func matches(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Score returns the percentage (0-100, two decimals) of the job's required
// skills satisfied by the candidate's skills. The numerator counts distinct
// candidate skills with at least one match, not pairwise matches. Near-duplicate
// candidate skills can push the raw ratio past 100, so the result is clamped.
func Score(candidateSkills, jobSkills []string) float64 {
	cand := Normalize(candidateSkills)
	job := Normalize(jobSkills)
	if len(cand) == 0 || len(job) == 0 {
		return 0
	}

	matchCount := 0
	for _, c := range cand {
		for _, j := range job {
			if matches(c, j) {
				matchCount++
				break
			}
		}
	}

	score := round2(float64(matchCount) / float64(len(job)) * 100)
	return math.Min(100, score)
}

// MatchedJobSkills counts the job skills covered by at least one candidate
// skill. This counts in the opposite direction from Score and is used only as
// a ranking tie-break; the two can disagree on substring pairs and the
// ordering depends on that.
func MatchedJobSkills(candidateSkills, jobSkills []string) int {
	cand := Normalize(candidateSkills)
	job := Normalize(jobSkills)
	if len(cand) == 0 || len(job) == 0 {
		return 0
	}

	count := 0
	for _, j := range job {
		for _, c := range cand {
			if matches(j, c) {
				count++
				break
			}
		}
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
